// Package sentry adapts the Sentry SDK to the errors.Tracker interface.
package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"voyager/pkg/errors"
)

const flushTimeout = 2 * time.Second

// Tracker reports errors and breadcrumbs to Sentry.
type Tracker struct {
	hub *sentry.Hub
}

var _ errors.Tracker = (*Tracker)(nil)

// New initializes the Sentry client and returns a tracker bound to the
// current hub.
func New(dsn, environment string) (*Tracker, error) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	}); err != nil {
		return nil, err
	}
	return &Tracker{hub: sentry.CurrentHub()}, nil
}

// CaptureError reports an error with the given tags.
func (t *Tracker) CaptureError(ctx context.Context, err error, tags map[string]string) error {
	hub := t.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
	})
	hub.CaptureException(err)
	return nil
}

// CaptureMessage reports a standalone message at the given level.
func (t *Tracker) CaptureMessage(ctx context.Context, message string, level errors.Level, tags map[string]string) error {
	hub := t.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		scope.SetLevel(toSentryLevel(level))
	})
	hub.CaptureMessage(message)
	return nil
}

// SetUser attaches user identity to subsequent events on the hub.
func (t *Tracker) SetUser(ctx context.Context, userID, email, username string) {
	t.hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetUser(sentry.User{ID: userID, Email: email, Username: username})
	})
}

// AddBreadcrumb records a trail event leading up to a potential error.
func (t *Tracker) AddBreadcrumb(ctx context.Context, message, category string, level errors.Level, data map[string]interface{}) {
	t.hub.AddBreadcrumb(&sentry.Breadcrumb{
		Message:  message,
		Category: category,
		Level:    toSentryLevel(level),
		Data:     data,
	}, nil)
}

// Flush blocks until queued events are delivered or the timeout passes.
func (t *Tracker) Flush(ctx context.Context) error {
	sentry.Flush(flushTimeout)
	return nil
}

func toSentryLevel(level errors.Level) sentry.Level {
	switch level {
	case errors.LevelDebug:
		return sentry.LevelDebug
	case errors.LevelWarning:
		return sentry.LevelWarning
	case errors.LevelError:
		return sentry.LevelError
	case errors.LevelFatal:
		return sentry.LevelFatal
	default:
		return sentry.LevelInfo
	}
}
