package errors

import "context"

// Severity of a tracked message.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

func (l Level) String() string { return string(l) }

// Tracker ships errors and diagnostic events to an external service. The
// sentry adapter implements it for real deployments; local runs use the
// noop adapter. Flush drains pending events before shutdown.
type Tracker interface {
	CaptureError(ctx context.Context, err error, tags map[string]string) error
	CaptureMessage(ctx context.Context, message string, level Level, tags map[string]string) error
	SetUser(ctx context.Context, userID, email, username string)
	AddBreadcrumb(ctx context.Context, message, category string, level Level, data map[string]interface{})
	Flush(ctx context.Context) error
}
