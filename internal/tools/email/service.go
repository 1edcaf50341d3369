package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"voyager/internal/adapters/config"
	"voyager/internal/metrics"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
)

// Service sends travel notifications over SMTP. Without credentials it runs
// in simulation mode: deliveries are logged instead of sent so the agent
// tools keep working in development.
type Service struct {
	cfg       config.SMTPConfig
	simulated bool
	log       *logger.Logger

	// send is swappable for tests.
	send func(to, subject, body string) error
}

// NewService builds the email service from SMTP config.
func NewService(cfg config.SMTPConfig) *Service {
	s := &Service{
		cfg:       cfg,
		simulated: !cfg.Configured(),
		log:       logger.Get().With("component", "email_service"),
	}
	s.send = s.sendSMTP

	if s.simulated {
		s.log.Warnw("Email credentials not configured, deliveries will be simulated")
	}
	return s
}

// Simulated reports whether the service only logs outgoing mail.
func (s *Service) Simulated() bool {
	return s.simulated
}

// Send delivers one plain-text email. In simulation mode it logs the
// message and reports success.
func (s *Service) Send(kind, to, subject, body string) error {
	if to == "" || !strings.Contains(to, "@") {
		return errors.Wrapf(errors.ErrInvalidInput, "invalid recipient %q", to)
	}

	if s.simulated {
		s.log.Infow("Simulated email delivery",
			"kind", kind,
			"to", to,
			"subject", subject,
			"body_preview", preview(body, 120),
		)
		metrics.EmailsSent.WithLabelValues(kind, "simulated").Inc()
		return nil
	}

	if err := s.send(to, subject, body); err != nil {
		metrics.EmailsSent.WithLabelValues(kind, "error").Inc()
		return errors.Wrap(errors.ErrEmailSendFailed, err.Error())
	}

	metrics.EmailsSent.WithLabelValues(kind, "sent").Inc()
	s.log.Infow("Email sent", "kind", kind, "to", to, "subject", subject)
	return nil
}

func (s *Service) sendSMTP(to, subject, body string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", s.cfg.Address) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	conn, err := smtp.Dial(s.cfg.Addr())
	if err != nil {
		return err
	}
	defer conn.Quit()

	if s.cfg.UseTLS {
		if err := conn.StartTLS(&tls.Config{ServerName: s.cfg.Server}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.cfg.Address, s.cfg.Password, s.cfg.Server)
	if err := conn.Auth(auth); err != nil {
		return err
	}

	if err := conn.Mail(s.cfg.Address); err != nil {
		return err
	}
	if err := conn.Rcpt(to); err != nil {
		return err
	}

	w, err := conn.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
