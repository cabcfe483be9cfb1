package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// ErrIncompleteConfig is reported before any network operation when host,
// user or password is missing.
var ErrIncompleteConfig = errors.New("mail delivery not configured: host, user and password are required")

// Sender performs blocking plain-text sends over SMTP.
type Sender struct {
	timeout time.Duration
}

func NewSender(timeout time.Duration) *Sender {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Sender{timeout: timeout}
}

// Send delivers a plain-text message. Transport errors surface as-is; there
// is no retry.
func (s *Sender) Send(ctx context.Context, cfg Config, to, subject, body string) error {
	if !cfg.Complete() {
		return ErrIncompleteConfig
	}

	msg := gomail.NewMsg()
	if err := msg.From(cfg.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	// STARTTLS on 587, implicit TLS on 465
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.User),
		gomail.WithPassword(cfg.Password),
		gomail.WithTimeout(s.timeout),
	}
	if cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send to %s: %w", to, err)
	}
	return nil
}
