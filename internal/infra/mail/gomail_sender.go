// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"

	"ladx/config"
	"ladx/internal/domain/service"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// gomailSender is a MailSender backed by an SMTP account.
type gomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender creates an SMTP-backed mail sender.
func NewGomailSender(cfg *config.Config) (service.MailSender, error) {
	if cfg.SMTP == nil || cfg.SMTP.Host == "" {
		return nil, errors.New("smtp config must be provided")
	}

	dialer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)

	return &gomailSender{
		dialer: dialer,
		from:   cfg.SMTP.From,
	}, nil
}

// Send delivers a single message. The context is honored up front; gomail
// itself dials synchronously.
func (s *gomailSender) Send(ctx context.Context, mail service.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	if mail.Text != "" {
		msg.SetBody("text/plain", mail.Text)
		msg.AddAlternative("text/html", mail.HTML)
	} else {
		msg.SetBody("text/html", mail.HTML)
	}

	if err := s.dialer.DialAndSend(msg); err != nil {
		return errors.Wrapf(err, "send mail to %s", mail.To)
	}

	return nil
}
