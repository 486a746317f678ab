package notifications

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	gomail "gopkg.in/gomail.v2"

	"sgformer-backend/src/config"
)

type MailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SMTPSender delivers mail over SMTP, throttled so a burst of registrations
// does not trip the relay's rate limits.
type SMTPSender struct {
	dialer  *gomail.Dialer
	from    string
	limiter *rate.Limiter
}

func NewSMTPSender(cfg config.SMTP) (*SMTPSender, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("missing SMTP settings: SMTP_HOST and SMTP_FROM are required")
	}
	perSecond := cfg.PerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	return &SMTPSender{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:    cfg.From,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, html string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	return s.dialer.DialAndSend(m)
}
