package lib

import (
	"context"
	"staybook/src/config"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

type SendMailInput struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
	Html    bool
}

type Mailer interface {
	Send(ctx context.Context, input *SendMailInput) error
}

// NewMailer returns an SMTP mailer, or a logging no-op when no host is set.
func NewMailer(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return NoopMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

type SMTPMailer struct {
	cfg config.SMTPConfig
}

func (m *SMTPMailer) client() (*mail.Client, error) {
	return mail.NewClient(
		m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
}

func (m *SMTPMailer) Send(ctx context.Context, input *SendMailInput) error {
	c, err := m.client()
	if err != nil {
		return err
	}
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(input.To...); err != nil {
		return err
	}
	if input.ReplyTo != "" {
		if err := msg.ReplyTo(input.ReplyTo); err != nil {
			log.Warn().Err(err).Str("reply_to", input.ReplyTo).Msg("Failed to set Reply-To address")
		}
	}
	msg.Subject(input.Subject)
	if input.Html {
		msg.SetBodyString(mail.TypeTextHTML, input.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, input.Body)
	}
	return c.DialAndSendWithContext(ctx, msg)
}

type NoopMailer struct{}

func (NoopMailer) Send(_ context.Context, input *SendMailInput) error {
	log.Debug().Strs("to", input.To).Str("subject", input.Subject).Msg("SMTP not configured, mail dropped")
	return nil
}
