package notify

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/logging"
	"gopkg.in/gomail.v2"
)

type SMTPOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	from   string
	dialer mailDialer
	logger logging.Logger
}

func NewSMTPSender(opts SMTPOptions, l logging.Logger) *SMTPSender {
	return &SMTPSender{
		from:   opts.From,
		dialer: gomail.NewDialer(opts.Host, opts.Port, opts.User, opts.Password),
		logger: l.With("module", "mail_smtp"),
	}
}

func buildMessage(from string, msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	return m
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return deliveryError(errEmptyRecipient)
	}

	if err := s.dialer.DialAndSend(buildMessage(s.from, msg)); err != nil {
		s.logger.Error(ctx, "smtp delivery failed", "to", msg.To, "error", err)
		return deliveryError(err)
	}

	s.logger.Info(ctx, "mail sent", "to", msg.To, "subject", msg.Subject)
	return nil
}
