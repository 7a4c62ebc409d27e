// Package notify delivers account emails (verification and password reset
// links) through a pluggable Sender.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender hands a message to a delivery channel. Failures wrap
// common.ErrDeliveryFailed.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var errEmptyRecipient = errors.New("empty recipient")

func deliveryError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrDeliveryFailed, err)
}

// NewSender builds the Sender selected by cfg.MailDriver.
func NewSender(ctx context.Context, cfg *config.Config, l logging.Logger) (Sender, error) {
	switch cfg.MailDriver {
	case config.MailDriverSMTP:
		return NewSMTPSender(SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}, l), nil
	case config.MailDriverS3:
		return NewS3MailDrop(ctx, S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			User:     cfg.S3User,
			Password: cfg.S3Password,
			From:     cfg.MailFrom,
		}, l)
	case config.MailDriverLog, "":
		return NewLogSender(l), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
	}
}
