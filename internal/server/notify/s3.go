package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/google/uuid"
)

type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string
	User     string
	Password string
	From     string
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// seams for tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3MailDrop writes each message as an RFC 5322 .eml object into a bucket.
// An external relay (or a developer) picks them up from there.
type S3MailDrop struct {
	bucket string
	from   string
	client objectPutter
	now    func() time.Time
	logger logging.Logger
}

func NewS3MailDrop(ctx context.Context, opts S3Options, l logging.Logger) (*S3MailDrop, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.User,
			opts.Password,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3MailDrop{
		bucket: opts.Bucket,
		from:   opts.From,
		client: client,
		now:    time.Now,
		logger: l.With("module", "mail_s3"),
	}, nil
}

func (s *S3MailDrop) objectKey() string {
	return fmt.Sprintf("outbox/%s/%s.eml", s.now().UTC().Format("2006/01/02"), uuid.NewString())
}

func (s *S3MailDrop) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return deliveryError(errEmptyRecipient)
	}

	var buf bytes.Buffer
	if _, err := buildMessage(s.from, msg).WriteTo(&buf); err != nil {
		return deliveryError(err)
	}

	key := s.objectKey()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("message/rfc822"),
	})
	if err != nil {
		s.logger.Error(ctx, "mail drop failed", "to", msg.To, "error", err)
		return deliveryError(err)
	}

	s.logger.Info(ctx, "mail dropped", "to", msg.To, "key", key)
	return nil
}
