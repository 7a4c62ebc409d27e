package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/flagx"
	"github.com/dmitrijs2005/coursehub/internal/timex"
)

// JSONConfig is the file representation of Config. Pointer fields
// distinguish "absent" from a zero value, so a file only overrides the keys
// it names. Durations accept "24h" style strings or integer nanoseconds.
type JSONConfig struct {
	HTTPAddr             *string         `json:"http_addr"`
	GRPCAddr             *string         `json:"grpc_addr"`
	DatabaseDSN          *string         `json:"database_dsn"`
	AccessTokenSecret    *string         `json:"access_token_secret"`
	RefreshTokenSecret   *string         `json:"refresh_token_secret"`
	AccessTokenTTL       *timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL      *timex.Duration `json:"refresh_token_ttl"`
	VerificationTokenTTL *timex.Duration `json:"verification_token_ttl"`
	ResetTokenTTL        *timex.Duration `json:"reset_token_ttl"`
	MinPasswordLength    *int            `json:"min_password_length"`
	PublicBaseURL        *string         `json:"public_base_url"`
	CookieSecure         *bool           `json:"cookie_secure"`
	Development          *bool           `json:"development"`
	MailDriver           *string         `json:"mail_driver"`
	MailFrom             *string         `json:"mail_from"`
	SMTPHost             *string         `json:"smtp_host"`
	SMTPPort             *int            `json:"smtp_port"`
	SMTPUser             *string         `json:"smtp_user"`
	SMTPPassword         *string         `json:"smtp_password"`
	S3User               *string         `json:"s3_user"`
	S3Password           *string         `json:"s3_password"`
	S3Bucket             *string         `json:"s3_bucket"`
	S3Region             *string         `json:"s3_region"`
	S3Endpoint           *string         `json:"s3_endpoint"`
	AvatarBucket         *string         `json:"avatar_bucket"`
	AvatarUploadTTL      *timex.Duration `json:"avatar_upload_ttl"`
	AvatarURLTTL         *timex.Duration `json:"avatar_url_ttl"`
	AvatarMaxBytes       *int64          `json:"avatar_max_bytes"`
}

// parseJSON overlays the file named by -c/-config onto config. Without the
// flag nothing is loaded.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return err
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.AccessTokenSecret, c.AccessTokenSecret)
	setString(&config.RefreshTokenSecret, c.RefreshTokenSecret)
	setDuration(&config.AccessTokenTTL, c.AccessTokenTTL)
	setDuration(&config.RefreshTokenTTL, c.RefreshTokenTTL)
	setDuration(&config.VerificationTokenTTL, c.VerificationTokenTTL)
	setDuration(&config.ResetTokenTTL, c.ResetTokenTTL)
	if c.MinPasswordLength != nil {
		config.MinPasswordLength = *c.MinPasswordLength
	}
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.Development != nil {
		config.Development = *c.Development
	}
	setString(&config.MailDriver, c.MailDriver)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort != nil {
		config.SMTPPort = *c.SMTPPort
	}
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.S3User, c.S3User)
	setString(&config.S3Password, c.S3Password)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3Endpoint, c.S3Endpoint)
	setString(&config.AvatarBucket, c.AvatarBucket)
	setDuration(&config.AvatarUploadTTL, c.AvatarUploadTTL)
	setDuration(&config.AvatarURLTTL, c.AvatarURLTTL)
	if c.AvatarMaxBytes != nil {
		config.AvatarMaxBytes = *c.AvatarMaxBytes
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
