package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/coursehub/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
//	-a     HTTP bind address (":8080")
//	-g     gRPC bind address (":50051")
//	-d     PostgreSQL DSN
//	-s     access token secret
//	-rs    refresh token secret
//	-t     access token ttl ("1h")
//	-r     refresh token ttl ("168h")
//	-vt    email verification token ttl ("24h")
//	-pt    password reset token ttl ("1h")
//	-base  public base URL used in emailed links
//	-mail  mail driver: log, smtp or s3
//	-dev   development mode (echo emailed tokens in responses)
//	-secure-cookie  mark the refresh cookie Secure
//	-avatar-bucket  bucket for profile images
//
// Only the flags above are looked at; anything else in args is ignored.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AccessTokenSecret, "s", config.AccessTokenSecret, "access token secret")
	fs.StringVar(&config.RefreshTokenSecret, "rs", config.RefreshTokenSecret, "refresh token secret")
	fs.DurationVar(&config.AccessTokenTTL, "t", config.AccessTokenTTL, "access token ttl")
	fs.DurationVar(&config.RefreshTokenTTL, "r", config.RefreshTokenTTL, "refresh token ttl")
	fs.DurationVar(&config.VerificationTokenTTL, "vt", config.VerificationTokenTTL, "email verification token ttl")
	fs.DurationVar(&config.ResetTokenTTL, "pt", config.ResetTokenTTL, "password reset token ttl")
	fs.StringVar(&config.PublicBaseURL, "base", config.PublicBaseURL, "public base URL")
	fs.StringVar(&config.MailDriver, "mail", config.MailDriver, "mail driver (log, smtp, s3)")
	fs.BoolVar(&config.Development, "dev", config.Development, "development mode")
	fs.BoolVar(&config.CookieSecure, "secure-cookie", config.CookieSecure, "secure refresh cookie")
	fs.StringVar(&config.AvatarBucket, "avatar-bucket", config.AvatarBucket, "profile image bucket")

	return fs.Parse(flagx.FilterFor(fs, args))
}
