// Package config handles configuration for the s3share server and CLI,
// including defaults, a JSON or YAML file overlay, environment variables and
// command-line flags.
package config

import "time"

// Storage backends.
const (
	StorageS3     = "s3"
	StorageMemory = "memory"
)

// Config holds runtime settings.
//
// Fields:
//   - ListenAddr: bind address of the HTTP server.
//   - LogLevel: zap level name (debug, info, warn, error).
//   - StorageBackend: "s3" or "memory".
//   - S3RootUser / S3RootPassword: static credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - S3UploadRoleARN: when set, uploads run with credentials obtained by
//     exchanging the uploader's ID token for this role.
//   - Cognito*: OAuth client and hosted UI settings of the identity provider.
//   - MaxUploadBytes: largest accepted upload.
//   - SessionCookieName / SessionTTL: browser session settings. SessionTTL
//     applies only when the ID token carries no expiry.
type Config struct {
	ListenAddr          string
	LogLevel            string
	StorageBackend      string
	S3RootUser          string
	S3RootPassword      string
	S3Bucket            string
	S3Region            string
	S3BaseEndpoint      string
	S3UploadRoleARN     string
	CognitoClientID     string
	CognitoClientSecret string
	CognitoDomain       string
	CognitoRedirectURI  string
	CognitoLogoutURI    string
	MaxUploadBytes      int64
	SessionCookieName   string
	SessionTTL          time.Duration
}

// LoadDefaults populates Config with development defaults pointing at a
// local MinIO and a local browser origin.
// NOTE: the S3 credentials are insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":5173"
	c.LogLevel = "info"
	c.StorageBackend = StorageS3
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "shares"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.CognitoRedirectURI = "http://localhost:5173/callback"
	c.CognitoLogoutURI = "http://localhost:5173"
	c.MaxUploadBytes = 10 << 20
	c.SessionCookieName = "s3share_session"
	c.SessionTTL = time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
