package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/s3share/internal/flagx"
	"github.com/dmitrijs2005/s3share/internal/timex"
	"gopkg.in/yaml.v2"
)

// FileConfig is the on-disk shape of the configuration. It is only used for
// unmarshalling; set fields are copied into Config, empty ones are ignored.
type FileConfig struct {
	ListenAddr          string         `json:"listen_addr" yaml:"listen_addr"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	StorageBackend      string         `json:"storage_backend" yaml:"storage_backend"`
	S3RootUser          string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket            string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region            string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3UploadRoleARN     string         `json:"s3_upload_role_arn" yaml:"s3_upload_role_arn"`
	CognitoClientID     string         `json:"cognito_client_id" yaml:"cognito_client_id"`
	CognitoClientSecret string         `json:"cognito_client_secret" yaml:"cognito_client_secret"`
	CognitoDomain       string         `json:"cognito_domain" yaml:"cognito_domain"`
	CognitoRedirectURI  string         `json:"cognito_redirect_uri" yaml:"cognito_redirect_uri"`
	CognitoLogoutURI    string         `json:"cognito_logout_uri" yaml:"cognito_logout_uri"`
	MaxUploadBytes      int64          `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	SessionCookieName   string         `json:"session_cookie_name" yaml:"session_cookie_name"`
	SessionTTL          timex.Duration `json:"session_ttl" yaml:"session_ttl"`
}

// parseFile loads the file named by -c / -config, if any. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON. An unreadable or
// malformed file panics, like a malformed flag does.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func (fc *FileConfig) apply(config *Config) {
	setString(&config.ListenAddr, fc.ListenAddr)
	setString(&config.LogLevel, fc.LogLevel)
	setString(&config.StorageBackend, fc.StorageBackend)
	setString(&config.S3RootUser, fc.S3RootUser)
	setString(&config.S3RootPassword, fc.S3RootPassword)
	setString(&config.S3Bucket, fc.S3Bucket)
	setString(&config.S3Region, fc.S3Region)
	setString(&config.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&config.S3UploadRoleARN, fc.S3UploadRoleARN)
	setString(&config.CognitoClientID, fc.CognitoClientID)
	setString(&config.CognitoClientSecret, fc.CognitoClientSecret)
	setString(&config.CognitoDomain, fc.CognitoDomain)
	setString(&config.CognitoRedirectURI, fc.CognitoRedirectURI)
	setString(&config.CognitoLogoutURI, fc.CognitoLogoutURI)
	setString(&config.SessionCookieName, fc.SessionCookieName)
	if fc.MaxUploadBytes > 0 {
		config.MaxUploadBytes = fc.MaxUploadBytes
	}
	if fc.SessionTTL.Duration > 0 {
		config.SessionTTL = fc.SessionTTL.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
