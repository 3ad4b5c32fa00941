package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv(EnvCognitoClientID, "client")
	t.Setenv(EnvCognitoDomain, "https://auth.example.com")
	t.Setenv(EnvCognitoClientSecret, "")
	t.Setenv(EnvS3UploadRoleARN, "arn:aws:iam::1:role/up")

	cfg := &Config{CognitoClientSecret: "keep", CognitoLogoutURI: "http://localhost:5173"}
	parseEnv(cfg)

	assert.Equal(t, "client", cfg.CognitoClientID)
	assert.Equal(t, "https://auth.example.com", cfg.CognitoDomain)
	assert.Equal(t, "keep", cfg.CognitoClientSecret, "empty variables are ignored")
	assert.Equal(t, "arn:aws:iam::1:role/up", cfg.S3UploadRoleARN)
	assert.Equal(t, "http://localhost:5173", cfg.CognitoLogoutURI)
}
