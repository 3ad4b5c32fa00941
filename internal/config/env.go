package config

import "os"

// Environment variables read by parseEnv. The Cognito names match the ones
// the hosted UI deployment already exports.
const (
	EnvCognitoClientID     = "COGNITO_USER_POOL_CLIENT_ID"
	EnvCognitoDomain       = "COGNITO_USER_POOL_DOMAIN"
	EnvCognitoClientSecret = "COGNITO_CLIENT_SECRET"
	EnvCognitoRedirectURI  = "COGNITO_REDIRECT_URI"
	EnvCognitoLogoutURI    = "COGNITO_LOGOUT_URI"
	EnvS3UploadRoleARN     = "S3_UPLOAD_ROLE_ARN"
)

func parseEnv(config *Config) {
	vars := map[string]*string{
		EnvCognitoClientID:     &config.CognitoClientID,
		EnvCognitoDomain:       &config.CognitoDomain,
		EnvCognitoClientSecret: &config.CognitoClientSecret,
		EnvCognitoRedirectURI:  &config.CognitoRedirectURI,
		EnvCognitoLogoutURI:    &config.CognitoLogoutURI,
		EnvS3UploadRoleARN:     &config.S3UploadRoleARN,
	}
	for name, dst := range vars {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
}
