package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/s3share/internal/flagx"
)

var serverFlags = []string{
	"-a", "-l", "-s",
	"-u", "-p", "-b", "-g", "-e", "-r",
	"-i", "-k", "-o", "-y", "-x",
	"-m", "-n", "-t",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5173")
//	-l string   log level
//	-s string   storage backend: s3 or memory
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-r string   IAM role assumed with the uploader's ID token
//	-i string   Cognito app client id
//	-k string   Cognito app client secret
//	-o string   Cognito hosted UI domain (e.g., "https://auth.example.com")
//	-y string   OAuth redirect URI
//	-x string   logout redirect URI
//	-m int      max upload size, MiB
//	-n string   session cookie name
//	-t int      session TTL for tokens without expiry, minutes
//
// os.Args is filtered with flagx.FilterArgs first, so binaries that define
// their own flags can share the command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend (s3, memory)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3UploadRoleARN, "r", config.S3UploadRoleARN, "S3 upload role ARN")

	fs.StringVar(&config.CognitoClientID, "i", config.CognitoClientID, "Cognito client id")
	fs.StringVar(&config.CognitoClientSecret, "k", config.CognitoClientSecret, "Cognito client secret")
	fs.StringVar(&config.CognitoDomain, "o", config.CognitoDomain, "Cognito domain")
	fs.StringVar(&config.CognitoRedirectURI, "y", config.CognitoRedirectURI, "OAuth redirect URI")
	fs.StringVar(&config.CognitoLogoutURI, "x", config.CognitoLogoutURI, "logout redirect URI")

	maxUploadMiB := fs.Int64("m", config.MaxUploadBytes>>20, "max upload size (in MiB)")
	fs.StringVar(&config.SessionCookieName, "n", config.SessionCookieName, "session cookie name")
	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session ttl (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Unit-converted flags only override when given, so a byte-exact value
	// from the config file is not rounded to whole MiB.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "m":
			config.MaxUploadBytes = *maxUploadMiB << 20
		case "t":
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
}
