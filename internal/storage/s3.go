package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/dmitrijs2005/s3share/internal/common"
	sc "github.com/dmitrijs2005/s3share/internal/config"
)

// Test seams.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newWebIdentityProvider = func(cfg aws.Config, endpoint, roleARN, token string) aws.CredentialsProvider {
		client := sts.NewFromConfig(cfg, func(o *sts.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
			}
		})
		return stscreds.NewWebIdentityRoleProvider(client, roleARN, identityToken(token))
	}
)

// identityToken hands an in-memory ID token to stscreds.
type identityToken string

func (t identityToken) GetIdentityToken() ([]byte, error) {
	return []byte(t), nil
}

// S3Store keeps objects in one bucket of an S3-compatible service.
//
// Reads always use the static credentials. Writes do too unless an upload
// role is configured, in which case each Put assumes that role with the
// uploader's ID token (AssumeRoleWithWebIdentity).
type S3Store struct {
	client   *s3.Client
	awsCfg   aws.Config
	bucket   string
	endpoint string
	roleARN  string
}

func NewS3Store(ctx context.Context, c *sc.Config) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)),
		config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
		config.WithRequestChecksumCalculation(aws.RequestChecksumCalculationWhenRequired),
		config.WithResponseChecksumValidation(aws.ResponseChecksumValidationWhenRequired),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	s := &S3Store{
		awsCfg:   cfg,
		bucket:   c.S3Bucket,
		endpoint: c.S3BaseEndpoint,
		roleARN:  c.S3UploadRoleARN,
	}
	s.client = newS3ClientFromConfig(cfg, s.clientOptions)
	return s, nil
}

func (s *S3Store) clientOptions(o *s3.Options) {
	if s.endpoint != "" {
		o.BaseEndpoint = aws.String(s.endpoint)
		o.UsePathStyle = true
	}
}

func (s *S3Store) Put(ctx context.Context, key string, obj Object, token string) error {
	var optFns []func(*s3.Options)
	if s.roleARN != "" {
		if token == "" {
			return common.ErrorUnauthorized
		}
		provider := newWebIdentityProvider(s.awsCfg, s.endpoint, s.roleARN, token)
		optFns = append(optFns, func(o *s3.Options) {
			o.Credentials = aws.NewCredentialsCache(provider)
		})
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Body),
		ContentLength: aws.Int64(int64(len(obj.Body))),
		ContentType:   aws.String(contentType),
	}, optFns...)
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, key string) (Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return Object{}, common.ErrorNotFound
		}
		return Object{}, fmt.Errorf("get object: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return Object{}, fmt.Errorf("read object: %w", err)
	}

	return Object{Body: body, ContentType: aws.ToString(out.ContentType)}, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	var respErr interface{ HTTPStatusCode() int }
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == http.StatusNotFound
	}
	return false
}
