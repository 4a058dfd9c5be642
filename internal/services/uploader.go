package services

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/ojas8taori/trash-taste-ai/internal/config"
)

// Uploader stores scan and report images in an R2 bucket via the S3 API.
// Optional: when R2 is not configured the app persists scans without an
// image URL.
type Uploader struct {
	client *s3.Client
	bucket string
	public string
}

// NewUploader returns nil (not an error) when R2 credentials are absent.
func NewUploader() (*Uploader, error) {
	cfg := appConfig.AppConfig
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" {
		return nil, nil
	}

	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	publicURL := cfg.R2PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.R2BucketName,
		public: publicURL,
	}, nil
}

// Upload puts the object and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", u.public, key), nil
}
