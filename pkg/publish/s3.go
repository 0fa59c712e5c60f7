// Package publish uploads built disk images to S3.
package publish

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// DefaultRetries is the number of attempts for an S3 upload until an error
// is raised
const DefaultRetries = 3

// S3Client uploads files to S3.
type S3Client struct {
	uploader *manager.Uploader
}

// NewS3Client returns a new S3Client, configuration is read from env
// variables or the shared AWS configuration files.
func NewS3Client(ctx context.Context, logger zerolog.Logger) (*S3Client, error) {
	s3Logger := &s3Logger{logger: logger}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRetryMaxAttempts(DefaultRetries),
		config.WithLogger(s3Logger),
		config.WithLogConfigurationWarnings(true),
	)
	if err != nil {
		return nil, err
	}

	clt := s3.NewFromConfig(
		cfg,
		func(o *s3.Options) {
			o.UsePathStyle = true
			o.Logger = s3Logger
			o.ClientLogMode = aws.LogRetries
		},
	)

	return &S3Client{uploader: manager.NewUploader(clt)}, nil
}

// Upload uploads a file to an s3 bucket, on success it returns the s3:// URL
// of the object.
func (c *S3Client) Upload(ctx context.Context, path, bucket, key string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	res, err := c.uploader.Upload(ctx,
		&s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        f,
			ContentType: aws.String("application/x-apple-diskimage"),
		},
	)
	if err != nil {
		return "", err
	}

	objectKey := key
	if res.Key != nil {
		objectKey = *res.Key
	}
	u := url.URL{
		Scheme: "s3",
		Host:   bucket,
		Path:   "/" + strings.TrimPrefix(objectKey, "/"),
	}
	return u.String(), nil
}

// ParseURL splits an s3://bucket/key URL. The key may be empty or end in a
// slash, the file name is then appended by ObjectKey.
func ParseURL(u string) (bucket, key string, err error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", "", err
	}

	if len(parsed.Scheme) > 0 && parsed.Scheme != "s3" {
		return "", "", fmt.Errorf("scheme is %s, expecting s3 or an empty one", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", "", fmt.Errorf("bucket part is missing in %q", u)
	}

	return parsed.Host, strings.TrimPrefix(parsed.Path, "/"), nil
}

// ObjectKey returns key, or key with fileName appended when key is a prefix.
func ObjectKey(key, fileName string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return key + fileName
	}
	return key
}
