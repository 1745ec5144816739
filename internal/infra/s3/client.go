package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"filevault/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	emptyAWSSessionToken = ""

	errFailedCreateAWSSessionFmt     = "failed to create AWS session: %w"
	errFailedUploadObjectFmt         = "failed to upload object: %w"
	errFailedPresignDownloadURLFmt   = "failed to generate presigned download URL: %w"
	errFailedCopyObjectFmt           = "failed to copy object: %w"
	errFailedDeleteObjectFmt         = "failed to delete object: %w"
)

// Client wraps S3 access against the single storage bucket. Every
// operation is one remote call with no retries; failures surface to the
// caller wrapped.
type Client struct {
	svc            *s3.S3
	bucket         string
	downloadURLTTL time.Duration
}

func NewClient(cfg *config.AWSConfig, downloadURLTTL time.Duration) (*Client, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return &Client{
		svc:            s3.New(sess),
		bucket:         cfg.S3Bucket,
		downloadURLTTL: downloadURLTTL,
	}, nil
}

// Upload stores file bytes at the given key.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   aws.ReadSeekCloser(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.svc.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf(errFailedUploadObjectFmt, err)
	}

	return nil
}

// PresignDownloadURL mints a time-limited capability URL for one object.
// The object's existence is not checked; a stale key yields a URL that
// 404s at fetch time.
func (c *Client) PresignDownloadURL(ctx context.Context, key string) (string, error) {
	req, _ := c.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)

	url, err := req.Presign(c.downloadURLTTL)
	if err != nil {
		return "", fmt.Errorf(errFailedPresignDownloadURLFmt, err)
	}

	return url, nil
}

// CopyObject duplicates a blob within the bucket.
func (c *Client) CopyObject(ctx context.Context, sourceKey, destKey string) error {
	_, err := c.svc.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(c.bucket),
		CopySource: aws.String(c.bucket + "/" + sourceKey),
		Key:        aws.String(destKey),
	})

	if err != nil {
		return fmt.Errorf(errFailedCopyObjectFmt, err)
	}

	return nil
}

// DeleteObject removes a blob.
func (c *Client) DeleteObject(ctx context.Context, key string) error {
	_, err := c.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return fmt.Errorf(errFailedDeleteObjectFmt, err)
	}

	return nil
}
