package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	internalConfig "github.com/sefazor/travelmarket-backend/internal/config"
	"go.uber.org/zap"
)

// CloudflareStorage stores package images in an R2 bucket through its S3 API.
type CloudflareStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

func NewCloudflareStorage(ctx context.Context, cfg *internalConfig.Config, logger *zap.Logger) (*CloudflareStorage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKeyID,
			cfg.R2.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &CloudflareStorage{
		client:    client,
		bucket:    cfg.R2.Bucket,
		publicURL: strings.TrimRight(cfg.R2.PublicURL, "/"),
		logger:    logger,
	}, nil
}

func (s *CloudflareStorage) Upload(ctx context.Context, key string, src io.Reader, contentType string) error {
	size, body, err := sizedBody(src)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("r2 upload failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to upload to R2: %w", err)
	}

	s.logger.Debug("r2 upload", zap.String("key", key), zap.Int64("size", size))
	return nil
}

func (s *CloudflareStorage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

func (s *CloudflareStorage) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

// sizedBody measures a seekable reader in place and buffers anything else.
func sizedBody(src io.Reader) (int64, io.Reader, error) {
	if rs, ok := src.(io.ReadSeeker); ok {
		current, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to get current position: %w", err)
		}
		end, err := rs.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to seek to end: %w", err)
		}
		if _, err := rs.Seek(current, io.SeekStart); err != nil {
			return 0, nil, fmt.Errorf("failed to seek back to start: %w", err)
		}
		return end - current, rs, nil
	}

	buf, err := io.ReadAll(src)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read file content: %w", err)
	}
	return int64(len(buf)), bytes.NewReader(buf), nil
}
