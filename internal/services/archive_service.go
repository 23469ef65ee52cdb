package services

import (
	"bytes"
	"context"
	"fmt"

	appconfig "billing-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// ArchiveService keeps an offsite copy of every issued invoice PDF in an
// S3-compatible bucket (Cloudflare R2 in production). The archive is an
// extra safety net, never part of the issuing transaction.
type ArchiveService struct {
	client *s3.Client
	bucket string
}

// NewArchiveService builds the uploader, or a disabled no-op service when
// archival is not configured.
func NewArchiveService(cfg *appconfig.Config) *ArchiveService {
	a := cfg.Archive
	if !a.Enabled || a.Endpoint == "" || a.Bucket == "" || a.AccessKey == "" {
		return &ArchiveService{}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.AccessKey,
			a.SecretKey,
			"",
		)),
		awsconfig.WithRegion(a.Region),
	)
	if err != nil {
		log.Warn().Err(err).Msg("archive disabled: failed to configure client")
		return &ArchiveService{}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(a.Endpoint)
	})

	return &ArchiveService{client: client, bucket: a.Bucket}
}

// Enabled reports whether uploads will actually happen.
func (s *ArchiveService) Enabled() bool {
	return s.client != nil
}

// Upload stores one PDF under invoices/<key>.
func (s *ArchiveService) Upload(ctx context.Context, key string, pdf []byte) error {
	if s.client == nil {
		return nil
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String("invoices/" + key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
