package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/recipeai/backend/config"
)

// InvoiceArchive stores raw invoice PDFs in S3 so the original document
// survives the lossy extraction pipeline.
type InvoiceArchive struct {
	s3Config *config.S3Config
	now      func() time.Time
}

// NewInvoiceArchive creates a new InvoiceArchive instance
func NewInvoiceArchive(s3Config *config.S3Config) *InvoiceArchive {
	return &InvoiceArchive{
		s3Config: s3Config,
		now:      time.Now,
	}
}

// ArchiveInvoice uploads the PDF under a date-partitioned key and returns the
// object URL.
func (a *InvoiceArchive) ArchiveInvoice(ctx context.Context, fileName string, data []byte) (string, error) {
	key := fmt.Sprintf("invoices/%s/%s-%s", a.now().Format("2006-01-02"), uuid.New().String(), path.Base(fileName))

	_, err := a.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", a.s3Config.BucketName, key), nil
}
