// Package storage archives generated donation receipts to S3. Archival is
// best-effort: callers log failures and carry on.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ReceiptArchive struct {
	client *s3.Client
	bucket string
}

func NewReceiptArchive(client *s3.Client, bucket string) *ReceiptArchive {
	return &ReceiptArchive{client: client, bucket: bucket}
}

func (a *ReceiptArchive) Enabled() bool {
	return a != nil && a.bucket != ""
}

func (a *ReceiptArchive) Put(ctx context.Context, key string, pdf []byte) error {
	if !a.Enabled() {
		return nil
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("put receipt %s: %w", key, err)
	}

	return nil
}
