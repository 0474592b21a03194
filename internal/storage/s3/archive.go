// Package s3 archives rendered invoices in an S3 (or S3-compatible) bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hvacbill/internal/config"
	"hvacbill/internal/port"
)

type archive struct {
	bucket    string
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewS3Archive creates an InvoiceArchive over cfg.Bucket. A custom endpoint
// switches to path-style addressing for MinIO and LocalStack.
func NewS3Archive(ctx context.Context, cfg *config.S3Config) (port.InvoiceArchive, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 archive: bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 archive: loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &archive{
		bucket:    cfg.Bucket,
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
	}, nil
}

func (a *archive) Put(ctx context.Context, obj port.ArchiveObject) error {
	_, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(a.bucket),
		Key:                aws.String(obj.Key),
		Body:               bytes.NewReader(obj.Content),
		ContentType:        aws.String(obj.ContentType),
		ContentDisposition: aws.String(fmt.Sprintf(`inline; filename="%s"`, obj.Filename)),
		Metadata:           map[string]string{"invoice-number": obj.InvoiceNumber},
	})
	if err != nil {
		return fmt.Errorf("s3 archive put %s: %w", obj.Key, err)
	}
	return nil
}

func (a *archive) URL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("s3 archive presign %s: %w", key, err)
	}
	return req.URL, nil
}

func (a *archive) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 archive delete %s: %w", key, err)
	}
	return nil
}
