// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish uploads a generated output directory to S3.
package publish

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pdiddy/persona-pages/pkg/types"
)

// Uploader is the subset of manager.Uploader used here.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// NewUploader builds an S3 uploader. Static credentials from cfg take
// precedence over the default AWS credential chain.
func NewUploader(ctx context.Context, cfg types.PublishConfig) (*manager.Uploader, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return manager.NewUploader(s3.NewFromConfig(awsCfg)), nil
}

// Dir uploads every regular file under dir to cfg.Bucket, keyed by
// cfg.Prefix joined with the file's slash-separated relative path. Files
// are uploaded in lexical order; the first failure stops the run.
func Dir(ctx context.Context, up Uploader, cfg types.PublishConfig, dir string, w io.Writer) (int, error) {
	if cfg.Bucket == "" {
		return 0, fmt.Errorf("bucket name is required")
	}

	count := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := path.Join(cfg.Prefix, filepath.ToSlash(rel))

		if err := uploadFile(ctx, up, cfg.Bucket, key, p); err != nil {
			return err
		}
		fmt.Fprintf(w, "uploaded: s3://%s/%s\n", cfg.Bucket, key)
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("publishing %s: %w", dir, err)
	}

	fmt.Fprintf(w, "\nPublished %d files to s3://%s/%s\n", count, cfg.Bucket, cfg.Prefix)
	return count, nil
}

func uploadFile(ctx context.Context, up Uploader, bucket, key, p string) error {
	f, err := os.Open(p)
	if err != nil {
		return fmt.Errorf("opening %s: %w", p, err)
	}
	defer f.Close()

	_, err = up.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(p)),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

func contentType(p string) string {
	if ct := mime.TypeByExtension(filepath.Ext(p)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
