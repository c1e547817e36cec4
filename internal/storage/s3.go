// Package storage moves source and result files between the local disk and
// the S3 bucket the transcode service reads from and writes to.
package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 is a bucket-scoped transfer client. Uploads and downloads go through
// the transfer manager so large media files move in concurrent parts.
type S3 struct {
	uploader   *manager.Uploader
	downloader *manager.Downloader
	bucket     string
}

// NewS3 builds a transfer client for one bucket.
func NewS3(awsCfg aws.Config, bucket string) *S3 {
	client := s3.NewFromConfig(awsCfg)
	return &S3{
		uploader:   manager.NewUploader(client),
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
	}
}

// Upload copies localPath to the given key and returns the object's s3 URI
// and the number of bytes sent.
func (s *S3) Upload(ctx context.Context, localPath, key string) (string, int64, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", 0, fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("stat %s: %w", localPath, err)
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		in.ContentType = aws.String(ct)
	}
	if _, err := s.uploader.Upload(ctx, in); err != nil {
		return "", 0, fmt.Errorf("uploading %s: %w", key, err)
	}
	return "s3://" + s.bucket + "/" + key, info.Size(), nil
}

// Download fetches the object at uri into localPath, creating parent
// directories as needed, and returns the number of bytes written.
func (s *S3) Download(ctx context.Context, uri, localPath string) (int64, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", localPath, err)
	}
	defer f.Close()

	n, err := s.downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("downloading %s: %w", uri, err)
	}
	return n, nil
}

// ParseURI splits an s3://bucket/key URI into its bucket and key parts.
func ParseURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri missing bucket or key: %q", uri)
	}
	return bucket, key, nil
}
