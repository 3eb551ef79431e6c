package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 60 * time.Minute

type awsRepository struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
	bucket        string
	baseURL       string
}

// NewAwsRepository stores blobs in an S3 compatible bucket. baseURL is the
// public prefix of the bucket; object URLs are baseURL + "/" + key.
func NewAwsRepository(awsClient *s3.Client, preSignClient *s3.PresignClient, bucket, baseURL string) videos.BlobRepository {
	return &awsRepository{
		client:        awsClient,
		preSignClient: preSignClient,
		bucket:        bucket,
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
}

func (a *awsRepository) Store(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := a.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file : %w", err)
	}
	return a.URL(key), nil
}

func (a *awsRepository) Publish(ctx context.Context, key string, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open segment : %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat segment : %w", err)
	}
	return a.Store(ctx, key, file, info.Size(), "video/mp4")
}

func (a *awsRepository) ListChildren(ctx context.Context, dir string) ([]string, error) {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})

	names := []string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects : %w", err)
		}
		for _, obj := range page.Contents {
			rest := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if rest == "" || strings.Contains(rest, "/") {
				continue
			}
			names = append(names, path.Base(rest))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (a *awsRepository) Remove(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to remove file : %w", err)
	}
	return nil
}

func (a *awsRepository) URL(key string) string {
	return a.baseURL + "/" + strings.TrimLeft(key, "/")
}

// ResolveInput presigns a GET for objects of this bucket so that ffmpeg can
// read them without credentials.
func (a *awsRepository) ResolveInput(ctx context.Context, location string) (string, error) {
	prefix := a.baseURL + "/"
	if !strings.HasPrefix(location, prefix) {
		return location, nil
	}
	req, err := a.preSignClient.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(a.bucket),
			Key:    aws.String(strings.TrimPrefix(location, prefix)),
		},
		s3.WithPresignExpires(presignExpiry),
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign get object : %w", err)
	}
	return req.URL, nil
}
