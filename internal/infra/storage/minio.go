package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store archives rendered charts in a MinIO bucket.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
	prefix     string

	// PresignExpiry > 0 returns presigned GET URLs instead of public ones.
	PresignExpiry time.Duration
}

// New buat koneksi MinIO dan pastikan bucket ada
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region, prefix: "charts"}, nil
}

// WithPrefix sets the key prefix for uploaded charts.
func (s *Store) WithPrefix(prefix string) *Store {
	s.prefix = strings.Trim(prefix, "/")
	return s
}

// UploadChart implementasi ChartArchive
func (s *Store) UploadChart(ctx context.Context, key string, png []byte) (string, error) {
	objectKey := s.objectKey(key)
	_, err := s.client.PutObject(ctx, s.bucketName, objectKey, bytes.NewReader(png), int64(len(png)), minio.PutObjectOptions{
		ContentType:  "image/png",
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}

	if s.PresignExpiry > 0 {
		u, err := s.client.PresignedGetObject(ctx, s.bucketName, objectKey, s.PresignExpiry, nil)
		if err != nil {
			return "", fmt.Errorf("presign %s: %w", objectKey, err)
		}
		return u.String(), nil
	}
	// URL publik (jika bucket public)
	return objectURL(s.client.EndpointURL(), s.bucketName, objectKey), nil
}

// Ping checks that the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.bucketName)
	}
	return nil
}

func (s *Store) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func objectURL(endpoint *url.URL, bucket, key string) string {
	scheme := "http"
	if endpoint != nil && endpoint.Scheme != "" {
		scheme = endpoint.Scheme
	}
	host := ""
	if endpoint != nil {
		host = endpoint.Host
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, host, bucket, key)
}
