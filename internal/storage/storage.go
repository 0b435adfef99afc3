// Package storage persists audio artifacts: uploads awaiting transcription
// and synthesized speech returned by text-to-speech jobs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AudioStore abstracts where audio artifacts live.
type AudioStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// LocalAudioStore implements AudioStore on the local filesystem.
type LocalAudioStore struct {
	basePath string
}

// NewLocalAudioStore creates a filesystem-backed store rooted at basePath.
func NewLocalAudioStore(basePath string) (*LocalAudioStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}
	return &LocalAudioStore{basePath: basePath}, nil
}

// Save writes the artifact under basePath.
func (s *LocalAudioStore) Save(_ context.Context, key string, data []byte, _ string) error {
	fullPath := filepath.Join(s.basePath, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Get reads the artifact back.
func (s *LocalAudioStore) Get(_ context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.basePath, key))
}

// Delete removes the artifact.
func (s *LocalAudioStore) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.basePath, key))
}

// S3AudioStore implements AudioStore on an S3 bucket.
type S3AudioStore struct {
	client *s3.Client
	bucket string
}

// NewS3AudioStore creates an S3-backed store using the ambient AWS config.
func NewS3AudioStore(bucket string) (*S3AudioStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, err
	}
	return &S3AudioStore{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Save uploads the artifact.
func (s *S3AudioStore) Save(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

// Get downloads the artifact.
func (s *S3AudioStore) Get(ctx context.Context, key string) ([]byte, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = output.Body.Close() }()

	return io.ReadAll(output.Body)
}

// Delete removes the artifact.
func (s *S3AudioStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// NewAudioStore creates the store selected by storageType ("s3" or "local").
func NewAudioStore(storageType, pathOrBucket string) (AudioStore, error) {
	switch storageType {
	case "s3":
		return NewS3AudioStore(pathOrBucket)
	case "local":
		return NewLocalAudioStore(pathOrBucket)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}
