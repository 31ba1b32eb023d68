package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/buildlog-app/buildlog/internal/server/config"
)

// Seams for testing the AWS SDK calls.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
	listObjects = func(c *s3.Client, ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return c.ListObjectsV2(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Store talks to an S3-compatible backend with static credentials and a
// configurable base endpoint (MinIO-friendly).
type S3Store struct {
	config *sc.Config
}

// NewS3Store constructs a store over the S3 settings in cfg.
func NewS3Store(cfg *sc.Config) *S3Store {
	return &S3Store{config: cfg}
}

func (s *S3Store) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func (s *S3Store) Put(ctx context.Context, key string, contentType string, size int64, body io.Reader) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        &s.config.S3Bucket,
		Key:           &key,
		Body:          body,
		ContentType:   &contentType,
		ContentLength: &size,
	})
	if err != nil {
		return fmt.Errorf("s3 put: %w", err)
	}
	return nil
}

func (s *S3Store) Remove(ctx context.Context, key string) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}
	_, err = deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context, prefix string, max int32) ([]string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}
	out, err := listObjects(client, ctx, &s3.ListObjectsV2Input{
		Bucket:  &s.config.S3Bucket,
		Prefix:  &prefix,
		MaxKeys: &max,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 list: %w", err)
	}
	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		if obj.Key != nil {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

// PublicURL builds the path-style object URL off the base endpoint.
func (s *S3Store) PublicURL(key string) string {
	base := strings.TrimRight(s.config.S3BaseEndpoint, "/")
	return fmt.Sprintf("%s/%s/%s", base, s.config.S3Bucket, key)
}

func (s *S3Store) SignedGetURL(ctx context.Context, key string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}
	ttl := s.config.SignedURLTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("s3 presign: %w", err)
	}
	return req.URL, nil
}
