package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/syncbox/internal/common"
	"github.com/dmitrijs2005/syncbox/internal/progress"
)

// Seams for tests.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// s3API is the subset of the S3 client used by S3Store. *s3.Client
// satisfies it; tests substitute a stub.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Config holds the settings needed to reach one S3 bucket.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, for S3-compatible services (MinIO)
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool // required for most self-hosted endpoints
}

// S3Store is an S3-backed implementation of Store.
type S3Store struct {
	api      s3API
	bucket   string
	renderer progress.Renderer
}

// NewS3Store builds an S3 client for cfg and returns a store bound to
// cfg.Bucket. renderer may be nil to disable progress output.
func NewS3Store(ctx context.Context, cfg Config, renderer progress.Renderer) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3StoreWithAPI(client, cfg.Bucket, renderer), nil
}

func newS3StoreWithAPI(api s3API, bucket string, renderer progress.Renderer) *S3Store {
	if renderer == nil {
		renderer = progress.Noop{}
	}
	return &S3Store{api: api, bucket: bucket, renderer: renderer}
}

// Upload puts the file at localPath into the bucket under key.
func (s *S3Store) Upload(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", common.ErrTransfer, localPath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %v", common.ErrTransfer, localPath, err)
	}

	body := s.renderer.TrackReader(key, fi.Size(), f)

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(fi.Size()),
	})
	if err != nil {
		return fmt.Errorf("%w: put %q to bucket %q: %v", common.ErrTransfer, key, s.bucket, err)
	}

	return nil
}

// Download streams the object named key into localPath. The object is
// written to a temp file first and renamed into place, so a failed
// download never leaves a truncated file in the output directory.
func (s *S3Store) Download(ctx context.Context, key, localPath string) error {
	resp, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: get %q from bucket %q: %v", common.ErrTransfer, key, s.bucket, err)
	}
	defer resp.Body.Close()

	var total int64
	if resp.ContentLength != nil {
		total = *resp.ContentLength
	}
	body := s.renderer.TrackReader(key, total, resp.Body)

	dir := filepath.Dir(localPath)
	tmp, err := os.CreateTemp(dir, filepath.Base(localPath)+".part*")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %v", common.ErrTransfer, dir, err)
	}

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: read %q body: %v", common.ErrTransfer, key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close temp file: %v", common.ErrTransfer, err)
	}

	if err := os.Rename(tmp.Name(), localPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: place %s: %v", common.ErrTransfer, localPath, err)
	}

	return nil
}

// ListKeys pages through the bucket listing and returns every key.
func (s *S3Store) ListKeys(ctx context.Context) ([]string, error) {
	keys := []string{}

	paginator := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list bucket %q: %v", common.ErrTransfer, s.bucket, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

var _ Store = (*S3Store)(nil)
