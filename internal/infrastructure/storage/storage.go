package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/config"
)

// ErrArtifactNotFound is returned when the artifact location does not exist
var ErrArtifactNotFound = errors.New("model artifact not found")

const s3PartSize = 10 * 1024 * 1024

// Downloader is the subset of the S3 transfer manager used here
type Downloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

// ArtifactStore opens model artifacts from the local disk or S3
type ArtifactStore struct {
	cfg        config.ModelConfig
	downloader Downloader
}

// NewArtifactStore creates a store. The S3 client is created on first S3 open.
func NewArtifactStore(cfg config.ModelConfig) *ArtifactStore {
	return &ArtifactStore{cfg: cfg}
}

// NewArtifactStoreWithDownloader creates a store with a preconfigured S3 downloader
func NewArtifactStoreWithDownloader(cfg config.ModelConfig, d Downloader) *ArtifactStore {
	return &ArtifactStore{cfg: cfg, downloader: d}
}

// Open returns the artifact bytes at location, either a file path or s3://bucket/key
func (s *ArtifactStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: no location configured", ErrArtifactNotFound)
	}
	if strings.HasPrefix(location, "s3://") {
		return s.openS3(ctx, location)
	}
	return openFile(location)
}

func openFile(location string) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, location)
		}
		return nil, fmt.Errorf("failed to open artifact %s: %w", location, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat artifact %s: %w", location, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("artifact %s is a directory", location)
	}
	return f, nil
}

// ParseS3URI splits s3://bucket/key into its parts
func ParseS3URI(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 uri %q: %w", location, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 uri %q", location)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("s3 uri %q has no object key", location)
	}
	return u.Host, key, nil
}

func (s *ArtifactStore) openS3(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(location)
	if err != nil {
		return nil, err
	}

	d := s.downloader
	if d == nil {
		d, err = s.newDownloader(ctx)
		if err != nil {
			return nil, err
		}
	}

	buffer := manager.NewWriteAtBuffer([]byte{})
	_, err = d.Download(ctx, buffer, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var noBucket *types.NoSuchBucket
		var notFound *types.NotFound
		if errors.As(err, &noKey) || errors.As(err, &noBucket) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, location)
		}
		return nil, fmt.Errorf("failed to download artifact %s: %w", location, err)
	}

	return io.NopCloser(bytes.NewReader(buffer.Bytes())), nil
}

func (s *ArtifactStore) newDownloader(ctx context.Context) (Downloader, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if s.cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(s.cfg.S3Region))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if s.cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return manager.NewDownloader(client, func(d *manager.Downloader) {
		d.PartSize = s3PartSize
	}), nil
}
