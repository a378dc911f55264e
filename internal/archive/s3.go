package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"sislog/internal/config"
	"sislog/internal/logi"
)

// S3Archive stores snapshots in an S3 bucket (or an S3-compatible service)
// under <prefix>/snapshots/<stationID>/<name>.
type S3Archive struct {
	name     string
	bucket   string
	prefix   string
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Archive creates an archive backed by the bucket in cfg.
// Credentials come from cfg when set, otherwise from the default AWS chain.
func NewS3Archive(ctx context.Context, cfg config.ArchiveConfig) (*S3Archive, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 archive requires s3_bucket to be set")
	}
	if cfg.S3Region == "" {
		return nil, fmt.Errorf("s3 archive requires s3_region to be set")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archive{
		name:     cfg.Name,
		bucket:   cfg.S3Bucket,
		prefix:   strings.Trim(cfg.S3Prefix, "/"),
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// objectKey returns the object key of a snapshot, honouring the prefix.
func (a *S3Archive) objectKey(stationID, name string) string {
	return path.Join(a.prefix, snapshotKey(stationID, name))
}

// PutSnapshot uploads a snapshot. Large snapshots are sent in parts.
func (a *S3Archive) PutSnapshot(stationID, name string, r io.Reader, size int64) error {
	if err := validateKey(stationID, name); err != nil {
		return err
	}

	counter := &countingReader{r: r}
	_, err := a.uploader.Upload(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.objectKey(stationID, name)),
		Body:   counter,
	})
	if err != nil {
		return fmt.Errorf("uploading snapshot: %w", err)
	}

	if counter.n != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, counter.n)
	}
	return nil
}

// GetSnapshot downloads a snapshot and writes it to w.
func (a *S3Archive) GetSnapshot(stationID, name string, w io.Writer) error {
	if err := validateKey(stationID, name); err != nil {
		return err
	}

	out, err := a.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.objectKey(stationID, name)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return fmt.Errorf("%w: snapshot %q for station %s", logi.ErrNotFound, name, stationID)
		}
		return fmt.Errorf("downloading snapshot: %w", err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the snapshot names stored for a station, newest first.
func (a *S3Archive) ListSnapshots(stationID string) ([]string, error) {
	if err := validateName("station id", stationID); err != nil {
		return nil, err
	}

	prefix := a.objectKey(stationID, "") + "/"
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})

	names := []string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.Background())
		if err != nil {
			return nil, fmt.Errorf("listing snapshots: %w", err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			names = append(names, name)
		}
	}
	return newestFirst(names), nil
}

// ValidateSetup checks that the bucket exists and is reachable with the
// configured credentials.
func (a *S3Archive) ValidateSetup() error {
	_, err := a.client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 bucket %s not accessible: %w", a.bucket, err)
	}
	return nil
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Compile-time check that S3Archive implements logi.Archive interface
var _ logi.Archive = (*S3Archive)(nil)
