package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"github.com/cgddrd/curator/internal"
)

type Option func(*Source)

func WithRegion(region string) Option {
	return func(s *Source) {
		s.Region = region
	}
}

func WithBucket(bucket string) Option {
	return func(s *Source) {
		s.Bucket = bucket
	}
}

func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.Prefix = prefix
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Source) {
		s.logger = l
	}
}

func WithForcePathStyle(forcePathStyle bool) Option {
	return func(s *Source) {
		s.ForcePathStyle = forcePathStyle
	}
}

func WithEndpoint(endpoint string) Option {
	return func(s *Source) {
		s.Endpoint = endpoint
	}
}

// Source reads CSV objects from an S3 bucket prefix. A custom endpoint and
// path style addressing support minio and localstack.
type Source struct {
	logger *zap.Logger
	client *s3.S3

	Endpoint       string
	Region         string
	Bucket         string
	Prefix         string
	ForcePathStyle bool
}

func New(opts ...Option) (*Source, error) {
	s := &Source{
		logger: zap.NewNop(),
	}

	for _, o := range opts {
		o(s)
	}

	cfg := aws.NewConfig().WithS3ForcePathStyle(s.ForcePathStyle)
	if s.Region != "" {
		cfg = cfg.WithRegion(s.Region)
	}
	if s.Endpoint != "" {
		cfg = cfg.WithEndpoint(s.Endpoint)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	s.client = s3.New(sess)
	return s, nil
}

func (s *Source) Name() string {
	return fmt.Sprintf("s3://%s", path.Join(s.Bucket, s.Prefix))
}

// List returns the .csv objects directly under the prefix, sorted by key.
func (s *Source) List(ctx context.Context) ([]internal.File, error) {
	var files []internal.File

	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.Bucket),
		Prefix:    aws.String(s.Prefix),
		Delimiter: aws.String("/"),
	}

	err := s.client.ListObjectsV2PagesWithContext(ctx, input,
		func(page *s3.ListObjectsV2Output, lastPage bool) bool {
			for _, obj := range page.Contents {
				key := aws.StringValue(obj.Key)
				if !strings.EqualFold(path.Ext(key), ".csv") {
					continue
				}
				files = append(files, internal.File{
					Path:  key,
					Table: internal.TableName(key),
				})
			}
			return true
		})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchBucket {
			return nil, fmt.Errorf("%w: %s", internal.ErrPathNotFound, s.Name())
		}
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	s.logger.Debug("listed source bucket",
		zap.String("bucket", s.Bucket),
		zap.String("prefix", s.Prefix),
		zap.Int("files", len(files)),
	)

	return files, nil
}

func (s *Source) Open(ctx context.Context, f internal.File) (io.ReadCloser, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(f.Path),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
