package media

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dom/vidtube/internal/config"
	"github.com/dom/vidtube/internal/logging"
)

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// DurationProber reports the playback length of a media file in seconds.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// S3Store keeps media in an S3-compatible bucket under random object keys.
type S3Store struct {
	uploader uploader
	deleter  objectDeleter
	prober   DurationProber
	bucket   string
	baseURL  string
}

func NewS3Store(ctx context.Context, cfg config.ObjectStoreConfig, prober DurationProber) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 store: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	up := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 10 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return newS3Store(up, client, prober, cfg.Bucket, cfg.PublicBaseURL), nil
}

func newS3Store(up uploader, del objectDeleter, prober DurationProber, bucket, baseURL string) *S3Store {
	return &S3Store{
		uploader: up,
		deleter:  del,
		prober:   prober,
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *S3Store) Store(ctx context.Context, localPath string) (Asset, error) {
	if strings.TrimSpace(localPath) == "" {
		return Asset{}, ErrEmptyPath
	}
	defer os.Remove(localPath)

	logger := logging.FromContext(ctx)

	f, err := os.Open(localPath)
	if err != nil {
		return Asset{}, fmt.Errorf("open upload %s: %w", localPath, err)
	}
	defer f.Close()

	var duration float64
	if s.prober != nil {
		if d, err := s.prober.Duration(ctx, localPath); err != nil {
			logger.Warn("probe media duration", slog.String("path", localPath), slog.Any("error", err))
		} else {
			duration = d
		}
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	key := uuid.NewString() + ext

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		input.ContentType = aws.String(ct)
	}

	out, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return Asset{}, fmt.Errorf("s3 upload %s: %w", key, err)
	}

	location := key
	if out != nil && out.Location != "" {
		location = out.Location
	}
	if s.baseURL != "" {
		location = s.baseURL + "/" + key
	}

	logger.Debug("media stored", slog.String("key", key), slog.Float64("duration", duration))

	return Asset{
		URL:       location,
		SecureURL: secure(location),
		PublicID:  key,
		Duration:  duration,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, publicID string) (bool, error) {
	if strings.TrimSpace(publicID) == "" {
		return false, nil
	}

	_, err := s.deleter.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return false, fmt.Errorf("s3 delete %s: %w", publicID, err)
	}
	return true, nil
}

func secure(location string) string {
	if rest, ok := strings.CutPrefix(location, "http://"); ok {
		return "https://" + rest
	}
	return location
}
