package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/filex"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	sc "github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/google/uuid"
)

const uploadURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ImageUpload is a presigned slot for one event image.
type ImageUpload struct {
	Key       string
	UploadURL string
	PublicURL string
}

// StorageService hands out presigned upload URLs for event images kept in
// an S3-compatible bucket.
type StorageService struct {
	config *sc.Config
	logger logging.Logger
}

func NewStorageService(cfg *sc.Config, logger logging.Logger) *StorageService {
	return &StorageService{config: cfg, logger: logger.With("module", "storage")}
}

// imageKey builds "events/<uuid><ext>" with the extension lower-cased.
func imageKey(fileName string) string {
	return "events/" + uuid.NewString() + strings.ToLower(path.Ext(fileName))
}

func (s *StorageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PublicURL returns the public address of key.
func (s *StorageService) PublicURL(key string) string {
	return strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key
}

// CreateImageUpload presigns a PUT for a new image named after fileName.
// Only jpg, jpeg, png and webp files are accepted.
func (s *StorageService) CreateImageUpload(ctx context.Context, fileName, contentType string) (*ImageUpload, error) {
	expected, err := filex.ImageContentType(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if contentType == "" {
		contentType = expected
	}
	if contentType != expected {
		return nil, fmt.Errorf("%w: content type %q does not match %q", common.ErrorValidation, contentType, path.Ext(fileName))
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		s.logger.Error(ctx, "s3 client init failed", "error", err)
		return nil, common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := imageKey(fileName)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:       &bucket,
		Key:          &key,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	}, s3.WithPresignExpires(uploadURLValidity))
	if err != nil {
		s.logger.Error(ctx, "presign failed", "key", key, "error", err)
		return nil, common.ErrorInternal
	}

	return &ImageUpload{Key: key, UploadURL: req.URL, PublicURL: s.PublicURL(key)}, nil
}
