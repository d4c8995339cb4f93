package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/contractor-marketplace-backend/config"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
)

type PutObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// PlanStorage issues presigned S3 uploads for project files (plans, photos).
type PlanStorage struct {
	presigner PutObjectPresigner
	bucket    string
	ttl       time.Duration
	now       func() time.Time
}

var _ marketplace.FileStore = (*PlanStorage)(nil)

// NewPlanStorage returns nil when S3_BUCKET is not set.
func NewPlanStorage(ctx context.Context, cfg map[string]string) (*PlanStorage, error) {
	bucket := config.GetString(cfg, "S3_BUCKET", "")
	if bucket == "" {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	presigner := s3.NewPresignClient(s3.NewFromConfig(awsCfg))
	return NewPlanStorageWithPresigner(presigner, bucket, config.GetDuration(cfg, "S3_UPLOAD_TTL_SECONDS", 15*time.Minute)), nil
}

func NewPlanStorageWithPresigner(presigner PutObjectPresigner, bucket string, ttl time.Duration) *PlanStorage {
	return &PlanStorage{presigner: presigner, bucket: bucket, ttl: ttl, now: time.Now}
}

func (p *PlanStorage) PresignUpload(ctx context.Context, key, contentType string) (marketplace.PresignedUpload, error) {
	req, err := p.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return marketplace.PresignedUpload{}, errs.NewServiceUnavailableError("file storage", err)
	}
	return marketplace.PresignedUpload{
		URL:       req.URL,
		Key:       key,
		ExpiresAt: p.now().Add(p.ttl),
	}, nil
}
