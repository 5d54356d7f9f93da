package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	sc "github.com/dmitrijs2005/finkeeper/internal/server/config"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/releases"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const MsgNoReceipt = "release has no receipt"

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
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	newReceiptID = uuid.NewString
)

// ReceiptService attaches receipt documents stored in an S3-compatible
// bucket to releases.
type ReceiptService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewReceiptService(m repomanager.RepositoryManager, cfg *sc.Config) *ReceiptService {
	return &ReceiptService{
		repomanager: m,
		config:      cfg,
	}
}

// ReceiptKey builds the object key for a new receipt of r.
func ReceiptKey(r *models.Release) string {
	return fmt.Sprintf("receipts/%d/%d/%s", r.Year, r.Month, newReceiptID())
}

func (s *ReceiptService) repo() releases.Repository {
	return s.repomanager.Releases(s.repomanager.Conn())
}

func (s *ReceiptService) urlTTL() time.Duration {
	if s.config.ReceiptURLValidityDuration > 0 {
		return s.config.ReceiptURLValidityDuration
	}
	return 15 * time.Minute
}

func (s *ReceiptService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
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

func (s *ReceiptService) findRelease(ctx context.Context, id string) (*models.Release, error) {
	r, err := s.repo().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.StorageError(err)
	}
	return r, nil
}

// UploadURL assigns a fresh receipt key to the release and returns it with a
// presigned PUT URL. A previously attached receipt is replaced.
func (s *ReceiptService) UploadURL(ctx context.Context, releaseID string) (string, string, error) {
	r, err := s.findRelease(ctx, releaseID)
	if err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := ReceiptKey(r)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.urlTTL()))
	if err != nil {
		return "", "", err
	}

	if err := s.repo().SetReceiptKey(ctx, r.ID, key); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", common.ErrorNotFound
		}
		return "", "", common.StorageError(err)
	}

	return key, req.URL, nil
}

// DownloadURL returns a presigned GET URL for the release's receipt.
func (s *ReceiptService) DownloadURL(ctx context.Context, releaseID string) (string, error) {
	r, err := s.findRelease(ctx, releaseID)
	if err != nil {
		return "", err
	}

	if r.ReceiptKey == "" {
		return "", common.PreconditionError(MsgNoReceipt)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := r.ReceiptKey

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.urlTTL()))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
