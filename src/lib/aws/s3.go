package aws

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
)

var ErrStorageDisabled = errors.New("object storage is not configured")

type UploadURL struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectURL string    `json:"objectUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Uploader hands out presigned URLs so clients upload images straight to the bucket.
type Uploader interface {
	PresignUpload(ctx context.Context, prefix, fileName, contentType string) (*UploadURL, error)
}

type PutObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Uploader struct {
	presigner     PutObjectPresigner
	bucket        string
	publicBaseURL string
	ttl           time.Duration
}

func GetS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Could not load default AWS config")
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}

func NewS3Uploader(presigner PutObjectPresigner, bucket, publicBaseURL string, ttl time.Duration) *S3Uploader {
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &S3Uploader{
		presigner:     presigner,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		ttl:           ttl,
	}
}

// ObjectKey builds "<prefix>/<uuid>-<slugged name><ext>".
func ObjectKey(prefix, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := slug.Make(strings.TrimSuffix(path.Base(fileName), path.Ext(fileName)))
	if base == "" {
		base = "file"
	}
	return path.Join(prefix, fmt.Sprintf("%s-%s%s", uuid.NewString(), base, ext))
}

func (u *S3Uploader) PresignUpload(ctx context.Context, prefix, fileName, contentType string) (*UploadURL, error) {
	if u == nil || u.presigner == nil || u.bucket == "" {
		return nil, ErrStorageDisabled
	}
	key := ObjectKey(prefix, fileName)
	req, err := u.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(u.ttl))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Could not generate presigned URL")
		return nil, err
	}
	return &UploadURL{
		UploadURL: req.URL,
		ObjectURL: fmt.Sprintf("%s/%s", u.publicBaseURL, key),
		Key:       key,
		ExpiresAt: time.Now().Add(u.ttl),
	}, nil
}
