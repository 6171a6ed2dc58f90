package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// 商品画像をS3に置く
type S3ImageStore struct {
	uploader *manager.Uploader
	bucket   string
}

// 認証情報は環境変数・共有設定ファイルから読む
func NewS3ImageStore(ctx context.Context, region string, bucket string) (*S3ImageStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3ImageStore{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}, nil
}

func (s *S3ImageStore) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return result.Location, nil
}
