package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/hearthplan/backend/config"
)

// ImageService stores recipe photos in S3.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage stores a photo for a recipe and returns a
// presigned URL for it.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, body io.Reader, contentType string) (string, error) {
	key := fmt.Sprintf("recipes/%s/%s", recipeID, uuid.New())

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url, err := s.s3Config.GeneratePresignedURL(ctx, key, 7*24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to presign image URL: %w", err)
	}

	log.Printf("Uploaded recipe image %s", key)
	return url, nil
}
