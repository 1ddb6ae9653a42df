package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"resonate_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PhotoService issues presigned URLs for profile photos. Confirming an upload
// bumps the profile's lastRefreshedAt, which is the echo refresh: the
// profile's discoverability clock restarts from that moment.
type PhotoService struct {
	Dynamo  DynamoAPI
	Presign *s3.PresignClient
	Bucket  string
	Clock   func() time.Time
}

// InitializeS3Client initializes the S3 client
func InitializeS3Client(region string) *s3.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg)
}

// NewPhotoService builds a PhotoService over an S3 client.
func NewPhotoService(client *s3.Client, bucket string, dynamo DynamoAPI) *PhotoService {
	return &PhotoService{
		Dynamo:  dynamo,
		Presign: s3.NewPresignClient(client),
		Bucket:  bucket,
	}
}

func (ps *PhotoService) now() time.Time {
	if ps.Clock != nil {
		return ps.Clock()
	}
	return time.Now().UTC()
}

// GenerateUploadURL generates a presigned URL for uploading a profile photo.
func (ps *PhotoService) GenerateUploadURL(ctx context.Context, userID, fileType string) (string, string, error) {
	key := "profile-pics/" + userID + "/" + uuid.NewString()
	params := &s3.PutObjectInput{
		Bucket:      aws.String(ps.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigned, err := ps.Presign.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return presigned.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a stored photo.
func (ps *PhotoService) GenerateReadURL(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(ps.Bucket),
		Key:    aws.String(key),
	}
	presigned, err := ps.Presign.PresignGetObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", fmt.Errorf("failed to presign read: %w", err)
	}
	return presigned.URL, nil
}

// ConfirmUpload records the uploaded photo on the profile and resets its
// echo clock.
func (ps *PhotoService) ConfirmUpload(ctx context.Context, userID, key string) (models.Profile, error) {
	profile, err := getProfile(ctx, ps.Dynamo, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to fetch profile for %s: %w", userID, err)
	}

	profile.PhotoKey = key
	profile.LastRefreshedAt = ps.now()
	if err := ps.Dynamo.PutItem(ctx, models.ProfilesTable, profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to persist photo refresh for %s: %w", userID, err)
	}
	return profile, nil
}
