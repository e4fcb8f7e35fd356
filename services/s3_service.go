package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	appConfig "github.com/forgeflow/forgeflow-api/config"
	"github.com/google/uuid"
)

// S3Interface defines the interface for file store operations
type S3Interface interface {
	UploadFile(fileHeader *multipart.FileHeader) (string, error)
	GetPublicURL(key string) string
}

// S3Service stores uploaded design files in an S3 bucket and hands out
// permanent public URLs for them. The bucket must allow public reads; the
// URL is embedded in the order row at creation and never refreshed.
type S3Service struct {
	client        *s3.Client
	bucket        string
	region        string
	publicURLBase string
}

var s3ServiceInstance S3Interface

// InitS3Service initializes the S3 service with AWS credentials
func InitS3Service() (S3Interface, error) {
	cfg := appConfig.GetConfig()

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	s3ServiceInstance = &S3Service{
		client:        client,
		bucket:        cfg.AWSS3Bucket,
		region:        cfg.AWSRegion,
		publicURLBase: cfg.PublicURLBase,
	}

	return s3ServiceInstance, nil
}

// GetS3Service returns the initialized S3 service instance
func GetS3Service() S3Interface {
	return s3ServiceInstance
}

// SetS3Service sets the S3 service instance (primarily for testing)
func SetS3Service(service S3Interface) {
	s3ServiceInstance = service
}

// UploadFile uploads a design file and returns its public URL. A missing
// bucket is reported as a distinct UploadError so the caller can offer the
// resubmit-without-file recovery path instead of a dead end.
func (s *S3Service) UploadFile(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", &UploadError{Code: ErrCodeUploadFailed, Message: "Failed to open uploaded file", Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close uploaded file: %v", closeErr)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", &UploadError{Code: ErrCodeUploadFailed, Message: "Failed to read uploaded file", Err: err}
	}

	// Random object key so concurrent uploads of the same filename never
	// collide. Format: uploads/{uuid}{ext}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), ext)

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			return "", &UploadError{
				Code:    ErrCodeBucketMissing,
				Message: fmt.Sprintf("The storage bucket %q does not exist yet", s.bucket),
				Err:     err,
			}
		}
		return "", &UploadError{Code: ErrCodeUploadFailed, Message: "Failed to upload file", Err: err}
	}

	return s.GetPublicURL(key), nil
}

// GetPublicURL returns the permanent public URL for an object key
func (s *S3Service) GetPublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.publicURLBase != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.publicURLBase, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
