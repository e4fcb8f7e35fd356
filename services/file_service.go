package services

import (
	"mime/multipart"

	"github.com/forgeflow/forgeflow-api/utils"
)

// FileService validates and stores uploaded design files. The upload runs
// before the order insert; a crash between the two leaves an orphaned blob
// with no referencing order, which this design accepts.
type FileService interface {
	// UploadDesignFile validates and uploads a design file, returning its
	// public URL.
	UploadDesignFile(fileHeader *multipart.FileHeader) (string, error)
}

// S3FileService implements FileService on top of the S3 file store
type S3FileService struct {
	s3Service S3Interface
}

var fileServiceInstance FileService

// InitFileService initializes the file service with an S3 backend
func InitFileService(s3Service S3Interface) FileService {
	fileServiceInstance = &S3FileService{s3Service: s3Service}
	return fileServiceInstance
}

// InitUnconfiguredFileService installs the stand-in used when storage
// credentials are missing. The decision is made once at startup; call
// sites never check configuration themselves.
func InitUnconfiguredFileService() FileService {
	fileServiceInstance = &UnconfiguredFileService{}
	return fileServiceInstance
}

// GetFileService returns the initialized file service instance
func GetFileService() FileService {
	return fileServiceInstance
}

// SetFileService sets the file service instance (primarily for testing)
func SetFileService(service FileService) {
	fileServiceInstance = service
}

// UploadDesignFile validates and uploads a design file to S3
func (s *S3FileService) UploadDesignFile(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateDesignFile(fileHeader); err != nil {
		return "", err
	}
	return s.s3Service.UploadFile(fileHeader)
}

// UnconfiguredFileService rejects every upload with a clear error. Orders
// without files still work against an unconfigured file store.
type UnconfiguredFileService struct{}

// UploadDesignFile always fails: there is nowhere to put the file
func (s *UnconfiguredFileService) UploadDesignFile(fileHeader *multipart.FileHeader) (string, error) {
	return "", &UploadError{
		Code:    ErrCodeNotConfigured,
		Message: "File storage is not configured; submit the order without a file or set the AWS_S3_* environment variables",
	}
}
