package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"sync"
)

// MockS3Service is an in-memory stand-in for the S3 file store, used in
// tests. It can be switched into bucket-missing mode to exercise the
// resubmit-without-file recovery path.
type MockS3Service struct {
	uploadedFiles map[string][]byte // object key -> content
	bucketMissing bool
	mu            sync.RWMutex
}

// NewMockS3Service creates a new mock file store
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// SetBucketMissing toggles bucket-missing mode; while set, every upload
// fails the way a real missing bucket would.
func (m *MockS3Service) SetBucketMissing(missing bool) {
	m.mu.Lock()
	m.bucketMissing = missing
	m.mu.Unlock()
}

// UploadFile simulates uploading a design file
func (m *MockS3Service) UploadFile(fileHeader *multipart.FileHeader) (string, error) {
	m.mu.RLock()
	missing := m.bucketMissing
	m.mu.RUnlock()
	if missing {
		return "", &UploadError{
			Code:    ErrCodeBucketMissing,
			Message: `The storage bucket "parts" does not exist yet`,
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", &UploadError{Code: ErrCodeUploadFailed, Message: "Failed to open uploaded file", Err: err}
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", &UploadError{Code: ErrCodeUploadFailed, Message: "Failed to read uploaded file", Err: err}
	}

	key := fmt.Sprintf("uploads/mock_%s", filepath.Base(fileHeader.Filename))

	m.mu.Lock()
	m.uploadedFiles[key] = content
	m.mu.Unlock()

	return m.GetPublicURL(key), nil
}

// GetPublicURL returns a mock public URL for an object key
func (m *MockS3Service) GetPublicURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s", key)
}

// GetUploadedFiles returns all uploaded files (for testing assertions)
func (m *MockS3Service) GetUploadedFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make(map[string][]byte, len(m.uploadedFiles))
	for k, v := range m.uploadedFiles {
		files[k] = v
	}
	return files
}

// FileCount returns the number of stored files
func (m *MockS3Service) FileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.uploadedFiles)
}

// Clear removes all files from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.uploadedFiles = make(map[string][]byte)
	m.mu.Unlock()
}
