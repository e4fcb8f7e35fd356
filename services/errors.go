package services

// Error codes shared across services. Controllers map these onto HTTP
// status codes and the standard error response envelope.
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeStore         = "STORE_ERROR"
	ErrCodeBucketMissing = "BUCKET_MISSING"
	ErrCodeUploadFailed  = "UPLOAD_FAILED"
	ErrCodeNotConfigured = "STORAGE_NOT_CONFIGURED"
)

// ValidationError reports invalid input caught before any store call.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the standard code
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Code: ErrCodeValidation, Message: message}
}

// StoreError reports a failed order or session store operation. No store
// call is retried; the error surfaces directly to the caller.
type StoreError struct {
	Code    string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps a failed store call
func NewStoreError(message string, err error) *StoreError {
	return &StoreError{Code: ErrCodeStore, Message: message, Err: err}
}

// NewNotFoundError reports a lookup by id that matched no row
func NewNotFoundError(message string) *StoreError {
	return &StoreError{Code: ErrCodeNotFound, Message: message}
}

// UploadError reports a failed file store operation. BUCKET_MISSING is the
// one case with a recovery path: the client may resubmit the order without
// a file.
type UploadError struct {
	Code    string
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// IsBucketMissing reports whether err is an UploadError for a missing
// storage bucket.
func IsBucketMissing(err error) bool {
	if ue, ok := err.(*UploadError); ok {
		return ue.Code == ErrCodeBucketMissing
	}
	return false
}
