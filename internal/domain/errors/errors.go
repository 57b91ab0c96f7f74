package errors

import (
	"net/http"

	"warranty/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage replaces the user-facing message while keeping the code
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Is matches any BaseError carrying the same business code, so derived
// errors (WithDetails, WithMessage) still satisfy errors.Is against the
// predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// Predefined error types
var (
	// Authentication errors
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Authentication required",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	// API key errors. Every message mentions "API key" so partners can tell
	// them apart from other 401 responses.
	ErrAPIKeyRequired = NewBaseError(
		http.StatusUnauthorized,
		"API_KEY_REQUIRED",
		"API key is required",
		"",
	)

	ErrAPIKeyMalformed = NewBaseError(
		http.StatusUnauthorized,
		"API_KEY_INVALID_FORMAT",
		"Invalid API key format",
		"",
	)

	ErrAPIKeyInvalid = NewBaseError(
		http.StatusUnauthorized,
		"API_KEY_INVALID",
		"Invalid API key",
		"",
	)

	ErrAPIKeyDisabled = NewBaseError(
		http.StatusUnauthorized,
		"API_KEY_DISABLED",
		"API key is disabled",
		"",
	)

	ErrAPIKeyExpired = NewBaseError(
		http.StatusUnauthorized,
		"API_KEY_EXPIRED",
		"API key has expired",
		"",
	)

	// Authorization errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotStoreAdmin = NewBaseError(
		http.StatusForbidden,
		"NOT_STORE_ADMIN",
		"Only admin users can perform this action",
		"",
	)

	ErrOwnerOnly = NewBaseError(
		http.StatusForbidden,
		"OWNER_ONLY",
		"Only store owners can perform this action",
		"",
	)

	ErrPermissionDenied = NewBaseError(
		http.StatusForbidden,
		"PERMISSION_DENIED",
		"You do not have permission to perform this action",
		"",
	)

	ErrNoStoreAccess = NewBaseError(
		http.StatusForbidden,
		"NO_STORE_ACCESS",
		"No store access",
		"",
	)

	// Not found errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrStoreNotFound = NewBaseError(
		http.StatusNotFound,
		"STORE_NOT_FOUND",
		"Store not found",
		"",
	)

	ErrStoreMemberNotFound = NewBaseError(
		http.StatusNotFound,
		"STORE_MEMBER_NOT_FOUND",
		"Store user not found",
		"",
	)

	ErrTemplateNotFound = NewBaseError(
		http.StatusNotFound,
		"TEMPLATE_NOT_FOUND",
		"Product template not found",
		"",
	)

	ErrBatchNotFound = NewBaseError(
		http.StatusNotFound,
		"BATCH_NOT_FOUND",
		"Batch not found",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrCustomerNotFound = NewBaseError(
		http.StatusNotFound,
		"CUSTOMER_NOT_FOUND",
		"Customer not found",
		"",
	)

	ErrWarrantyNotFound = NewBaseError(
		http.StatusNotFound,
		"WARRANTY_NOT_FOUND",
		"Warranty not found",
		"",
	)

	ErrClaimNotFound = NewBaseError(
		http.StatusNotFound,
		"CLAIM_NOT_FOUND",
		"Claim not found",
		"",
	)

	ErrAPIKeyNotFound = NewBaseError(
		http.StatusNotFound,
		"API_KEY_NOT_FOUND",
		"API key not found",
		"",
	)

	ErrArtifactNotFound = NewBaseError(
		http.StatusNotFound,
		"ARTIFACT_NOT_FOUND",
		"File not found",
		"",
	)

	// Validation errors
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"Invalid input",
		"",
	)

	ErrInvalidQuantity = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		"Quantity is out of range",
		"",
	)

	ErrInvalidStatusTransition = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS_TRANSITION",
		"Invalid claim status transition",
		"",
	)

	ErrInvalidWarrantyState = NewBaseError(
		http.StatusBadRequest,
		"INVALID_WARRANTY_STATE",
		"Only active warranties can have claims",
		"",
	)

	// Uniqueness errors
	ErrDuplicateResource = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_RESOURCE",
		"Resource already exists",
		"",
	)

	ErrDuplicateSerial = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_SERIAL",
		"Serial number already exists",
		"",
	)

	ErrDuplicateWarranty = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_WARRANTY",
		"Warranty already exists for this product",
		"",
	)

	ErrEmailExists = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_EXISTS",
		"Email already exists. Please login instead.",
		"",
	)

	ErrDuplicateMemberEmail = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_MEMBER_EMAIL",
		"Email is already registered in this store",
		"",
	)

	// Operational errors
	ErrSerialExhausted = NewBaseError(
		http.StatusInternalServerError,
		"SERIAL_EXHAUSTED",
		"Unable to generate unique serial numbers",
		"",
	)

	ErrArtifactUploadFailed = NewBaseError(
		http.StatusInternalServerError,
		"ARTIFACT_UPLOAD_FAILED",
		"Failed to upload file",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
