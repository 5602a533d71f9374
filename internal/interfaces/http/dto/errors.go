package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts, including losing
	// a claim race on a donation
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeInvalidTransition is used when a status transition is not permitted
	ErrCodeInvalidTransition = "ERR_INVALID_TRANSITION"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeInvalidTransition: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to their wire format
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"INVALID_TRANSITION":   ErrCodeInvalidTransition,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONFLICT":             ErrCodeConflict,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,

	// Field-level validation codes emitted by the domain constructors
	"INVALID_AADHAR":        ErrCodeInvalidInput,
	"INVALID_ADDRESS":       ErrCodeInvalidInput,
	"INVALID_AVAILABILITY":  ErrCodeInvalidInput,
	"INVALID_CAPACITY":      ErrCodeInvalidInput,
	"INVALID_CONTACT":       ErrCodeInvalidInput,
	"INVALID_DESCRIPTION":   ErrCodeInvalidInput,
	"INVALID_DOCUMENT_TYPE": ErrCodeInvalidInput,
	"INVALID_DONATION":      ErrCodeInvalidInput,
	"INVALID_DONOR":         ErrCodeInvalidInput,
	"INVALID_EMAIL":         ErrCodeInvalidInput,
	"INVALID_EXPIRY":        ErrCodeInvalidInput,
	"INVALID_IMAGE_KEY":     ErrCodeInvalidInput,
	"INVALID_NAME":          ErrCodeInvalidInput,
	"INVALID_NOTES":         ErrCodeInvalidInput,
	"INVALID_ORGANIZATION":  ErrCodeInvalidInput,
	"INVALID_PASSWORD":      ErrCodeInvalidInput,
	"INVALID_PHONE":         ErrCodeInvalidInput,
	"INVALID_QUANTITY":      ErrCodeInvalidInput,
	"INVALID_RATING":        ErrCodeInvalidInput,
	"INVALID_REGISTRATION":  ErrCodeInvalidInput,
	"INVALID_STATUS":        ErrCodeInvalidInput,
	"INVALID_STORAGE":       ErrCodeInvalidInput,
	"INVALID_TITLE":         ErrCodeInvalidInput,
	"INVALID_TYPE":          ErrCodeInvalidInput,
	"INVALID_UNIT":          ErrCodeInvalidInput,
	"INVALID_USER":          ErrCodeInvalidInput,
	"INVALID_VEHICLE":       ErrCodeInvalidInput,

	// Auth flow codes
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"ACCOUNT_DISABLED":    ErrCodeForbidden,
	"ACCOUNT_LOCKED":      ErrCodeForbidden,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,

	// Upload flow codes
	"INVALID_CATEGORY":     ErrCodeInvalidInput,
	"INVALID_OWNER":        ErrCodeInvalidInput,
	"INVALID_CONTENT_TYPE": ErrCodeInvalidInput,
	"INVALID_DOCUMENT_KEY": ErrCodeInvalidInput,
	"UPLOAD_NOT_FOUND":     ErrCodeNotFound,
}

// NormalizeErrorCode converts a domain error code to the wire format
// If the code is already in the wire format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
