package webmaster

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is the machine-readable error_code field returned by the Webmaster API.
// Codes the API adds later are kept verbatim.
type ErrorCode string

// 400 Bad Request.
const (
	ErrorCodeEmptyDates              ErrorCode = "EMPTY_DATES"
	ErrorCodeEmptyPaths              ErrorCode = "EMPTY_PATHS"
	ErrorCodeEntityValidationError   ErrorCode = "ENTITY_VALIDATION_ERROR"
	ErrorCodeFieldValidationError    ErrorCode = "FIELD_VALIDATION_ERROR"
	ErrorCodeInvalidURL              ErrorCode = "INVALID_URL"
	ErrorCodeNoChanges               ErrorCode = "NO_CHANGES"
	ErrorCodeSomeDatesAreUnavailable ErrorCode = "SOME_DATES_ARE_UNAVAILABLE"
	ErrorCodeURLsAreCorrupted        ErrorCode = "URLS_ARE_CORRUPTED"
	ErrorCodeWrongRegion             ErrorCode = "WRONG_REGION"
)

// 403 Forbidden.
const (
	ErrorCodeAccessForbidden    ErrorCode = "ACCESS_FORBIDDEN"
	ErrorCodeInvalidOAuthToken  ErrorCode = "INVALID_OAUTH_TOKEN"
	ErrorCodeInvalidUserID      ErrorCode = "INVALID_USER_ID"
	ErrorCodeHostsLimitExceeded ErrorCode = "HOSTS_LIMIT_EXCEEDED"
	ErrorCodeFeedsLimitExceeded ErrorCode = "FEEDS_LIMIT_EXCEEDED"
	ErrorCodeBatchLimitExceeded ErrorCode = "BATCH_LIMIT_EXCEEDED"
	ErrorCodeFeedsCategoryBan   ErrorCode = "FEEDS_CATEGORY_BAN"
	ErrorCodeLimitsExceeded     ErrorCode = "LIMITS_EXCEEDED"
)

// 404 Not Found.
const (
	ErrorCodeResourceNotFound  ErrorCode = "RESOURCE_NOT_FOUND"
	ErrorCodeHostNotIndexed    ErrorCode = "HOST_NOT_INDEXED"
	ErrorCodeHostNotLoaded     ErrorCode = "HOST_NOT_LOADED"
	ErrorCodeHostNotVerified   ErrorCode = "HOST_NOT_VERIFIED"
	ErrorCodeHostNotFound      ErrorCode = "HOST_NOT_FOUND"
	ErrorCodeSitemapNotFound   ErrorCode = "SITEMAP_NOT_FOUND"
	ErrorCodeSitemapNotAdded   ErrorCode = "SITEMAP_NOT_ADDED"
	ErrorCodeTaskNotFound      ErrorCode = "TASK_NOT_FOUND"
	ErrorCodeQueryIDNotFound   ErrorCode = "QUERY_ID_NOT_FOUND"
	ErrorCodeBadHTTPCode       ErrorCode = "BAD_HTTP_CODE"
	ErrorCodeBadMimeType       ErrorCode = "BAD_MIME_TYPE"
	ErrorCodeRequestNotFound   ErrorCode = "REQUEST_NOT_FOUND"
	ErrorCodeTimedOut          ErrorCode = "TIMED_OUT"
	ErrorCodeFeedAlreadyAdded  ErrorCode = "FEED_ALREADY_ADDED"
	ErrorCodeOnlyHTTPS         ErrorCode = "ONLY_HTTPS"
	ErrorCodeManyURLsForRemove ErrorCode = "MANY_URLS_FOR_REMOVE"
	ErrorCodeIncorrectURL      ErrorCode = "INCORRECT_URL"
	ErrorCodeNotExist          ErrorCode = "NOT_EXIST"
)

// 405, 406, 409, 410, 413, 415, 422 and 429.
const (
	ErrorCodeMethodNotAllowed               ErrorCode = "METHOD_NOT_ALLOWED"
	ErrorCodeContentTypeUnsupported         ErrorCode = "CONTENT_TYPE_UNSUPPORTED"
	ErrorCodeURLAlreadyAdded                ErrorCode = "URL_ALREADY_ADDED"
	ErrorCodeHostAlreadyAdded               ErrorCode = "HOST_ALREADY_ADDED"
	ErrorCodeVerificationAlreadyInProgress  ErrorCode = "VERIFICATION_ALREADY_IN_PROGRESS"
	ErrorCodeTextAlreadyAdded               ErrorCode = "TEXT_ALREADY_ADDED"
	ErrorCodeSitemapAlreadyAdded            ErrorCode = "SITEMAP_ALREADY_ADDED"
	ErrorCodeUploadAddressExpired           ErrorCode = "UPLOAD_ADDRESS_EXPIRED"
	ErrorCodeRequestEntityTooLarge          ErrorCode = "REQUEST_ENTITY_TOO_LARGE"
	ErrorCodePayloadTooLarge                ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrorCodeContentEncodingUnsupported     ErrorCode = "CONTENT_ENCODING_UNSUPPORTED"
	ErrorCodeTextLengthConstraintsViolation ErrorCode = "TEXT_LENGTH_CONSTRAINTS_VIOLATION"
	ErrorCodeNoVerificationRecord           ErrorCode = "NO_VERIFICATION_RECORD"
	ErrorCodeQuotaExceeded                  ErrorCode = "QUOTA_EXCEEDED"
	ErrorCodeTooManyRequestsError           ErrorCode = "TOO_MANY_REQUESTS_ERROR"
)

// documentedStatus maps every documented code to the HTTP status the API pairs it with.
var documentedStatus = map[ErrorCode]int{
	ErrorCodeEmptyDates:              http.StatusBadRequest,
	ErrorCodeEmptyPaths:              http.StatusBadRequest,
	ErrorCodeEntityValidationError:   http.StatusBadRequest,
	ErrorCodeFieldValidationError:    http.StatusBadRequest,
	ErrorCodeInvalidURL:              http.StatusBadRequest,
	ErrorCodeNoChanges:               http.StatusBadRequest,
	ErrorCodeSomeDatesAreUnavailable: http.StatusBadRequest,
	ErrorCodeURLsAreCorrupted:        http.StatusBadRequest,
	ErrorCodeWrongRegion:             http.StatusBadRequest,

	ErrorCodeAccessForbidden:    http.StatusForbidden,
	ErrorCodeInvalidOAuthToken:  http.StatusForbidden,
	ErrorCodeInvalidUserID:      http.StatusForbidden,
	ErrorCodeHostsLimitExceeded: http.StatusForbidden,
	ErrorCodeFeedsLimitExceeded: http.StatusForbidden,
	ErrorCodeBatchLimitExceeded: http.StatusForbidden,
	ErrorCodeFeedsCategoryBan:   http.StatusForbidden,
	ErrorCodeLimitsExceeded:     http.StatusForbidden,

	ErrorCodeResourceNotFound:  http.StatusNotFound,
	ErrorCodeHostNotIndexed:    http.StatusNotFound,
	ErrorCodeHostNotLoaded:     http.StatusNotFound,
	ErrorCodeHostNotVerified:   http.StatusNotFound,
	ErrorCodeHostNotFound:      http.StatusNotFound,
	ErrorCodeSitemapNotFound:   http.StatusNotFound,
	ErrorCodeSitemapNotAdded:   http.StatusNotFound,
	ErrorCodeTaskNotFound:      http.StatusNotFound,
	ErrorCodeQueryIDNotFound:   http.StatusNotFound,
	ErrorCodeBadHTTPCode:       http.StatusNotFound,
	ErrorCodeBadMimeType:       http.StatusNotFound,
	ErrorCodeRequestNotFound:   http.StatusNotFound,
	ErrorCodeTimedOut:          http.StatusNotFound,
	ErrorCodeFeedAlreadyAdded:  http.StatusNotFound,
	ErrorCodeOnlyHTTPS:         http.StatusNotFound,
	ErrorCodeManyURLsForRemove: http.StatusNotFound,
	ErrorCodeIncorrectURL:      http.StatusNotFound,
	ErrorCodeNotExist:          http.StatusNotFound,

	ErrorCodeMethodNotAllowed:               http.StatusMethodNotAllowed,
	ErrorCodeContentTypeUnsupported:         http.StatusNotAcceptable,
	ErrorCodeURLAlreadyAdded:                http.StatusConflict,
	ErrorCodeHostAlreadyAdded:               http.StatusConflict,
	ErrorCodeVerificationAlreadyInProgress:  http.StatusConflict,
	ErrorCodeTextAlreadyAdded:               http.StatusConflict,
	ErrorCodeSitemapAlreadyAdded:            http.StatusConflict,
	ErrorCodeUploadAddressExpired:           http.StatusGone,
	ErrorCodeRequestEntityTooLarge:          http.StatusRequestEntityTooLarge,
	ErrorCodePayloadTooLarge:                http.StatusRequestEntityTooLarge,
	ErrorCodeContentEncodingUnsupported:     http.StatusUnsupportedMediaType,
	ErrorCodeTextLengthConstraintsViolation: http.StatusUnprocessableEntity,
	ErrorCodeNoVerificationRecord:           http.StatusUnprocessableEntity,
	ErrorCodeQuotaExceeded:                  http.StatusTooManyRequests,
	ErrorCodeTooManyRequestsError:           http.StatusTooManyRequests,
}

// IsKnown reports whether the code is one of the documented error codes.
func (c ErrorCode) IsKnown() bool {
	_, ok := documentedStatus[c]

	return ok
}

// DocumentedStatus returns the HTTP status the API documents for the code, or 0 for unknown codes.
func (c ErrorCode) DocumentedStatus() int {
	return documentedStatus[c]
}

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	return string(c)
}

// APIErrorResponse is the structured error body of the Webmaster API.
type APIErrorResponse struct {
	ErrorCode    ErrorCode `json:"error_code"                 yaml:"error_code"`
	ErrorMessage string    `json:"error_message"              yaml:"error_message"`
	// AcceptableTypes is set for CONTENT_TYPE_UNSUPPORTED.
	AcceptableTypes []string `json:"acceptable_types,omitempty" yaml:"acceptable_types,omitempty"`
	// ValidUntil is set for UPLOAD_ADDRESS_EXPIRED.
	ValidUntil string `json:"valid_until,omitempty"      yaml:"valid_until,omitempty"`
}

// APIError is returned for every non-2xx response.
// Response is nil when the body was not a structured error, Body then holds the raw text.
type APIError struct {
	StatusCode int
	Response   *APIErrorResponse
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("API error (%s): %s (status: %d)", e.Response.ErrorCode, e.Response.ErrorMessage, e.StatusCode)
	}

	return fmt.Sprintf("API error: status: %d %s, error: %s",
		e.StatusCode, http.StatusText(e.StatusCode), strings.TrimSpace(e.Body))
}

// Code returns the error code of a structured error or an empty code.
func (e *APIError) Code() ErrorCode {
	if e.Response == nil {
		return ""
	}

	return e.Response.ErrorCode
}

// ParseAPIError builds an APIError from a response status and body.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}

	var errResp APIErrorResponse

	err := json.Unmarshal(body, &errResp)
	if err == nil && errResp.ErrorCode != "" {
		apiErr.Response = &errResp
	}

	return apiErr
}

// TransportError wraps failures that happened before a response status was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP request failed: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a successful response body does not match the expected type.
type DecodeError struct {
	Target string
	Body   []byte
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError is returned when request parameters cannot be serialized.
type EncodeError struct {
	Err error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode request: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Common static errors that can be wrapped with context.
var (
	ErrAuthentication   = errors.New("authentication failed: missing or invalid OAuth token")
	ErrConfigRequired   = errors.New("config is required")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUserIDRequired   = errors.New("user ID is required")
	ErrHostIDRequired   = errors.New("host ID is required")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// ErrorKind classifies an error returned by the client.
type ErrorKind int

// Error kinds.
const (
	KindNone ErrorKind = iota
	KindTransport
	KindStatus
	KindDecode
	KindEncode
	KindAuthentication
	KindUnknown
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	case KindAuthentication:
		return "authentication"
	default:
		return "unknown"
	}
}

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		apiErr       *APIError
		decodeErr    *DecodeError
		encodeErr    *EncodeError
		transportErr *TransportError
	)

	switch {
	case errors.As(err, &apiErr):
		return KindStatus
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &encodeErr):
		return KindEncode
	case errors.Is(err, ErrAuthentication):
		return KindAuthentication
	case errors.As(err, &transportErr):
		return KindTransport
	default:
		return KindUnknown
	}
}

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// HasErrorCode checks if err is an APIError carrying code.
func HasErrorCode(err error, code ErrorCode) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.Code() == code
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error was caused by a missing or rejected token.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrAuthentication) {
		return true
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}

	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.Code() == ErrorCodeInvalidOAuthToken
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.StatusCode == http.StatusForbidden
}

// IsConflict checks if the error reports an already existing entity.
func IsConflict(err error) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.StatusCode == http.StatusConflict
}

// IsQuotaExceeded checks if the error reports an exhausted quota or rate limit.
func IsQuotaExceeded(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}

	switch apiErr.Code() {
	case ErrorCodeQuotaExceeded, ErrorCodeTooManyRequestsError, ErrorCodeLimitsExceeded:
		return true
	}

	return apiErr.StatusCode == http.StatusTooManyRequests
}
