package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrNotFound        = 1002
	ErrUnauthorized    = 1003
	ErrForbidden       = 1004
	ErrConflict        = 1005
	ErrTooManyRequests = 1006
	ErrBadRequest      = 1007
	ErrServiceUnavail  = 1008

	// Auth errors (2000-2999)
	ErrAuthInvalidToken = 2006
	ErrAuthTokenExpired = 2007

	// Asset errors (6000-6999)
	ErrAssetFileNotFound   = 6000
	ErrAssetFileNotSaved   = 6001
	ErrAssetSectionMissing = 6002
	ErrAssetSectionExists  = 6003
	ErrAssetCommitNotFound = 6004
	ErrAssetMergeAborted   = 6005
	ErrAssetInvalidRange   = 6006
	ErrAssetStorageFailed  = 6007
	ErrAssetInvalidSection = 6008
	ErrAssetObjectMissing  = 6009
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrUnauthorized:    {ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	ErrForbidden:       {ErrForbidden, http.StatusForbidden, "Forbidden"},
	ErrConflict:        {ErrConflict, http.StatusConflict, "Resource conflict"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},
	ErrServiceUnavail:  {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},

	// Auth errors
	ErrAuthInvalidToken: {ErrAuthInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	ErrAuthTokenExpired: {ErrAuthTokenExpired, http.StatusUnauthorized, "Token expired"},

	// Asset errors
	ErrAssetFileNotFound:   {ErrAssetFileNotFound, http.StatusNotFound, "File not found"},
	ErrAssetFileNotSaved:   {ErrAssetFileNotSaved, http.StatusConflict, "File could not be saved"},
	ErrAssetSectionMissing: {ErrAssetSectionMissing, http.StatusInternalServerError, "NO_SPECIFIED_SECTION"},
	ErrAssetSectionExists:  {ErrAssetSectionExists, http.StatusConflict, "Section already exists"},
	ErrAssetCommitNotFound: {ErrAssetCommitNotFound, http.StatusNotFound, "Commit not found"},
	ErrAssetMergeAborted:   {ErrAssetMergeAborted, http.StatusConflict, "Section merge aborted"},
	ErrAssetInvalidRange:   {ErrAssetInvalidRange, http.StatusBadRequest, "Invalid section range"},
	ErrAssetStorageFailed:  {ErrAssetStorageFailed, http.StatusInternalServerError, "Asset storage operation failed"},
	ErrAssetInvalidSection: {ErrAssetInvalidSection, http.StatusBadRequest, "Invalid section input"},
	ErrAssetObjectMissing:  {ErrAssetObjectMissing, http.StatusNotFound, "Asset object not found"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsServerError reports whether code maps to a 5xx status
func IsServerError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 500
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
