package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dangling hash h1")
	err := Wrap(cause, ErrAssetSectionMissing)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrAssetSectionMissing, ExtractCode(err))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Equal(t, "[6002] NO_SPECIFIED_SECTION: dangling hash h1", err.Error())
}

func TestWrapDoesNotExposeCause(t *testing.T) {
	err := Wrap(errors.New("pq: connection reset"), ErrAssetMergeAborted)
	assert.Empty(t, GetDetails(err))

	err = Wrap(errors.New("pq: connection reset"), ErrAssetFileNotFound, "file-1")
	assert.Equal(t, "file-1", GetDetails(err))
	assert.Contains(t, err.Error(), "pq: connection reset")
}

func TestWrapExistingAppError(t *testing.T) {
	inner := New(ErrAssetFileNotFound, "file-1")
	err := Wrap(fmt.Errorf("lookup: %w", inner), ErrInternalServer, "lookup by id")

	assert.Same(t, inner, err)
	assert.Equal(t, ErrAssetFileNotFound, err.Code)
	assert.Equal(t, "lookup by id", err.Details)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternalServer))
}

func TestExtractCodeDefaults(t *testing.T) {
	assert.Equal(t, ErrInternalServer, ExtractCode(errors.New("plain")))
	assert.Empty(t, GetDetails(errors.New("plain")))
	assert.Equal(t, ErrNotFound, ExtractCode(New(ErrNotFound)))
}

func TestCodeTable(t *testing.T) {
	tests := []struct {
		code   int
		status int
	}{
		{ErrAssetFileNotFound, http.StatusNotFound},
		{ErrAssetFileNotSaved, http.StatusConflict},
		{ErrAssetMergeAborted, http.StatusConflict},
		{ErrAssetInvalidRange, http.StatusBadRequest},
		{ErrAssetObjectMissing, http.StatusNotFound},
		{ErrTooManyRequests, http.StatusTooManyRequests},
		{99999, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, GetHTTPStatus(tt.code), "code %d", tt.code)
	}
	assert.Equal(t, "NO_SPECIFIED_SECTION", GetMessage(ErrAssetSectionMissing))
	assert.Equal(t, "File not found: f.txt", FormatError(ErrAssetFileNotFound, "f.txt"))
}
