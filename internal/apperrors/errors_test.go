package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("view: %w", Clone(ErrTeacherNotFound, ""))
	got := FromError(wrapped)
	assert.Equal(t, ErrTeacherNotFound.Code, got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	got := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Nil(t, FromError(nil))
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(errors.New("eof"), ErrInvalidPayload.Code, ErrInvalidPayload.Status, "bad friends payload")
	assert.True(t, errors.Is(err, ErrInvalidPayload))
	assert.False(t, errors.Is(err, ErrRequestFailed))
}

func TestRequestFailedStatusMapping(t *testing.T) {
	unauth := RequestFailed(http.StatusUnauthorized, "not signed in")
	assert.True(t, errors.Is(unauth, ErrUnauthorized))
	assert.Equal(t, "not signed in", unauth.Message)

	notFound := RequestFailed(http.StatusNotFound, "")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, "Not Found", notFound.Message)
	assert.True(t, errors.Is(notFound, ErrRequestFailed))

	upstream := RequestFailed(http.StatusInternalServerError, "db down")
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
}
