package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiErrUnwrapsSentinels(t *testing.T) {
	err := NewNotFound("blog post")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "blog post not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode)

	liked := NewAlreadyLikedError()
	assert.ErrorIs(t, liked, ErrAlreadyLiked)
	assert.Equal(t, http.StatusConflict, liked.StatusCode)
	assert.Equal(t, "Already liked", liked.Error())

	assert.True(t, errors.Is(NewSelfFollowError(), ErrSelfFollow))
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
	}{
		{"sentinel conflict", fmt.Errorf("tag name taken: %w", ErrAlreadyExists), http.StatusConflict},
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_tags_name"`), http.StatusConflict},
		{"sqlite unique", errors.New("UNIQUE constraint failed: tags.name"), http.StatusConflict},
		{"connection", errors.New("failed to connect: connection refused"), http.StatusServiceUnavailable},
		{"other", errors.New("syntax error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "tag", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err.Cause, tt.cause)
		})
	}
}

func TestFromValidation(t *testing.T) {
	assert.NoError(t, FromValidation(nil))

	err := FromValidation(validation.Errors{
		"title":   errors.New("title is required"),
		"chainId": errors.New("must contain digits only"),
	})
	var apiErr *ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "chainId", apiErr.Field)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestGetFullError(t *testing.T) {
	inner := NewNotFound("user")
	outer := NewInternalErrorWithCause("lookup failed", inner)
	assert.Equal(t, "lookup failed: user not found -> user not found", outer.GetFullError())
}
