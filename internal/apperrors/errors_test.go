package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		appErr, ok := FromError(ErrTweetNotFound)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
		assert.Equal(t, "Tweet was not found.", appErr.Detail)
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("handling request: %w", ErrSelfFollow)
		appErr, ok := FromError(wrapped)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
	})

	t.Run("plain error", func(t *testing.T) {
		_, ok := FromError(errors.New("database on fire"))
		assert.False(t, ok)
	})
}

func TestErrorMessage(t *testing.T) {
	err := BadRequest("nope")
	assert.Equal(t, "nope", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.Status)
}
