package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(secret string) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)

	var seenUserID uuid.UUID
	router := gin.New()
	router.GET("/protected", NewJWTAuth(&JWTConfig{Secret: secret}), func(c *gin.Context) {
		seenUserID = GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, &seenUserID
}

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"
	userID := uuid.New()

	token, err := auth.GenerateAccessToken(userID, "alice@example.com", secret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer scheme", "Basic " + token, http.StatusUnauthorized},
		{"malformed header", "Bearer", http.StatusUnauthorized},
		{"tampered token", "Bearer " + token + "x", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, seenUserID := newTestRouter(secret)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, *seenUserID)
			}
		})
	}
}

func TestGetUserIDWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uuid.Nil, GetUserID(c))
}
