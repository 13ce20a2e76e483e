package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"burger-shop/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", models.NewValidationError("quantity", "must be positive"), http.StatusBadRequest},
		{"not found", fmt.Errorf("get order: %w", models.ErrNotFound), http.StatusNotFound},
		{"forbidden", models.ErrForbidden, http.StatusForbidden},
		{"empty cart", models.ErrEmptyCart, http.StatusConflict},
		{"bad credentials", models.ErrInvalidCredentials, http.StatusUnauthorized},
		{"email taken", models.ErrEmailTaken, http.StatusConflict},
		{"transaction", &models.TransactionError{Op: "checkout", Err: errors.New("reset")}, http.StatusInternalServerError},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotContains(t, w.Body.String(), "disk on fire")
			assert.NotContains(t, w.Body.String(), "reset")
			assert.Equal(t, tt.status == http.StatusInternalServerError, len(c.Errors) == 1)
		})
	}
}

func TestRespondError_ValidationDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, models.NewValidationError("productId", "product is not available"))

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "productId: product is not available", body.Error)
}

func TestParamInt(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := ParamInt(c, "id")
		assert.ErrorIs(t, err, models.ErrValidation, raw)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	v, err := ParamInt(c, "id")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
