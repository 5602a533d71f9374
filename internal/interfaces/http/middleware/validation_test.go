package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodbridge/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,len=10,numeric"`
}

func TestHandleValidationError_FieldDetails(t *testing.T) {
	SetupValidator()

	r := gin.New()
	r.POST("/register", func(c *gin.Context) {
		var req registerPayload
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"email":"not-an-email","phone":"123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 2)

	// Field names come from json tags, not Go struct fields
	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "phone")
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Details)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
