package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"PalmCare/models"
	"PalmCare/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", utils.FieldError("diagnosis", "cannot be blank"), http.StatusBadRequest, CodeValidation},
		{"not found", errors.Wrap(models.ErrRecordNotFound, "case C-0009"), http.StatusNotFound, CodeNotFound},
		{"transition", errors.Wrap(models.ErrInvalidTransition, "case is discharged"), http.StatusConflict, CodeInvalidTransition},
		{"stock", errors.Wrap(models.ErrInsufficientStock, "MED-001"), http.StatusConflict, CodeInsufficientStock},
		{"nothing queued", models.ErrNothingQueued, http.StatusNotFound, CodeNothingQueued},
		{"no session", errors.Wrap(models.ErrNoSession, "token expired"), http.StatusUnauthorized, CodeNoSession},
		{"cancelled", context.Canceled, StatusClientClosedRequest, CodeCancelled},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)

			RespondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestRespondError_HidesInternalMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, errors.New("secret detail"))

	assert.NotContains(t, w.Body.String(), "secret detail")
}

func TestRespondError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	RespondError(c, utils.FieldError("amount", "must be greater than zero"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "must be greater than zero", details["amount"])
}
