package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestQueryDuration(t *testing.T) {
	tests := []struct {
		query string
		want  time.Duration
		valid bool
	}{
		{"", 0, true},
		{"?duration_ms=500", 500 * time.Millisecond, true},
		{"?duration_ms=-1", 0, false},
		{"?duration_ms=soon", 0, false},
		{"?duration_ms=60000", time.Minute, true},
		{"?duration_ms=60001", 0, false},
		{"?duration_ms=9999999999999", 0, false},
		{"?duration_ms=99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/context/actions/x"+tt.query, nil)

			got, valid := queryDuration(c, "duration_ms")
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.want, got)
			if !valid {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestBindOptionalJSON(t *testing.T) {
	var req cancelRequest

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.True(t, bindOptionalJSON(c, &req))
	assert.Empty(t, req.Reason)

	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reason":"left"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	assert.True(t, bindOptionalJSON(c, &req))
	assert.Equal(t, "left", req.Reason)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reason":`))
	assert.False(t, bindOptionalJSON(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
