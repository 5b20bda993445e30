package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"PalmCare/middlewares"
	"PalmCare/utils"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// maxDurationMillis bounds simulated action delays to one minute.
const maxDurationMillis = 60000

// bindJSON decodes the request body into dst and answers 400 when it cannot.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middlewares.RespondError(c, utils.FieldError("body", "malformed JSON: "+err.Error()))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, dst)
}

// queryDuration reads a millisecond count such as ?duration_ms=500. A missing
// value yields zero and values above one minute are rejected.
func queryDuration(c *gin.Context, key string) (time.Duration, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		middlewares.RespondError(c, utils.FieldError(key, "must be a number of milliseconds"))
		return 0, false
	}
	if err := validation.Validate(ms, validation.Min(0), validation.Max(maxDurationMillis)); err != nil {
		middlewares.RespondError(c, validation.Errors{key: err})
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

func created(c *gin.Context, data interface{}) {
	middlewares.RespondJSON(c, data, http.StatusCreated)
}

func ok(c *gin.Context, data interface{}) {
	middlewares.RespondJSON(c, data, http.StatusOK)
}
