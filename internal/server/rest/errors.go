package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

type errorResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func statusOf(kind common.Kind) int {
	switch kind {
	case common.KindValidation, common.KindConflict:
		return http.StatusBadRequest
	case common.KindUnauthorized:
		return http.StatusUnauthorized
	case common.KindForbidden:
		return http.StatusForbidden
	case common.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError aborts the request with the status and body derived from err.
// Internal errors are logged with their cause; the client sees only the
// message.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	kind := common.KindOf(err)
	status := statusOf(kind)

	body := errorResponse{Message: common.MessageOf(err, "Server error")}
	var e *common.Error
	if errors.As(err, &e) {
		body.Details = e.Detail
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "Request failed", "path", c.Request.URL.Path, "error", err)
	}

	c.AbortWithStatusJSON(status, body)
}

var tagNamesOnce sync.Once

// registerValidatorTagNames makes validator report json field names.
func registerValidatorTagNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindJSON decodes the request body into obj and validates it. An empty body
// is validated as an empty object. Validation failures become a validation
// error carrying message and per-field details.
func bindJSON(c *gin.Context, obj any, message string) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make(map[string]string, len(ve))
		for _, fe := range ve {
			details[fe.Field()] = fmt.Sprintf("failed on '%s'", fe.Tag())
		}
		return common.NewError(common.KindValidation, message).WithDetail(details)
	}

	return common.WrapError(common.KindValidation, "Invalid request body", err)
}
