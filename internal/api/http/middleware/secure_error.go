package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cinecanvas/internal/cinecanvas"
	"cinecanvas/pkg/logger"
)

// SecureErrorHandler recovers from panics and converts both panics and
// handler-recorded gin.Errors into a sanitized JSON response. Full details
// (stack trace, underlying cause) are logged server-side only.
func SecureErrorHandler(log logger.Logger) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				handlePanicRecovery(c, recovered, log)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			handleRequestErrors(c, c.Errors, log)
		}
	})
}

func handlePanicRecovery(c *gin.Context, recovered interface{}, log logger.Logger) {
	var err error
	switch x := recovered.(type) {
	case string:
		err = errors.New(x)
	case error:
		err = x
	default:
		err = errors.New("unknown panic occurred")
	}

	logServerSide(err, c, log, debug.Stack())

	response := secureResponse(err, c)
	c.JSON(http.StatusInternalServerError, response)
	c.Abort()
}

func handleRequestErrors(c *gin.Context, ginErrors []*gin.Error, log logger.Logger) {
	if c.Writer.Written() {
		return
	}

	err := ginErrors[len(ginErrors)-1].Err
	if isJSONError(err) {
		err = fmt.Errorf("invalid request format: %w", err)
	}

	logServerSide(err, c, log, nil)

	status := statusCodeFromError(err)
	response := secureResponse(err, c)
	c.JSON(status, response)
	c.Abort()
}

func logServerSide(err error, c *gin.Context, log logger.Logger, stack []byte) {
	fields := map[string]interface{}{
		"client_ip":  c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": c.GetHeader("X-Request-ID"),
		"error":      err.Error(),
	}
	if len(stack) > 0 {
		s := string(stack)
		if len(s) > 2048 {
			s = s[:2048] + "...[truncated]"
		}
		fields["stack_trace"] = s
	}
	log.WithFields(fields).Error("request error")
}

// secureResponse builds a client-safe JSON body. Clients never see the
// underlying error message, only a code and a generic description.
func secureResponse(err error, c *gin.Context) map[string]interface{} {
	code, message := clientFacing(err)

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = fmt.Sprintf("req_%d", time.Now().UnixNano())
	}

	return map[string]interface{}{
		"success":    false,
		"error":      message,
		"code":       code,
		"request_id": requestID,
		"timestamp":  time.Now().Format(time.RFC3339),
	}
}

func clientFacing(err error) (code, message string) {
	var rejected *cinecanvas.CanReadRejectedError
	var parseErr *cinecanvas.ParseError
	var writeErr *cinecanvas.WriteError

	switch {
	case isJSONError(err):
		return "INVALID_INPUT", "Invalid request format"
	case errors.As(err, &rejected):
		return "UNSUPPORTED_FORMAT", "The supplied file is not a format this codec can read"
	case errors.As(err, &parseErr):
		return "PARSE_FAILED", "The subtitle file could not be parsed"
	case errors.As(err, &writeErr):
		return "WRITE_FAILED", "The subtitle file could not be written"
	default:
		return "INTERNAL_ERROR", "An internal error occurred. Please try again later."
	}
}

func statusCodeFromError(err error) int {
	if isJSONError(err) {
		return http.StatusBadRequest
	}

	var rejected *cinecanvas.CanReadRejectedError
	var parseErr *cinecanvas.ParseError
	var writeErr *cinecanvas.WriteError

	switch {
	case errors.As(err, &rejected):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &writeErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func isJSONError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "json:") ||
		strings.Contains(errStr, "cannot unmarshal") ||
		strings.Contains(errStr, "invalid character") ||
		strings.Contains(errStr, "unexpected end of JSON input")
}
