package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
	"github.com/joaobosco/lembretes/internal/pkg/response"
)

const msgNotFound = "Não encontrado"

// ErrorHandler renders the last error recorded with c.Error as
// {"error": message}. Handlers that already wrote a response are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := appErr.Status(err)
		logger := logutil.GetLogger(c.Request.Context()).With(
			zap.String("request_id", requestIDOf(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
		)
		if userID := c.GetString(ContextUserIDKey); userID != "" {
			logger = logger.With(zap.String("user_id", userID))
		}
		if ce := logger.Check(failureLevel(status), "request failed"); ce != nil {
			ce.Write(zap.Error(err))
		}
		if c.Writer.Written() {
			return
		}
		response.Error(c, status, appErr.Message(err))
	}
}

// failureLevel keeps client errors out of the error stream.
func failureLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Recovery turns a panic into a logged 500 without exposing the panic value.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logutil.GetLogger(c.Request.Context()).Error("panic recovered",
					zap.String("request_id", requestIDOf(c)),
					zap.String("path", c.Request.URL.Path),
					zap.String("panic", fmt.Sprint(rec)),
					zap.Stack("stack"),
				)
				if !c.Writer.Written() {
					response.Error(c, http.StatusInternalServerError, appErr.DefaultMessage)
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// NotFound answers unmatched routes.
func NotFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, msgNotFound)
}
