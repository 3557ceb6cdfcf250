package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
)

const MsgBodyTooLarge = "Corpo da requisição excede o limite permitido"

// BodyLimit rejects bodies larger than limit bytes. Declared lengths are
// refused up front; chunked bodies fail when the handler reads past limit.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			abortWith(c, appErr.New(appErr.ErrTooLarge, MsgBodyTooLarge))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
