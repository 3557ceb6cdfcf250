package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joaobosco/lembretes/internal/model"
	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
)

const (
	ContextUserIDKey   = "user_id"
	ContextIdentityKey = "identity"

	msgTokenMissing = "Token ausente"
	msgTokenInvalid = "Token inválido ou expirado"
)

type TokenVerifier interface {
	Verify(token string) (*model.Identity, error)
}

// JWTAuth requires "Authorization: Bearer <token>" and stores the decoded
// identity on the request context.
func JWTAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWith(c, appErr.Unauthorized(msgTokenMissing))
			return
		}
		identity, err := verifier.Verify(token)
		if err != nil {
			abortWith(c, appErr.Wrap(appErr.ErrForbidden, msgTokenInvalid, err))
			return
		}
		c.Set(ContextUserIDKey, identity.ID)
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity set by JWTAuth, or nil.
func IdentityFrom(c *gin.Context) *model.Identity {
	value, ok := c.Get(ContextIdentityKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*model.Identity)
	return identity
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// abortWith hands err to ErrorHandler and stops the chain.
func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
