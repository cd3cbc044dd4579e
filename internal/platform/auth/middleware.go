package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"equipment-backend/internal/platform/apierr"
)

const (
	TokenHeader    = "x-auth-token"
	ctxIdentityKey = "auth.identity"
)

// Rule is an authorization predicate evaluated after the token is verified.
type Rule func(Identity) bool

func IsAdmin(id Identity) bool { return id.IsAdmin }

// RequireAuth verifies the token from x-auth-token (or Authorization: Bearer)
// and stores the identity on the context.
func RequireAuth(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			apierr.Abort(c, apierr.ErrUnauthenticated("access denied. no token provided"))
			return
		}
		id, err := tm.Verify(tokenStr)
		if err != nil {
			apierr.Abort(c, apierr.ErrInvalid("invalid token"))
			return
		}
		c.Set(ctxIdentityKey, id)
		c.Next()
	}
}

// Require lets the request through only when every rule holds for the
// identity attached by RequireAuth.
func Require(rules ...Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			apierr.Abort(c, apierr.ErrUnauthenticated("access denied. no token provided"))
			return
		}
		for _, rule := range rules {
			if !rule(id) {
				apierr.Abort(c, apierr.ErrForbidden("access denied"))
				return
			}
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func tokenFromRequest(c *gin.Context) string {
	if t := strings.TrimSpace(c.GetHeader(TokenHeader)); t != "" {
		return t
	}
	h := c.GetHeader("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Guards are the two middleware stages route groups are built from.
// Admin assumes Auth ran first.
type Guards struct {
	Auth  gin.HandlerFunc
	Admin gin.HandlerFunc
}

func NewGuards(tm *TokenManager) Guards {
	return Guards{
		Auth:  RequireAuth(tm),
		Admin: Require(IsAdmin),
	}
}

// Groups splits r into open, authenticated and admin-only route groups
// sharing the same base path.
func (g Guards) Groups(r *gin.RouterGroup) (open, authed, admin *gin.RouterGroup) {
	return r, r.Group("", g.Auth), r.Group("", g.Auth, g.Admin)
}
