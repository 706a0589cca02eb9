package middleware

import (
	"net/http"
	"strings"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/service"
	"github.com/Misscott/LocationAPI/internal/token"

	"github.com/gin-gonic/gin"
)

const (
	ClaimsKey   = "claims"
	IdentityKey = "identity"
)

// Authenticate validates the Bearer access token on every protected route.
func Authenticate(perms service.PermissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required", http.StatusUnauthorized))
			return
		}

		claims, err := perms.Authenticate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("invalid or expired token", http.StatusUnauthorized))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// Authorize checks the caller's role against the stored grants for this
// route template and verb. It runs after Authenticate and Snapshot; the
// permission join is evaluated at the request's pinned timestamp.
func Authorize(perms service.PermissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required", http.StatusUnauthorized))
			return
		}

		identity, err := perms.Authorize(c.Request.Context(), claims, c.Request.Method, c.FullPath(), Now(c))
		if err != nil {
			// Denials get a uniform message; anything else (a failed grant
			// lookup, for one) keeps its own kind and flows through the
			// error handler like every other failure.
			if apierror.Is(err, apierror.Forbidden) {
				err = apierror.E(apierror.Forbidden, "insufficient permissions", err)
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// GetClaims retrieves the typed claims from the Gin context.
func GetClaims(c *gin.Context) *token.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}

// GetIdentity retrieves the authorized caller from the Gin context. Nil on
// unauthenticated routes.
func GetIdentity(c *gin.Context) *service.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*service.Identity)
	return identity
}
