package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ViniciusHP/autenticacao-api/internal/server/oauth"
	"github.com/ViniciusHP/autenticacao-api/internal/server/token"
	"github.com/ViniciusHP/autenticacao-api/internal/server/users"
)

const (
	principalKey    = "principal"
	refreshTokenKey = "refreshToken"

	bearerPrefix = "Bearer "
)

// bearerAuth validates the Authorization header and attaches the resolved
// principal to the request context. It never aborts: requests without a
// usable token simply proceed unauthenticated and authorization is decided
// downstream.
func bearerAuth(codec *token.Codec, finder oauth.UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}

		id, err := codec.UserID(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.Next()
			return
		}

		user, err := finder.FindByID(c.Request.Context(), id)
		if err != nil {
			c.Next()
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// principal returns the authenticated account attached by bearerAuth.
func principal(c *gin.Context) (*users.User, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*users.User)
	return user, ok
}

// refreshCookieExtractor copies the refresh-token cookie into a
// request-scoped attribute. It runs only on the refresh route; the first
// matching cookie wins when duplicates exist.
func refreshCookieExtractor() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, cookie := range c.Request.Cookies() {
			if cookie.Name == oauth.RefreshCookieName {
				c.Set(refreshTokenKey, cookie.Value)
				break
			}
		}
		c.Next()
	}
}

// refreshToken returns the cookie value stashed by refreshCookieExtractor.
func refreshToken(c *gin.Context) string {
	return c.GetString(refreshTokenKey)
}
