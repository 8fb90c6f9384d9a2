package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViniciusHP/autenticacao-api/internal/server/config"
	"github.com/ViniciusHP/autenticacao-api/internal/server/oauth"
	"github.com/ViniciusHP/autenticacao-api/internal/server/token"
	"github.com/ViniciusHP/autenticacao-api/internal/server/users"
	"github.com/ViniciusHP/autenticacao-api/internal/timex"
)

func newAuthRouter(t *testing.T, clock timex.Clock, finder oauth.UserFinder) (*gin.Engine, *token.Codec) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	codec, err := token.NewCodec(cfg.JWT, clock)
	require.NoError(t, err)

	router := gin.New()
	router.Use(bearerAuth(codec, finder))
	router.GET("/whoami", func(c *gin.Context) {
		user, ok := principal(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.String(http.StatusOK, user.Email)
	})
	return router, codec
}

func TestBearerAuthAttachesPrincipal(t *testing.T) {
	user := &users.User{ID: uuid.New(), Name: "Maria", Email: "maria@example.com", Active: true}
	router, codec := newAuthRouter(t, timex.SystemClock{}, &fakeFinder{user: user})

	access, err := codec.IssueAccessToken(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "maria@example.com", w.Body.String())
}

func TestBearerAuthNeverAborts(t *testing.T) {
	user := &users.User{ID: uuid.New(), Email: "maria@example.com", Active: true}
	clock := timex.NewFakeClock(time.Now())
	router, codec := newAuthRouter(t, clock, &fakeFinder{user: user})

	expired, err := codec.IssueAccessToken(user)
	require.NoError(t, err)
	clock.Advance(31 * time.Minute)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			// The middleware lets the request through; the handler decides.
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestBearerAuthUnknownPrincipal(t *testing.T) {
	user := &users.User{ID: uuid.New(), Email: "maria@example.com", Active: true}
	router, codec := newAuthRouter(t, timex.SystemClock{}, &fakeFinder{err: assert.AnError})

	access, err := codec.IssueAccessToken(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshCookieExtractorFirstMatchWins(t *testing.T) {
	router := gin.New()
	router.POST("/refresh", refreshCookieExtractor(), func(c *gin.Context) {
		c.String(http.StatusOK, refreshToken(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: oauth.RefreshCookieName, Value: "first"})
	req.AddCookie(&http.Cookie{Name: oauth.RefreshCookieName, Value: "second"})
	router.ServeHTTP(w, req)

	assert.Equal(t, "first", w.Body.String())
}
