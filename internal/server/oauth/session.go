// Package oauth implements the token-grant surface: credential login,
// refresh-token rotation and session revocation, including the refresh
// cookie contract shared with the browser.
package oauth

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ViniciusHP/autenticacao-api/internal/server/config"
	"github.com/ViniciusHP/autenticacao-api/internal/server/domain"
	"github.com/ViniciusHP/autenticacao-api/internal/server/token"
	"github.com/ViniciusHP/autenticacao-api/internal/server/users"
)

// RefreshCookieName is the cookie that transports the refresh token.
const RefreshCookieName = "refreshToken"

// Authenticator checks a credential pair and returns the matching user.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*users.User, error)
}

// UserFinder resolves a principal id to its user.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*users.User, error)
}

// Token is the grant payload returned on login and refresh.
type Token struct {
	Tipo  string `json:"tipo"`
	Token string `json:"token"`
}

// SessionManager issues access tokens against credentials or a refresh
// token, and builds the cookies that carry the refresh token between
// requests.
type SessionManager struct {
	auth   Authenticator
	finder UserFinder
	codec  *token.Codec

	cookiePath   string
	cookieSecure bool
}

func NewSessionManager(auth Authenticator, finder UserFinder, codec *token.Codec, cfg *config.Config) *SessionManager {
	return &SessionManager{
		auth:         auth,
		finder:       finder,
		codec:        codec,
		cookiePath:   cfg.ContextPath + "/oauth/refresh-token",
		cookieSecure: cfg.JWT.Secure,
	}
}

// Login validates the credential pair and, on success, returns a bearer
// grant plus the cookie that stores the refresh token. Any failure is
// reported as a generic authentication error so that callers cannot tell
// unknown emails from wrong passwords.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*Token, *http.Cookie, error) {
	user, err := m.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, domain.ErrAuthenticationFailed()
	}

	return m.grant(user)
}

// Refresh exchanges a refresh token for a fresh grant, rotating the refresh
// cookie. An absent, malformed or expired token fails with a
// not-authenticated error and leaves no cookie behind.
func (m *SessionManager) Refresh(ctx context.Context, refreshToken string) (*Token, *http.Cookie, error) {
	if !m.codec.Valid(refreshToken) {
		return nil, nil, domain.ErrNotAuthenticated()
	}

	id, err := m.codec.UserID(refreshToken)
	if err != nil {
		return nil, nil, domain.ErrNotAuthenticated()
	}

	user, err := m.finder.FindByID(ctx, id)
	if err != nil {
		return nil, nil, domain.ErrNotAuthenticated()
	}

	return m.grant(user)
}

// Revoke builds the cookie that erases the stored refresh token. It always
// succeeds, authenticated or not.
func (m *SessionManager) Revoke() *http.Cookie {
	return m.buildCookie("", -1)
}

func (m *SessionManager) grant(user *users.User) (*Token, *http.Cookie, error) {
	accessToken, err := m.codec.IssueAccessToken(user)
	if err != nil {
		return nil, nil, err
	}

	refreshToken, err := m.codec.IssueRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	cookie := m.buildCookie(refreshToken, int(m.codec.RefreshValidity().Seconds()))
	return &Token{Tipo: "Bearer", Token: accessToken}, cookie, nil
}

func (m *SessionManager) buildCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     m.cookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cookieSecure,
	}
}
