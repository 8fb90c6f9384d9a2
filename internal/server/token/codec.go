// Package token issues and verifies the compact signed tokens used for
// access and refresh credentials. It is the single source of truth for the
// signature algorithm, secret material, issuer/audience and clock.
package token

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ViniciusHP/autenticacao-api/internal/common"
	"github.com/ViniciusHP/autenticacao-api/internal/server/config"
	"github.com/ViniciusHP/autenticacao-api/internal/server/domain"
	"github.com/ViniciusHP/autenticacao-api/internal/server/users"
	"github.com/ViniciusHP/autenticacao-api/internal/timex"
)

// Claims is the wire format of an issued token: registered claims plus the
// principal's display name.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and parses tokens. It holds no mutable state and is safe for
// concurrent use.
type Codec struct {
	issuer          string
	audience        string
	key             []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
	clock           timex.Clock
}

// NewCodec builds a Codec from the JWT configuration. The secret is
// base64-decoded into the HMAC-SHA256 signing key.
func NewCodec(cfg config.JWTConfig, clock timex.Clock) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(cfg.Secret)
	if err != nil {
		return nil, errors.New("jwt secret is not valid base64")
	}
	if len(key) == 0 {
		return nil, errors.New("jwt secret is empty")
	}

	return &Codec{
		issuer:          cfg.Issuer,
		audience:        cfg.Audience,
		key:             key,
		accessValidity:  time.Duration(cfg.AccessTokenValiditySeconds) * time.Second,
		refreshValidity: time.Duration(cfg.RefreshTokenValiditySeconds) * time.Second,
		clock:           clock,
	}, nil
}

// IssueAccessToken generates a short-lived access token for the given user.
func (c *Codec) IssueAccessToken(user *users.User) (string, error) {
	return c.issue(user, c.accessValidity)
}

// IssueRefreshToken generates a long-lived refresh token for the given user.
func (c *Codec) IssueRefreshToken(user *users.User) (string, error) {
	return c.issue(user, c.refreshValidity)
}

func (c *Codec) issue(user *users.User, validity time.Duration) (string, error) {
	if user == nil || user.ID == uuid.Nil {
		return "", domain.ErrInvalidArgument("user must be informed")
	}

	now := c.clock.Now()
	claims := Claims{
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Valid reports whether the token parses, carries a matching signature,
// issuer and audience, and has not expired. It never returns an error:
// any parse or signature failure is reported as false.
func (c *Codec) Valid(tokenString string) bool {
	_, err := c.parse(tokenString)
	return err == nil
}

// UserID returns the subject claim of a valid token as a principal id.
// It fails with common.ErrInvalidToken when Valid would report false.
func (c *Codec) UserID(tokenString string) (uuid.UUID, error) {
	claims, err := c.parse(tokenString)
	if err != nil {
		return uuid.Nil, common.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, common.ErrInvalidToken
	}

	return id, nil
}

// RefreshValidity exposes the configured refresh-token lifetime, which also
// bounds the refresh cookie's Max-Age.
func (c *Codec) RefreshValidity() time.Duration {
	return c.refreshValidity
}

func (c *Codec) parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
