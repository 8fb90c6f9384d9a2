package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ViniciusHP/autenticacao-api/internal/server/domain"
	"github.com/ViniciusHP/autenticacao-api/internal/server/oauth"
	"github.com/ViniciusHP/autenticacao-api/internal/server/users"
)

// SessionService is the slice of the session manager the handlers need.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*oauth.Token, *http.Cookie, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth.Token, *http.Cookie, error)
	Revoke() *http.Cookie
}

// AccountService is the slice of the user service the handlers need.
type AccountService interface {
	EmailAvailable(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, name, email, password string) (*users.User, error)
	RecoverPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type recoverRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ErrInvalidArgument("invalid request body"))
		return
	}

	grant, cookie, err := s.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	http.SetCookie(c.Writer, cookie)
	c.JSON(http.StatusOK, grant)
}

func (s *HTTPServer) refresh(c *gin.Context) {
	grant, cookie, err := s.sessions.Refresh(c.Request.Context(), refreshToken(c))
	if err != nil {
		writeError(c, err)
		return
	}

	http.SetCookie(c.Writer, cookie)
	c.JSON(http.StatusOK, grant)
}

func (s *HTTPServer) revoke(c *gin.Context) {
	http.SetCookie(c.Writer, s.sessions.Revoke())
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) emailAvailable(c *gin.Context) {
	available, err := s.accounts.EmailAvailable(c.Request.Context(), c.Query("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !available {
		writeError(c, domain.ErrEmailAlreadyRegistered(c.Query("email")))
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ErrInvalidArgument("invalid request body"))
		return
	}

	user, err := s.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	})
}

func (s *HTTPServer) recoverPassword(c *gin.Context) {
	var req recoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ErrInvalidArgument("invalid request body"))
		return
	}

	if err := s.accounts.RecoverPassword(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) resetPassword(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ErrInvalidArgument("invalid request body"))
		return
	}

	if err := s.accounts.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
