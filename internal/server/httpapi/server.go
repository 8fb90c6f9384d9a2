// Package httpapi exposes the authentication service over HTTP: the token
// grant endpoints, account management and the credential-recovery flow.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ViniciusHP/autenticacao-api/internal/logging"
	"github.com/ViniciusHP/autenticacao-api/internal/server/config"
	"github.com/ViniciusHP/autenticacao-api/internal/server/oauth"
	"github.com/ViniciusHP/autenticacao-api/internal/server/token"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address     string
	contextPath string
	sessions    SessionService
	accounts    AccountService
	codec       *token.Codec
	finder      oauth.UserFinder
	logger      logging.Logger
}

func NewHTTPServer(cfg *config.Config, sessions SessionService, accounts AccountService, codec *token.Codec, finder oauth.UserFinder, logger logging.Logger) *HTTPServer {
	return &HTTPServer{
		address:     cfg.EndpointAddr,
		contextPath: cfg.ContextPath,
		sessions:    sessions,
		accounts:    accounts,
		codec:       codec,
		finder:      finder,
		logger:      logger.With("module", "http_server"),
	}
}

// Router assembles the gin engine with all routes and middleware.
func (s *HTTPServer) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(bearerAuth(s.codec, s.finder))

	root := router.Group(s.contextPath)

	oauthGroup := root.Group("/oauth")
	oauthGroup.POST("/token", s.login)
	oauthGroup.POST("/refresh-token", refreshCookieExtractor(), s.refresh)
	oauthGroup.DELETE("/revoke", s.revoke)

	usersGroup := root.Group("/usuarios")
	usersGroup.GET("/email-disponivel", s.emailAvailable)
	usersGroup.POST("", s.register)
	usersGroup.POST("/recuperar-senha", s.recoverPassword)
	usersGroup.POST("/redefinir-senha", s.resetPassword)

	return router
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
