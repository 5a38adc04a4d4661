// Package rest exposes the blog API over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Services groups the business services the HTTP layer dispatches to.
type Services struct {
	Tokens   *auth.TokenService
	Auth     *services.AuthService
	Users    *services.UserService
	Posts    *services.PostService
	Comments *services.CommentService
}

type HTTPServer struct {
	address        string
	allowedOrigins []string
	logger         logging.Logger
	tokens         *auth.TokenService
	auth           *services.AuthService
	users          *services.UserService
	posts          *services.PostService
	comments       *services.CommentService
	engine         *gin.Engine
}

func NewHTTPServer(address string, allowedOrigins []string, l logging.Logger, svc Services) *HTTPServer {
	s := &HTTPServer{
		address:        address,
		allowedOrigins: allowedOrigins,
		logger:         l.With("module", "http_server"),
		tokens:         svc.Tokens,
		auth:           svc.Auth,
		users:          svc.Users,
		posts:          svc.Posts,
		comments:       svc.Comments,
	}
	registerValidatorTagNames()
	s.engine = s.routes()
	return s
}

// Handler returns the fully wired gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
