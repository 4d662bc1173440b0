package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	httphandler "user-directory-service/internal/adapter/http/handler"
	"user-directory-service/internal/adapter/http/middleware"
	httprouter "user-directory-service/internal/adapter/http/router"
	useruc "user-directory-service/internal/usecase/user"
	"user-directory-service/pkg/token"
)

// SetupHTTPServer creates and configures the REST API server
func SetupHTTPServer(
	userHandler *httphandler.UserHandler,
	authHandler *httphandler.AuthHandler,
	directory useruc.Directory,
	tokens *token.Issuer,
	rateLimiter *middleware.RateLimiter,
	addr string,
	l *zap.Logger,
) *http.Server {
	router := httprouter.SetupRouter(userHandler, authHandler, directory, tokens, rateLimiter, l)

	l.Info("REST API configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
