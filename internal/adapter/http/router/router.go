package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-directory-service/internal/adapter/http/handler"
	"user-directory-service/internal/adapter/http/middleware"
	useruc "user-directory-service/internal/usecase/user"
	"user-directory-service/pkg/token"
)

// SetupRouter configures and returns a Gin router with all routes and middleware.
// Signup and login are open; the rest of the user surface sits behind the
// bearer token gate.
func SetupRouter(
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	directory useruc.Directory,
	tokens *token.Issuer,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-directory-service",
		})
	})

	v1 := router.Group("/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/users", userHandler.CreateUser) // signup is always open

		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(tokens, directory, log))
		{
			authed.GET("/users", userHandler.ListUsers)
			authed.GET("/users/:id", userHandler.GetUser)
			authed.PUT("/users/:id", userHandler.UpdateUser)
			authed.DELETE("/users/:id", userHandler.DeleteUser)
		}
	}

	return router
}
