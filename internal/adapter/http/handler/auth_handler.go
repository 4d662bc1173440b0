package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-directory-service/internal/usecase/auth"
	apperrors "user-directory-service/pkg/errors"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	uc  *auth.Usecase
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc *auth.Usecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:  uc,
		log: log,
	}
}

// LoginRequest represents the HTTP request body for login
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the HTTP response for a successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_argument",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: resp.AccessToken})
}

// handleError converts usecase errors to HTTP responses by error kind.
func (h *AuthHandler) handleError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	kind := errorKind(err)

	if status >= http.StatusInternalServerError {
		h.log.Error("login request failed", zap.String("kind", kind), zap.Error(err))
		c.JSON(status, ErrorResponse{
			Error:   kind,
			Message: "An internal error occurred",
		})
		return
	}

	c.JSON(status, ErrorResponse{
		Error:   kind,
		Message: err.Error(),
	})
}
