package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-directory-service/internal/usecase/user"
	apperrors "user-directory-service/pkg/errors"
)

// UserHandler handles HTTP requests for user directory operations
type UserHandler struct {
	uc  user.Directory
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Directory, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for registering a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	UserType string `json:"user_type" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest represents the HTTP request body for updating a user.
// Password is optional; when omitted the stored credential is kept.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	UserType string `json:"user_type" binding:"required"`
	Password string `json:"password"`
}

// UserResponse represents the HTTP response for user data. The password hash
// is never serialized.
type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
}

// ListUsersResponse represents the HTTP response for listing users
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		UserType: u.UserType,
	}
}

// CreateUser handles POST /v1/users (signup, unauthenticated)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_argument",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:     req.Name,
		UserType: req.UserType,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(resp))
}

// GetUser handles GET /v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// UpdateUser handles PUT /v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_argument",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:       id,
		Name:     req.Name,
		UserType: req.UserType,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// DeleteUser handles DELETE /v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// ListUsers handles GET /v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	skip, ok := h.parseQueryInt(c, "skip", 0)
	if !ok {
		return
	}
	take, ok := h.parseQueryInt(c, "take", 0)
	if !ok {
		return
	}

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{
		Skip:     skip,
		Take:     take,
		UserType: c.Query("user_type"),
		OrderBy:  c.Query("order_by"),
		Order:    c.Query("order"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i := range resp.Users {
		users[i] = toResponse(&resp.Users[i])
	}

	c.JSON(http.StatusOK, ListUsersResponse{Users: users})
}

// parseID parses the :id path parameter, responding with 400 on failure.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user id", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_argument",
			Message: "user id must be a valid number",
		})
		return 0, false
	}
	return id, true
}

// parseQueryInt parses an optional integer query parameter.
func (h *UserHandler) parseQueryInt(c *gin.Context, name string, def int64) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.log.Warn("invalid query parameter", zap.String("param", name), zap.String("value", raw))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_argument",
			Message: name + " must be a valid number",
		})
		return 0, false
	}
	return v, true
}

// handleError converts usecase errors to HTTP responses by error kind.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	kind := errorKind(err)

	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("kind", kind), zap.Error(err))
		// Internal detail stays in the logs
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

// errorKind maps a typed error to its wire-level kind string.
func errorKind(err error) string {
	switch {
	case apperrors.IsInvalidArgument(err):
		return "invalid_argument"
	case apperrors.IsNotFound(err):
		return "not_found"
	case apperrors.IsConflict(err):
		return "conflict"
	case apperrors.IsUnauthenticated(err):
		return "unauthenticated"
	case apperrors.IsStoreUnavailable(err):
		return "store_unavailable"
	default:
		return "internal_error"
	}
}
