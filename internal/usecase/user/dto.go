package user

import domain "user-directory-service/internal/domain/user"

// CreateUserRequest represents the request payload for registering a new user.
type CreateUserRequest struct {
	Name     string `validate:"required,min=1,max=100"`
	UserType string `validate:"required"`
	Password string `validate:"required"`
}

// UpdateUserRequest represents the request payload for updating an existing user.
// An empty Password leaves the stored hash untouched.
type UpdateUserRequest struct {
	ID       int64  `validate:"required"`
	Name     string `validate:"required,min=1,max=100"`
	UserType string `validate:"required"`
	Password string
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// ListUsersRequest represents the request payload for listing users.
// It supports offset pagination, a user type equality filter, and single-field
// sorting. OrderBy and Order only apply when both are supplied.
type ListUsersRequest struct {
	Skip     int64
	Take     int64
	UserType string
	OrderBy  string
	Order    string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO for API responses. The password hash is never
// part of any response payload.
type User struct {
	ID       int64
	Name     string
	UserType string
}

func toDTO(u *domain.User) *User {
	return &User{
		ID:       u.ID,
		Name:     u.Name,
		UserType: string(u.UserType),
	}
}
