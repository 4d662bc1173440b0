package user

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/user"
	apperrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/hash"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer; implementations own all persisted user state
// and are expected to enforce name uniqueness with an atomic constraint.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)        // Retrieve user by ID, NotFound when absent
	FindByName(ctx context.Context, name string) (*domain.User, error)   // Retrieve user by exact name, nil when absent
	FindMany(ctx context.Context, q domain.ListQuery) ([]domain.User, error) // List users with filter, sort and pagination
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)    // Persist a new user and assign its ID
	Replace(ctx context.Context, u *domain.User) (*domain.User, error)   // Persist updated fields of an existing user
	Remove(ctx context.Context, id int64) (*domain.User, error)          // Delete a user, returning its last known state
}

// Usecase implements the user directory business logic: listing, lookup, and
// the validated create/update/delete mutations. Every mutation re-reads
// current repository state before writing; the uniqueness pre-check is an
// early exit, the storage unique index is the real guard.
type Usecase struct {
	repo     Repository          // Repository for data access
	hasher   hash.Hasher         // One-way password hasher
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new instance of Usecase with the provided repository, hasher and logger.
func New(r Repository, h hash.Hasher, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, hasher: h, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a typed
// invalid-argument failure with a human-readable message.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewInvalidArgumentError("", strings.Join(messages, ", "))
	}
	return err
}

// CreateUser registers a new user after validating the request, the role, and
// name uniqueness. The password is hashed before anything is persisted.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	uc.log.Info("creating user", zap.String("name", in.Name), zap.String("user_type", in.UserType))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	userType := domain.UserType(in.UserType)
	if !domain.WritableType(userType) {
		uc.log.Warn("invalid user type", zap.String("user_type", in.UserType))
		return nil, apperrors.NewInvalidArgumentError("user_type", fmt.Sprintf("user type %q is not allowed", in.UserType))
	}

	existing, err := uc.repo.FindByName(ctx, in.Name)
	if err != nil {
		uc.log.Error("failed to check existing name", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		uc.log.Warn("name already exists", zap.String("name", in.Name), zap.Int64("existing_id", existing.ID))
		return nil, apperrors.NewConflictError("user", fmt.Sprintf("user with name %q already exists", in.Name))
	}

	digest, err := uc.hasher.Hash(in.Password)
	if err != nil {
		uc.log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	created, err := uc.repo.Insert(ctx, &domain.User{
		Name:         in.Name,
		UserType:     userType,
		PasswordHash: digest,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	uc.log.Info("user created", zap.Int64("id", created.ID))
	return toDTO(created), nil
}

// UpdateUser updates an existing user after validating the request, target
// existence, the role, and name uniqueness against other users. A supplied
// password is re-hashed; an empty password leaves the stored hash untouched.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	uc.log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("user_type", in.UserType))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	current, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		uc.log.Warn("update target not found", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	userType := domain.UserType(in.UserType)
	if !domain.WritableType(userType) {
		uc.log.Warn("invalid user type", zap.String("user_type", in.UserType))
		return nil, apperrors.NewInvalidArgumentError("user_type", fmt.Sprintf("user type %q is not allowed", in.UserType))
	}

	existing, err := uc.repo.FindByName(ctx, in.Name)
	if err != nil {
		uc.log.Error("failed to check existing name", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	if existing != nil && existing.ID != in.ID {
		uc.log.Warn("name already exists", zap.String("name", in.Name), zap.Int64("existing_id", existing.ID))
		return nil, apperrors.NewConflictError("user", fmt.Sprintf("user with name %q already exists", in.Name))
	}

	digest := current.PasswordHash
	if in.Password != "" {
		digest, err = uc.hasher.Hash(in.Password)
		if err != nil {
			uc.log.Error("failed to hash password", zap.Error(err))
			return nil, err
		}
	}

	updated, err := uc.repo.Replace(ctx, &domain.User{
		ID:           in.ID,
		Name:         in.Name,
		UserType:     userType,
		PasswordHash: digest,
	})
	if err != nil {
		uc.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	uc.log.Info("user updated", zap.Int64("id", updated.ID))
	return toDTO(updated), nil
}

// DeleteUser deletes a user after verifying the target exists. The removed
// user's last known state is returned.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*User, error) {
	uc.log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		uc.log.Warn("delete user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, apperrors.NewInvalidArgumentError("id", "user id must be a positive integer")
	}

	if _, err := uc.repo.FindByID(ctx, in.ID); err != nil {
		uc.log.Warn("delete target not found", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	removed, err := uc.repo.Remove(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	uc.log.Info("user deleted", zap.Int64("id", in.ID))
	return toDTO(removed), nil
}

// GetUser retrieves a user by ID.
func (uc *Usecase) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	if in.ID <= 0 {
		uc.log.Warn("get user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, apperrors.NewInvalidArgumentError("id", "user id must be a positive integer")
	}

	u, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		uc.log.Warn("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return toDTO(u), nil
}

// ListUsers retrieves users filtered, sorted and paged per the request.
// A user type filter outside the full domain fails with an invalid-argument
// error. Sorting applies only when both OrderBy and Order are supplied; an
// unknown sort field or direction fails rather than being forwarded blindly.
func (uc *Usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	if in.Skip < 0 {
		return nil, apperrors.NewInvalidArgumentError("skip", "skip must be non-negative")
	}
	if in.Take < 0 {
		return nil, apperrors.NewInvalidArgumentError("take", "take must be non-negative")
	}

	q := domain.ListQuery{Skip: in.Skip, Take: in.Take}

	if in.UserType != "" {
		userType := domain.UserType(in.UserType)
		if !domain.ValidType(userType) {
			uc.log.Warn("invalid user type filter", zap.String("user_type", in.UserType))
			return nil, apperrors.NewInvalidArgumentError("user_type", fmt.Sprintf("unknown user type %q", in.UserType))
		}
		q.UserType = userType
	}

	if in.OrderBy != "" && in.Order != "" {
		if !domain.SortableField(in.OrderBy) {
			uc.log.Warn("invalid sort field", zap.String("order_by", in.OrderBy))
			return nil, apperrors.NewInvalidArgumentError("order_by", fmt.Sprintf("cannot sort by %q", in.OrderBy))
		}
		order := domain.SortOrder(strings.ToLower(in.Order))
		if !domain.ValidSortOrder(order) {
			uc.log.Warn("invalid sort order", zap.String("order", in.Order))
			return nil, apperrors.NewInvalidArgumentError("order", fmt.Sprintf("unknown sort order %q", in.Order))
		}
		q.OrderBy = in.OrderBy
		q.Order = order
	}

	uc.log.Info("listing users",
		zap.Int64("skip", in.Skip),
		zap.Int64("take", in.Take),
		zap.String("user_type", in.UserType),
		zap.String("order_by", q.OrderBy),
	)

	domainUsers, err := uc.repo.FindMany(ctx, q)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = *toDTO(&du)
	}

	return &ListUsersResponse{Users: users}, nil
}
