package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-directory-service/internal/domain/user"
	apperrors "user-directory-service/pkg/errors"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
// The unique index on name is the authoritative uniqueness guard; the
// application-level pre-check in the usecase is only an early exit, so
// duplicate-key errors surfacing here are translated to conflicts.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name         string `gorm:"not null;uniqueIndex"`     // Unique account name
	UserType     string `gorm:"not null"`                 // Account role
	PasswordHash string `gorm:"not null"`                 // One-way password digest
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func toDomain(m *UserSchema) *user.User {
	return &user.User{
		ID:           m.ID,
		Name:         m.Name,
		UserType:     user.UserType(m.UserType),
		PasswordHash: m.PasswordHash,
	}
}

// Insert persists a new user and returns it with its assigned ID.
func (r *UserRepoPG) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, apperrors.NewInvalidArgumentError("user", "user cannot be nil")
	}

	model := UserSchema{
		Name:         u.Name,
		UserType:     string(u.UserType),
		PasswordHash: u.PasswordHash,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate name on insert", zap.String("name", u.Name))
			return nil, apperrors.NewConflictError("user", fmt.Sprintf("user with name %q already exists", u.Name))
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("name", u.Name))
		return nil, apperrors.NewStoreUnavailableError("failed to create user", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return toDomain(&model), nil
}

// Replace persists the updated fields of an existing user and returns the
// updated record. All mutable columns are written, including the password
// hash; the caller decides whether the hash changed.
func (r *UserRepoPG) Replace(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, apperrors.NewInvalidArgumentError("user", "user cannot be nil")
	}

	res := r.db.WithContext(ctx).
		Model(&UserSchema{}).
		Where("id = ?", u.ID).
		Select("name", "user_type", "password_hash").
		Updates(UserSchema{
			Name:         u.Name,
			UserType:     string(u.UserType),
			PasswordHash: u.PasswordHash,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate name on update", zap.Int64("id", u.ID), zap.String("name", u.Name))
			return nil, apperrors.NewConflictError("user", fmt.Sprintf("user with name %q already exists", u.Name))
		}
		r.log.Error("failed to update user in db", zap.Error(res.Error), zap.Int64("id", u.ID))
		return nil, apperrors.NewStoreUnavailableError("failed to update user", res.Error)
	}
	if res.RowsAffected == 0 {
		r.log.Warn("update target missing", zap.Int64("id", u.ID))
		return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", u.ID))
	}

	r.log.Info("user updated in db", zap.Int64("id", u.ID))
	return r.FindByID(ctx, u.ID)
}

// Remove deletes a user by ID and returns its last known state.
func (r *UserRepoPG) Remove(ctx context.Context, id int64) (*user.User, error) {
	if id <= 0 {
		return nil, apperrors.NewInvalidArgumentError("id", "user id must be a positive integer")
	}

	last, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&UserSchema{}, id).Error; err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", id))
		return nil, apperrors.NewStoreUnavailableError("failed to delete user", err)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return last, nil
}

// FindByID retrieves a user from the database by their unique ID.
func (r *UserRepoPG) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.Int64("id", id))
			return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, apperrors.NewStoreUnavailableError("failed to get user", err)
	}

	return toDomain(&model), nil
}

// FindByName retrieves a user by exact, case-sensitive name match.
// Returns nil without error when no user has that name.
func (r *UserRepoPG) FindByName(ctx context.Context, name string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by name", zap.String("name", name))
			return nil, nil
		}
		r.log.Error("failed to get user by name from db", zap.Error(err), zap.String("name", name))
		return nil, apperrors.NewStoreUnavailableError("failed to get user by name", err)
	}

	return toDomain(&model), nil
}

// FindMany retrieves users with the query's filter, sort and pagination
// applied. Without an explicit sort, rows come back in primary key order so
// offset pagination stays stable across calls.
func (r *UserRepoPG) FindMany(ctx context.Context, q user.ListQuery) ([]user.User, error) {
	tx := r.db.WithContext(ctx).Model(&UserSchema{})

	if q.UserType != "" {
		tx = tx.Where("user_type = ?", string(q.UserType))
	}

	if q.OrderBy != "" && q.Order != "" {
		col, ok := user.SortColumn(q.OrderBy)
		if !ok {
			return nil, apperrors.NewInvalidArgumentError("order_by", fmt.Sprintf("cannot sort by %q", q.OrderBy))
		}
		dir := "ASC"
		if q.Order == user.SortDesc {
			dir = "DESC"
		}
		tx = tx.Order(col + " " + dir)
	} else {
		tx = tx.Order("id ASC")
	}

	if q.Skip > 0 {
		tx = tx.Offset(int(q.Skip))
	}
	if q.Take > 0 {
		tx = tx.Limit(int(q.Take))
	}

	var models []UserSchema
	if err := tx.Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err),
			zap.Int64("skip", q.Skip), zap.Int64("take", q.Take))
		return nil, apperrors.NewStoreUnavailableError("failed to list users", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}

	return users, nil
}
