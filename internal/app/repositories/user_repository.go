package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/db"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	"github.com/yigit/sportfit/internal/pkg/dberrors"
	"github.com/yigit/sportfit/internal/pkg/logger"
)

var userColumns = []string{
	"id", "email", "name", "photo_url", "password", "COALESCE(role, '') AS role", "created_at", "updated_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(conn db.DBTX) *UserRepository {
	return &UserRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Password, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = models.RoleType(role)
	return u, nil
}

// Create inserts a user and returns its id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	var role interface{}
	if user.Role != "" {
		role = string(user.Role)
	}

	sql, args, err := r.sb.Insert("users").
		Columns("email", "name", "photo_url", "password", "role").
		Values(user.Email, user.Name, user.PhotoURL, user.Password, role).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return 0, storeError("create user", err)
	}

	return user.ID, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr("get user by email", err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr("get user by id", err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// List returns all users, oldest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("list users", err)
	}
	users, err := collect(rows, scanUser)
	if err != nil {
		return nil, storeError("scan users", err)
	}
	return users, nil
}

// GetRoleByEmail returns the stored role for email, or "" when the user is unknown
// or has no role.
func (r *UserRepository) GetRoleByEmail(ctx context.Context, email string) (models.RoleType, error) {
	sql, args, err := r.sb.Select("COALESCE(role, '')").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build get role query: %w", err)
	}

	var role string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", storeError("get role", err)
	}
	return models.RoleType(role), nil
}

// UpdateRole sets the role of the user with id and returns the updated user.
// An empty role clears the column.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.RoleType) (*models.User, error) {
	var value interface{}
	if role != "" {
		value = string(role)
	}

	sql, args, err := r.sb.Update("users").
		Set("role", value).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update role query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr("update role", err, apperrors.ErrUserNotFound)
	}
	return user, nil
}
