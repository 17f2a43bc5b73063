package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

// UserStore is the part of the user repository the seed needs
type UserStore interface {
	Create(ctx context.Context, user *appModels.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*appModels.User, error)
	UpdateRole(ctx context.Context, id int64, role appModels.RoleType) (*appModels.User, error)
}

// CreateDefaultData makes sure the configured bootstrap admin exists and holds the admin
// role. An empty email skips seeding.
func CreateDefaultData(ctx context.Context, users UserStore, adminEmail string, lgr zerolog.Logger) error {
	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	if adminEmail == "" {
		lgr.Info().Msg("No bootstrap admin configured, skipping default data")
		return nil
	}

	lgr.Info().Str("email", adminEmail).Msg("Checking/Creating default admin user...")

	existing, err := users.GetByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		if existing.Role == appModels.RoleAdmin {
			lgr.Info().Msg("Admin user already exists, skipping creation")
			return nil
		}
		if _, err := users.UpdateRole(ctx, existing.ID, appModels.RoleAdmin); err != nil {
			lgr.Error().Err(err).Msg("Error promoting existing user to admin")
			return err
		}
		lgr.Info().Int64("adminID", existing.ID).Msg("Existing user promoted to admin")
		return nil

	case !errors.Is(err, apperrors.ErrUserNotFound):
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}

	admin := &appModels.User{
		Email: adminEmail,
		Name:  "System Administrator",
		Role:  appModels.RoleAdmin,
	}
	adminID, err := users.Create(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created successfully")
	return nil
}
