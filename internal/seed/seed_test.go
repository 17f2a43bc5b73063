package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

type seedUsers struct {
	byEmail map[string]*appModels.User
	created int
	updated int
}

func (s *seedUsers) Create(_ context.Context, user *appModels.User) (int64, error) {
	s.created++
	user.ID = int64(len(s.byEmail) + 1)
	s.byEmail[user.Email] = user
	return user.ID, nil
}

func (s *seedUsers) GetByEmail(_ context.Context, email string) (*appModels.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *seedUsers) UpdateRole(_ context.Context, id int64, role appModels.RoleType) (*appModels.User, error) {
	s.updated++
	for _, u := range s.byEmail {
		if u.ID == id {
			u.Role = role
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func TestCreateDefaultDataCreatesAdminOnce(t *testing.T) {
	users := &seedUsers{byEmail: map[string]*appModels.User{}}
	ctx := context.Background()

	require.NoError(t, CreateDefaultData(ctx, users, " Admin@SportFit.app ", zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, users, "admin@sportfit.app", zerolog.Nop()))

	assert.Equal(t, 1, users.created)
	assert.Zero(t, users.updated)
	assert.Equal(t, appModels.RoleAdmin, users.byEmail["admin@sportfit.app"].Role)
}

func TestCreateDefaultDataPromotesExistingUser(t *testing.T) {
	users := &seedUsers{byEmail: map[string]*appModels.User{
		"owner@sportfit.app": {ID: 1, Email: "owner@sportfit.app"},
	}}

	require.NoError(t, CreateDefaultData(context.Background(), users, "owner@sportfit.app", zerolog.Nop()))
	assert.Zero(t, users.created)
	assert.Equal(t, 1, users.updated)
	assert.Equal(t, appModels.RoleAdmin, users.byEmail["owner@sportfit.app"].Role)
}

func TestCreateDefaultDataSkipsWithoutEmail(t *testing.T) {
	users := &seedUsers{byEmail: map[string]*appModels.User{}}
	require.NoError(t, CreateDefaultData(context.Background(), users, "", zerolog.Nop()))
	assert.Zero(t, users.created)
}
