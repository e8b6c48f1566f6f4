package repository_test

import (
	"testing"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_userRepository_UpdateBalance(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	err := userRepo.Create(ctx, &entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "user1",
	})
	require.NoError(t, err)

	// The matching version wins and bumps the version.
	err = userRepo.UpdateBalance(ctx, "user1", 0, 100)
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(100), user.PointBalance)
	require.Equal(t, int64(1), user.Version)

	// A stale version misses the guard.
	err = userRepo.UpdateBalance(ctx, "user1", 0, 200)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	user, err = userRepo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(100), user.PointBalance)
}
