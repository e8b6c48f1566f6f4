package repository

import (
	"context"
	"errors"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	UpdateBalance(ctx context.Context, id string, expectedVersion, newBalance int64) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateBalance is the optimistic-locking write of the point ledger. It
// returns gorm.ErrRecordNotFound when the version guard misses, meaning a
// concurrent writer got there first and the caller must re-read and retry.
func (r *userRepository) UpdateBalance(
	ctx context.Context, id string, expectedVersion, newBalance int64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND version=?", id, expectedVersion).
		Updates(map[string]any{
			"point_balance": newBalance,
			"version":       gorm.Expr("version+1"),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
