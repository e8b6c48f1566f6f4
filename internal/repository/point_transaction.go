package repository

import (
	"context"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/pkg/xcontext"
)

type PointTransactionRepository interface {
	Create(ctx context.Context, transaction *entity.PointTransaction) error
	GetListByUserID(ctx context.Context, userID string) ([]entity.PointTransaction, error)
}

type pointTransactionRepository struct{}

func NewPointTransactionRepository() *pointTransactionRepository {
	return &pointTransactionRepository{}
}

func (r *pointTransactionRepository) Create(ctx context.Context, transaction *entity.PointTransaction) error {
	return xcontext.DB(ctx).Create(transaction).Error
}

// GetListByUserID returns the user's transactions in append order. The ledger
// folds this list to derive the balance, so the ordering must be stable.
func (r *pointTransactionRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.PointTransaction, error) {
	var result []entity.PointTransaction
	err := xcontext.DB(ctx).Where("user_id=?", userID).
		Order("created_at ASC, id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
