package repository

import (
	"context"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/pkg/xcontext"
)

type PrizeRepository interface {
	Create(ctx context.Context, prize *entity.Prize) error
	GetByID(ctx context.Context, id string) (*entity.Prize, error)
	GetListByDrawingID(ctx context.Context, drawingID string) ([]entity.Prize, error)
}

type prizeRepository struct{}

func NewPrizeRepository() *prizeRepository {
	return &prizeRepository{}
}

func (r *prizeRepository) Create(ctx context.Context, prize *entity.Prize) error {
	return xcontext.DB(ctx).Create(prize).Error
}

func (r *prizeRepository) GetByID(ctx context.Context, id string) (*entity.Prize, error) {
	var result entity.Prize
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetListByDrawingID returns prizes in rank order. The draw engine awards
// rank 1 first, so this ordering decides who draws from the full pool.
func (r *prizeRepository) GetListByDrawingID(
	ctx context.Context, drawingID string,
) ([]entity.Prize, error) {
	var result []entity.Prize
	err := xcontext.DB(ctx).Where("drawing_id=?", drawingID).
		Order("`rank` ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
