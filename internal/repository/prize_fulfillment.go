package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PrizeFulfillmentRepository interface {
	Create(ctx context.Context, fulfillment *entity.PrizeFulfillment) error
	GetByID(ctx context.Context, id string) (*entity.PrizeFulfillment, error)
	GetByTicketID(ctx context.Context, ticketID string) (*entity.PrizeFulfillment, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.PrizeFulfillmentStatus, updates map[string]any) error
	GetOverdueNotified(ctx context.Context, before time.Time) ([]entity.PrizeFulfillment, error)
}

type prizeFulfillmentRepository struct{}

func NewPrizeFulfillmentRepository() *prizeFulfillmentRepository {
	return &prizeFulfillmentRepository{}
}

func (r *prizeFulfillmentRepository) Create(ctx context.Context, fulfillment *entity.PrizeFulfillment) error {
	return xcontext.DB(ctx).Create(fulfillment).Error
}

func (r *prizeFulfillmentRepository) GetByID(ctx context.Context, id string) (*entity.PrizeFulfillment, error) {
	var result entity.PrizeFulfillment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *prizeFulfillmentRepository) GetByTicketID(
	ctx context.Context, ticketID string,
) (*entity.PrizeFulfillment, error) {
	var result entity.PrizeFulfillment
	if err := xcontext.DB(ctx).Take(&result, "ticket_id=?", ticketID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateStatus advances the workflow by one declared edge. The status guard
// makes a lost race look like an illegal transition instead of silently
// overwriting another caller's move.
func (r *prizeFulfillmentRepository) UpdateStatus(
	ctx context.Context,
	id string,
	from, to entity.PrizeFulfillmentStatus,
	updates map[string]any,
) error {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to

	tx := xcontext.DB(ctx).Model(&entity.PrizeFulfillment{}).
		Where("id=? AND status=?", id, from).
		Updates(updates)
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

// GetOverdueNotified lists fulfillments stuck in winner_notified since before
// the given instant. The reaper decides what to do with them.
func (r *prizeFulfillmentRepository) GetOverdueNotified(
	ctx context.Context, before time.Time,
) ([]entity.PrizeFulfillment, error) {
	var result []entity.PrizeFulfillment
	err := xcontext.DB(ctx).
		Where("status=? AND notified_at <= ?", entity.WinnerNotified, before).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
