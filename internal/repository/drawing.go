package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type DrawingRepository interface {
	Create(ctx context.Context, drawing *entity.Drawing) error
	GetByID(ctx context.Context, id string) (*entity.Drawing, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.DrawingStatus) error
	Cancel(ctx context.Context, id string) error
	DeleteDraft(ctx context.Context, id string) error
	SetCompleted(ctx context.Context, id, seed string, totalTickets int, completedAt time.Time) error
	GetDueForClose(ctx context.Context, now time.Time) ([]entity.Drawing, error)
	GetDueForExecution(ctx context.Context, now time.Time) ([]entity.Drawing, error)
}

type drawingRepository struct{}

func NewDrawingRepository() *drawingRepository {
	return &drawingRepository{}
}

func (r *drawingRepository) Create(ctx context.Context, drawing *entity.Drawing) error {
	return xcontext.DB(ctx).Create(drawing).Error
}

func (r *drawingRepository) GetByID(ctx context.Context, id string) (*entity.Drawing, error) {
	var result entity.Drawing
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateStatus moves a drawing along one lifecycle edge. It returns
// gorm.ErrRecordNotFound when the drawing is not in the expected source
// status, so racing callers observe exactly one transition.
func (r *drawingRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.DrawingStatus,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Drawing{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *drawingRepository) Cancel(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.Drawing{}).
		Where("id=? AND status NOT IN (?)",
			id, []entity.DrawingStatus{entity.DrawingCompleted, entity.DrawingCancelled}).
		Update("status", entity.DrawingCancelled)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *drawingRepository) DeleteDraft(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Where("id=? AND status=?", id, entity.DrawingDraft).
		Delete(&entity.Drawing{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *drawingRepository) SetCompleted(
	ctx context.Context, id, seed string, totalTickets int, completedAt time.Time,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Drawing{}).
		Where("id=? AND status=?", id, entity.DrawingClosed).
		Updates(map[string]any{
			"status":        entity.DrawingCompleted,
			"random_seed":   seed,
			"total_tickets": totalTickets,
			"completed_at":  sql.NullTime{Time: completedAt, Valid: true},
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

func (r *drawingRepository) GetDueForClose(ctx context.Context, now time.Time) ([]entity.Drawing, error) {
	var result []entity.Drawing
	err := xcontext.DB(ctx).
		Where("status=? AND ticket_sales_close <= ?", entity.DrawingOpen, now).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *drawingRepository) GetDueForExecution(ctx context.Context, now time.Time) ([]entity.Drawing, error) {
	var result []entity.Drawing
	err := xcontext.DB(ctx).
		Where("status=? AND drawing_time <= ?", entity.DrawingClosed, now).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
