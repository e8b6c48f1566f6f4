package repository

import (
	"context"
	"errors"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	GetListByDrawingID(ctx context.Context, drawingID string) ([]entity.Ticket, error)
	GetListByUserID(ctx context.Context, userID, drawingID string) ([]entity.Ticket, error)
	AssignNumber(ctx context.Context, id string, number int64) error
	MarkWinner(ctx context.Context, id, prizeID string) error
}

type ticketRepository struct{}

func NewTicketRepository() *ticketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return xcontext.DB(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	var result entity.Ticket
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetListByDrawingID returns the drawing's tickets in purchase order, ties
// broken by id so numbering and replay see one canonical ordering.
func (r *ticketRepository) GetListByDrawingID(
	ctx context.Context, drawingID string,
) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).Where("drawing_id=?", drawingID).
		Order("created_at ASC, id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) GetListByUserID(
	ctx context.Context, userID, drawingID string,
) ([]entity.Ticket, error) {
	var result []entity.Ticket
	tx := xcontext.DB(ctx).Where("user_id=?", userID)
	if drawingID != "" {
		tx = tx.Where("drawing_id=?", drawingID)
	}

	if err := tx.Order("created_at ASC, id ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// AssignNumber writes a ticket number exactly once. A miss means the ticket
// was already numbered, which callers treat as a fatal programmer error.
func (r *ticketRepository) AssignNumber(ctx context.Context, id string, number int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=? AND ticket_number IS NULL", id).
		Update("ticket_number", number)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *ticketRepository) MarkWinner(ctx context.Context, id, prizeID string) error {
	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=? AND is_winner=?", id, false).
		Updates(map[string]any{
			"is_winner": true,
			"prize_id":  prizeID,
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
