package repository_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_ticketRepository_AssignNumberOnce(t *testing.T) {
	ctx := testutil.MockContext()
	ticketRepo := repository.NewTicketRepository()

	ticket := &entity.Ticket{
		Base:      entity.Base{ID: uuid.NewString()},
		DrawingID: uuid.NewString(),
		UserID:    uuid.NewString(),
	}
	require.NoError(t, ticketRepo.Create(ctx, ticket))

	require.NoError(t, ticketRepo.AssignNumber(ctx, ticket.ID, 1))

	// The NULL guard rejects a second numbering.
	err := ticketRepo.AssignNumber(ctx, ticket.ID, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := ticketRepo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.TicketNumber.Int64)
}

func Test_ticketRepository_MarkWinnerOnce(t *testing.T) {
	ctx := testutil.MockContext()
	ticketRepo := repository.NewTicketRepository()

	ticket := &entity.Ticket{
		Base:      entity.Base{ID: uuid.NewString()},
		DrawingID: uuid.NewString(),
		UserID:    uuid.NewString(),
	}
	require.NoError(t, ticketRepo.Create(ctx, ticket))

	require.NoError(t, ticketRepo.MarkWinner(ctx, ticket.ID, "prize1"))

	// A ticket wins at most once.
	err := ticketRepo.MarkWinner(ctx, ticket.ID, "prize2")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := ticketRepo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.True(t, got.IsWinner)
	require.Equal(t, "prize1", got.PrizeID.String)
}
