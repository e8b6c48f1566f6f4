package cron

import (
	"testing"
	"time"

	"github.com/sweatstakes/backend/internal/common"
	"github.com/sweatstakes/backend/internal/domain"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/testutil"
	"github.com/sweatstakes/backend/pkg/xredis"
	"github.com/stretchr/testify/require"
)

func Test_DrawingEventCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()

	drawingRepo := repository.NewDrawingRepository()
	ledgerDomain := domain.NewLedgerDomain(
		repository.NewUserRepository(),
		repository.NewPointTransactionRepository(),
	)
	ticketDomain := domain.NewTicketDomain(
		repository.NewTicketRepository(),
		drawingRepo,
		ledgerDomain,
		common.NewAllowAllVerifier(),
	)
	drawingDomain := domain.NewDrawingDomain(
		drawingRepo,
		repository.NewPrizeRepository(),
		ticketDomain,
	)
	drawEngine := domain.NewDrawEngine(
		drawingRepo,
		repository.NewTicketRepository(),
		repository.NewPrizeRepository(),
		repository.NewPrizeFulfillmentRepository(),
		drawingDomain,
	)

	// Sales closed two minutes ago and the draw was due one minute ago, so a
	// single tick both closes and executes the drawing.
	drawing, err := testutil.SampleDrawing(ctx, &entity.Drawing{
		Status:           entity.DrawingOpen,
		TicketSalesClose: time.Now().Add(-2 * time.Minute),
		DrawingTime:      time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	_, err = testutil.SampleTicket(ctx, &entity.Ticket{
		DrawingID: drawing.ID,
		UserID:    user.ID,
	})
	require.NoError(t, err)

	job := NewDrawingEventCronJob(drawingRepo, drawingDomain, drawEngine, &testutil.MockLocker{})
	job.Do(ctx)

	completed, err := drawingRepo.GetByID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DrawingCompleted, completed.Status)
	require.Equal(t, 1, completed.TotalTickets)
}

func Test_DrawingEventCronJob_SkipsHeldLocks(t *testing.T) {
	ctx := testutil.MockContext()

	drawingRepo := repository.NewDrawingRepository()
	drawing, err := testutil.SampleDrawing(ctx, &entity.Drawing{
		Status:           entity.DrawingOpen,
		TicketSalesClose: time.Now().Add(-time.Minute),
		DrawingTime:      time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	// Another instance holds every lock; this tick must leave the drawing
	// untouched and report no error.
	job := NewDrawingEventCronJob(drawingRepo, nil, nil,
		&testutil.MockLocker{Err: xredis.ErrLockNotObtained})
	job.Do(ctx)

	got, err := drawingRepo.GetByID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DrawingOpen, got.Status)
}
