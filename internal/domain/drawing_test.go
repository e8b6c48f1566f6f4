package domain

import (
	"testing"
	"time"

	"github.com/sweatstakes/backend/internal/common"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/model"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/errorx"
	"github.com/sweatstakes/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newDrawingDomainForTest() (*drawingDomain, *ticketDomain, *ledgerDomain) {
	ledgerDomain := NewLedgerDomain(
		repository.NewUserRepository(),
		repository.NewPointTransactionRepository(),
	)
	ticketDomain := NewTicketDomain(
		repository.NewTicketRepository(),
		repository.NewDrawingRepository(),
		ledgerDomain,
		common.NewAllowAllVerifier(),
	)
	drawingDomain := NewDrawingDomain(
		repository.NewDrawingRepository(),
		repository.NewPrizeRepository(),
		ticketDomain,
	)

	return drawingDomain, ticketDomain, ledgerDomain
}

func Test_drawingDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	drawingDomain, _, _ := newDrawingDomainForTest()

	resp, err := drawingDomain.Create(ctx, &model.CreateDrawingRequest{
		Type:             "weekly",
		TicketSalesClose: time.Now().Add(time.Hour),
		DrawingTime:      time.Now().Add(2 * time.Hour),
		TicketCostPoints: 100,
		Prizes: []model.CreateDrawingPrize{
			{Name: "Treadmill", Rank: 1, Quantity: 1, FulfillmentType: "physical"},
			{Name: "Bonus points", Rank: 2, Quantity: 5, FulfillmentType: "digital", PointsValue: 500},
		},
	})
	require.NoError(t, err)

	got, err := drawingDomain.Get(ctx, &model.GetDrawingRequest{DrawingID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "weekly", got.Drawing.Type)
	require.Equal(t, "draft", got.Drawing.Status)
	require.Len(t, got.Drawing.Prizes, 2)
	require.Equal(t, "Treadmill", got.Drawing.Prizes[0].Name)
	require.Equal(t, "Bonus points", got.Drawing.Prizes[1].Name)
}

func Test_drawingDomain_Create_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	drawingDomain, _, _ := newDrawingDomainForTest()

	// Unknown drawing type.
	_, err := drawingDomain.Create(ctx, &model.CreateDrawingRequest{
		Type:             "hourly",
		TicketSalesClose: time.Now().Add(time.Hour),
		DrawingTime:      time.Now().Add(2 * time.Hour),
	})
	require.Error(t, err)
	require.Equal(t, "Invalid drawing type hourly", err.Error())

	// Sales must close strictly before the drawing happens.
	_, err = drawingDomain.Create(ctx, &model.CreateDrawingRequest{
		Type:             "daily",
		TicketSalesClose: time.Now().Add(2 * time.Hour),
		DrawingTime:      time.Now().Add(time.Hour),
	})
	require.Error(t, err)
	require.Equal(t, "Ticket sales must close before the drawing time", err.Error())

	// Negative ticket cost.
	_, err = drawingDomain.Create(ctx, &model.CreateDrawingRequest{
		Type:             "daily",
		TicketSalesClose: time.Now().Add(time.Hour),
		DrawingTime:      time.Now().Add(2 * time.Hour),
		TicketCostPoints: -1,
	})
	require.Error(t, err)
	require.Equal(t, "Ticket cost must not be negative", err.Error())

	// Prize with no quantity.
	_, err = drawingDomain.Create(ctx, &model.CreateDrawingRequest{
		Type:             "daily",
		TicketSalesClose: time.Now().Add(time.Hour),
		DrawingTime:      time.Now().Add(2 * time.Hour),
		Prizes:           []model.CreateDrawingPrize{{Name: "Nothing", Rank: 1, Quantity: 0, FulfillmentType: "physical"}},
	})
	require.Error(t, err)
	require.Equal(t, "Quantity of prize 1 must be a positive number", err.Error())

	// Prize with an unknown fulfillment type.
	_, err = drawingDomain.Create(ctx, &model.CreateDrawingRequest{
		Type:             "daily",
		TicketSalesClose: time.Now().Add(time.Hour),
		DrawingTime:      time.Now().Add(2 * time.Hour),
		Prizes:           []model.CreateDrawingPrize{{Name: "Ghost", Rank: 1, Quantity: 1, FulfillmentType: "teleport"}},
	})
	require.Error(t, err)
	require.Equal(t, "Invalid fulfillment type teleport of prize 1", err.Error())
}

func Test_drawingDomain_Lifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	drawingDomain, _, _ := newDrawingDomainForTest()

	resp, err := drawingDomain.Create(ctx, &model.CreateDrawingRequest{
		Type:             "daily",
		TicketSalesClose: time.Now().Add(time.Hour),
		DrawingTime:      time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)

	// A draft cannot be opened without scheduling first.
	err = drawingDomain.Open(ctx, resp.ID)
	require.Error(t, err)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidTransition, errx.Code)

	require.NoError(t, drawingDomain.Schedule(ctx, resp.ID))
	require.NoError(t, drawingDomain.Open(ctx, resp.ID))

	// Sales have not closed yet, so closing is an invalid transition.
	err = drawingDomain.Close(ctx, resp.ID)
	require.Error(t, err)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidTransition, errx.Code)

	// Cancel is reachable from open, and cancelling again is a no-op.
	require.NoError(t, drawingDomain.Cancel(ctx, resp.ID))
	require.NoError(t, drawingDomain.Cancel(ctx, resp.ID))

	cancelled, err := drawingDomain.Get(ctx, &model.GetDrawingRequest{DrawingID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "cancelled", cancelled.Drawing.Status)
}

func Test_drawingDomain_Cancel_CompletedDrawing(t *testing.T) {
	ctx := testutil.MockContext()
	drawingDomain, _, _ := newDrawingDomainForTest()

	drawing, err := testutil.SampleDrawing(ctx, &entity.Drawing{
		Status:           entity.DrawingCompleted,
		TicketSalesClose: time.Now().Add(-2 * time.Hour),
		DrawingTime:      time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	// A completed drawing already paid out; it stays completed.
	err = drawingDomain.Cancel(ctx, drawing.ID)
	require.Error(t, err)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidTransition, errx.Code)
}

func Test_drawingDomain_Close_Idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	drawingDomain, _, _ := newDrawingDomainForTest()

	drawing, err := testutil.SampleDrawing(ctx, &entity.Drawing{
		Status:           entity.DrawingOpen,
		TicketSalesClose: time.Now().Add(-time.Minute),
		DrawingTime:      time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, drawingDomain.Close(ctx, drawing.ID))

	// The scheduler may fire again for the same drawing.
	require.NoError(t, drawingDomain.Close(ctx, drawing.ID))

	got, err := repository.NewDrawingRepository().GetByID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DrawingClosed, got.Status)
}

func Test_drawingDomain_Delete_DraftOnly(t *testing.T) {
	ctx := testutil.MockContext()
	drawingDomain, _, _ := newDrawingDomainForTest()

	resp, err := drawingDomain.Create(ctx, &model.CreateDrawingRequest{
		Type:             "daily",
		TicketSalesClose: time.Now().Add(time.Hour),
		DrawingTime:      time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, drawingDomain.Delete(ctx, resp.ID))

	resp, err = drawingDomain.Create(ctx, &model.CreateDrawingRequest{
		Type:             "daily",
		TicketSalesClose: time.Now().Add(time.Hour),
		DrawingTime:      time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, drawingDomain.Schedule(ctx, resp.ID))

	err = drawingDomain.Delete(ctx, resp.ID)
	require.Error(t, err)
	require.Equal(t, "Only draft drawings can be deleted", err.Error())
}
