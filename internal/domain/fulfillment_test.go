package domain

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/model"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/errorx"
	"github.com/sweatstakes/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newFulfillmentDomainForTest() (*fulfillmentDomain, *ledgerDomain) {
	ledgerDomain := NewLedgerDomain(
		repository.NewUserRepository(),
		repository.NewPointTransactionRepository(),
	)
	fulfillmentDomain := NewFulfillmentDomain(
		repository.NewPrizeFulfillmentRepository(),
		repository.NewPrizeRepository(),
		ledgerDomain,
	)

	return fulfillmentDomain, ledgerDomain
}

func samplePendingFulfillment(
	t *testing.T, ctx context.Context,
	fulfillmentType entity.PrizeFulfillmentType, pointsValue int64,
) entity.PrizeFulfillment {
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	drawing, err := testutil.SampleDrawing(ctx, nil)
	require.NoError(t, err)

	prize, err := testutil.SamplePrize(ctx, &entity.Prize{
		DrawingID:       drawing.ID,
		FulfillmentType: fulfillmentType,
		PointsValue:     pointsValue,
	})
	require.NoError(t, err)

	ticket, err := testutil.SampleTicket(ctx, &entity.Ticket{
		DrawingID: drawing.ID,
		UserID:    user.ID,
	})
	require.NoError(t, err)

	fulfillment, err := testutil.SamplePrizeFulfillment(ctx, &entity.PrizeFulfillment{
		TicketID: ticket.ID,
		PrizeID:  prize.ID,
		UserID:   user.ID,
	})
	require.NoError(t, err)

	return fulfillment
}

func Test_fulfillmentDomain_PhysicalHappyPath(t *testing.T) {
	ctx := testutil.MockContext()
	fulfillmentDomain, _ := newFulfillmentDomainForTest()
	fulfillment := samplePendingFulfillment(t, ctx, entity.PhysicalPrize, 0)

	notified, err := fulfillmentDomain.Notify(ctx,
		&model.NotifyWinnerRequest{FulfillmentID: fulfillment.ID})
	require.NoError(t, err)
	require.Equal(t, "winner_notified", notified.Fulfillment.Status)
	require.NotEmpty(t, notified.Fulfillment.NotifiedAt)

	confirmed, err := fulfillmentDomain.ConfirmAddress(ctx, &model.ConfirmAddressRequest{
		FulfillmentID:   fulfillment.ID,
		ShippingAddress: "1 Main St, Springfield",
	})
	require.NoError(t, err)
	require.Equal(t, "address_confirmed", confirmed.Fulfillment.Status)

	shipped, err := fulfillmentDomain.Ship(ctx, &model.ShipPrizeRequest{
		FulfillmentID:  fulfillment.ID,
		TrackingNumber: "1Z999",
		Carrier:        "UPS",
	})
	require.NoError(t, err)
	require.Equal(t, "shipped", shipped.Fulfillment.Status)
	require.Equal(t, "1Z999", shipped.Fulfillment.TrackingNumber)

	delivered, err := fulfillmentDomain.Deliver(ctx,
		&model.DeliverPrizeRequest{FulfillmentID: fulfillment.ID})
	require.NoError(t, err)
	require.Equal(t, "delivered", delivered.Fulfillment.Status)
	require.NotEmpty(t, delivered.Fulfillment.DeliveredAt)
}

func Test_fulfillmentDomain_InvalidTransitions(t *testing.T) {
	ctx := testutil.MockContext()
	fulfillmentDomain, _ := newFulfillmentDomainForTest()
	fulfillment := samplePendingFulfillment(t, ctx, entity.PhysicalPrize, 0)

	var errx errorx.Error

	// Cannot ship before the winner confirmed an address.
	_, err := fulfillmentDomain.Ship(ctx, &model.ShipPrizeRequest{
		FulfillmentID:  fulfillment.ID,
		TrackingNumber: "1Z999",
		Carrier:        "UPS",
	})
	require.Error(t, err)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidTransition, errx.Code)

	// Cannot deliver a physical prize that never shipped.
	_, err = fulfillmentDomain.Deliver(ctx,
		&model.DeliverPrizeRequest{FulfillmentID: fulfillment.ID})
	require.Error(t, err)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidTransition, errx.Code)

	// Confirming needs a non-empty address.
	_, err = fulfillmentDomain.Notify(ctx,
		&model.NotifyWinnerRequest{FulfillmentID: fulfillment.ID})
	require.NoError(t, err)
	_, err = fulfillmentDomain.ConfirmAddress(ctx, &model.ConfirmAddressRequest{
		FulfillmentID: fulfillment.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Require a shipping address", err.Error())
}

func Test_fulfillmentDomain_InvalidAddressLoop(t *testing.T) {
	ctx := testutil.MockContext()
	fulfillmentDomain, _ := newFulfillmentDomainForTest()
	fulfillment := samplePendingFulfillment(t, ctx, entity.PhysicalPrize, 0)

	_, err := fulfillmentDomain.Notify(ctx,
		&model.NotifyWinnerRequest{FulfillmentID: fulfillment.ID})
	require.NoError(t, err)

	invalid, err := fulfillmentDomain.MarkInvalidAddress(ctx,
		&model.MarkInvalidAddressRequest{FulfillmentID: fulfillment.ID})
	require.NoError(t, err)
	require.Equal(t, "address_invalid", invalid.Fulfillment.Status)

	// Shipping is blocked until the winner re-confirms.
	_, err = fulfillmentDomain.Ship(ctx, &model.ShipPrizeRequest{
		FulfillmentID:  fulfillment.ID,
		TrackingNumber: "1Z999",
		Carrier:        "UPS",
	})
	require.Error(t, err)

	confirmed, err := fulfillmentDomain.ConfirmAddress(ctx, &model.ConfirmAddressRequest{
		FulfillmentID:   fulfillment.ID,
		ShippingAddress: "2 Oak Ave, Shelbyville",
	})
	require.NoError(t, err)
	require.Equal(t, "address_confirmed", confirmed.Fulfillment.Status)
}

func Test_fulfillmentDomain_Forfeit(t *testing.T) {
	ctx := testutil.MockContext()
	fulfillmentDomain, _ := newFulfillmentDomainForTest()
	fulfillment := samplePendingFulfillment(t, ctx, entity.PhysicalPrize, 0)

	// A pending fulfillment cannot be forfeited; the winner was never told.
	_, err := fulfillmentDomain.Forfeit(ctx,
		&model.ForfeitPrizeRequest{FulfillmentID: fulfillment.ID})
	require.Error(t, err)

	_, err = fulfillmentDomain.Notify(ctx,
		&model.NotifyWinnerRequest{FulfillmentID: fulfillment.ID})
	require.NoError(t, err)

	forfeited, err := fulfillmentDomain.Forfeit(ctx,
		&model.ForfeitPrizeRequest{FulfillmentID: fulfillment.ID})
	require.NoError(t, err)
	require.Equal(t, "forfeited", forfeited.Fulfillment.Status)

	// Forfeiture is terminal.
	_, err = fulfillmentDomain.Notify(ctx,
		&model.NotifyWinnerRequest{FulfillmentID: fulfillment.ID})
	require.Error(t, err)
}

func Test_fulfillmentDomain_DigitalPrize(t *testing.T) {
	ctx := testutil.MockContext()
	fulfillmentDomain, ledgerDomain := newFulfillmentDomainForTest()
	fulfillment := samplePendingFulfillment(t, ctx, entity.DigitalPrize, 250)

	_, err := fulfillmentDomain.Notify(ctx,
		&model.NotifyWinnerRequest{FulfillmentID: fulfillment.ID})
	require.NoError(t, err)

	// Digital prizes never go through the shipping leg.
	_, err = fulfillmentDomain.ConfirmAddress(ctx, &model.ConfirmAddressRequest{
		FulfillmentID:   fulfillment.ID,
		ShippingAddress: "1 Main St",
	})
	require.Error(t, err)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidTransition, errx.Code)

	delivered, err := fulfillmentDomain.Deliver(ctx,
		&model.DeliverPrizeRequest{FulfillmentID: fulfillment.ID})
	require.NoError(t, err)
	require.Equal(t, "delivered", delivered.Fulfillment.Status)

	// Delivery credited the prize's point value.
	balance, err := ledgerDomain.BalanceOf(ctx, fulfillment.UserID)
	require.NoError(t, err)
	require.Equal(t, int64(250), balance)
}

func Test_fulfillmentDomain_GetOverdue(t *testing.T) {
	ctx := testutil.MockContext()
	fulfillmentDomain, _ := newFulfillmentDomainForTest()

	stale := samplePendingFulfillment(t, ctx, entity.PhysicalPrize, 0)
	fresh := samplePendingFulfillment(t, ctx, entity.PhysicalPrize, 0)

	fulfillmentRepo := repository.NewPrizeFulfillmentRepository()
	err := fulfillmentRepo.UpdateStatus(ctx, stale.ID,
		entity.FulfillmentPending, entity.WinnerNotified,
		map[string]any{"notified_at": sql.NullTime{Time: time.Now().Add(-48 * time.Hour), Valid: true}})
	require.NoError(t, err)
	err = fulfillmentRepo.UpdateStatus(ctx, fresh.ID,
		entity.FulfillmentPending, entity.WinnerNotified,
		map[string]any{"notified_at": sql.NullTime{Time: time.Now(), Valid: true}})
	require.NoError(t, err)

	overdue, err := fulfillmentDomain.GetOverdue(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, stale.ID, overdue[0].ID)
}
