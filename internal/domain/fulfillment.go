package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/model"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/errorx"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// FulfillmentDomain drives a won prize from notification to delivery or
// forfeiture. It only enforces the transition table; deciding when to call
// each operation belongs to callers (support tooling, carriers, the reaper).
//
// Physical prizes:
//
//	pending -> winner_notified -> address_confirmed -> shipped -> delivered
//	                      \-> address_invalid -> address_confirmed (re-confirm)
//	forfeited from winner_notified or address_confirmed
//
// Digital prizes skip the shipping leg:
//
//	pending -> winner_notified -> delivered
type FulfillmentDomain interface {
	Notify(ctx context.Context, req *model.NotifyWinnerRequest) (*model.NotifyWinnerResponse, error)
	ConfirmAddress(ctx context.Context, req *model.ConfirmAddressRequest) (*model.ConfirmAddressResponse, error)
	MarkInvalidAddress(ctx context.Context, req *model.MarkInvalidAddressRequest) (*model.MarkInvalidAddressResponse, error)
	Ship(ctx context.Context, req *model.ShipPrizeRequest) (*model.ShipPrizeResponse, error)
	Deliver(ctx context.Context, req *model.DeliverPrizeRequest) (*model.DeliverPrizeResponse, error)
	Forfeit(ctx context.Context, req *model.ForfeitPrizeRequest) (*model.ForfeitPrizeResponse, error)
	GetOverdue(ctx context.Context, olderThan time.Time) ([]entity.PrizeFulfillment, error)
}

type fulfillmentDomain struct {
	fulfillmentRepo repository.PrizeFulfillmentRepository
	prizeRepo       repository.PrizeRepository
	ledger          LedgerDomain
}

func NewFulfillmentDomain(
	fulfillmentRepo repository.PrizeFulfillmentRepository,
	prizeRepo repository.PrizeRepository,
	ledger LedgerDomain,
) *fulfillmentDomain {
	return &fulfillmentDomain{
		fulfillmentRepo: fulfillmentRepo,
		prizeRepo:       prizeRepo,
		ledger:          ledger,
	}
}

func (d *fulfillmentDomain) Notify(
	ctx context.Context, req *model.NotifyWinnerRequest,
) (*model.NotifyWinnerResponse, error) {
	fulfillment, err := d.transition(ctx, req.FulfillmentID, "notify",
		[]entity.PrizeFulfillmentStatus{entity.FulfillmentPending},
		entity.WinnerNotified,
		map[string]any{"notified_at": sql.NullTime{Time: time.Now(), Valid: true}},
	)
	if err != nil {
		return nil, err
	}

	return &model.NotifyWinnerResponse{Fulfillment: model.ConvertPrizeFulfillment(fulfillment)}, nil
}

func (d *fulfillmentDomain) ConfirmAddress(
	ctx context.Context, req *model.ConfirmAddressRequest,
) (*model.ConfirmAddressResponse, error) {
	if req.ShippingAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a shipping address")
	}

	prize, err := d.getPrizeOf(ctx, req.FulfillmentID)
	if err != nil {
		return nil, err
	}

	if prize.FulfillmentType != entity.PhysicalPrize {
		return nil, errorx.New(errorx.InvalidTransition,
			"Cannot confirm an address for a %s prize", prize.FulfillmentType)
	}

	fulfillment, err := d.transition(ctx, req.FulfillmentID, "confirm the address of",
		[]entity.PrizeFulfillmentStatus{entity.WinnerNotified, entity.AddressInvalid},
		entity.AddressConfirmed,
		map[string]any{
			"shipping_address":     req.ShippingAddress,
			"address_confirmed_at": sql.NullTime{Time: time.Now(), Valid: true},
		},
	)
	if err != nil {
		return nil, err
	}

	return &model.ConfirmAddressResponse{Fulfillment: model.ConvertPrizeFulfillment(fulfillment)}, nil
}

func (d *fulfillmentDomain) MarkInvalidAddress(
	ctx context.Context, req *model.MarkInvalidAddressRequest,
) (*model.MarkInvalidAddressResponse, error) {
	fulfillment, err := d.transition(ctx, req.FulfillmentID, "invalidate the address of",
		[]entity.PrizeFulfillmentStatus{entity.WinnerNotified},
		entity.AddressInvalid,
		map[string]any{"address_invalid_at": sql.NullTime{Time: time.Now(), Valid: true}},
	)
	if err != nil {
		return nil, err
	}

	return &model.MarkInvalidAddressResponse{Fulfillment: model.ConvertPrizeFulfillment(fulfillment)}, nil
}

func (d *fulfillmentDomain) Ship(
	ctx context.Context, req *model.ShipPrizeRequest,
) (*model.ShipPrizeResponse, error) {
	if req.TrackingNumber == "" || req.Carrier == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a tracking number and a carrier")
	}

	fulfillment, err := d.transition(ctx, req.FulfillmentID, "ship",
		[]entity.PrizeFulfillmentStatus{entity.AddressConfirmed},
		entity.FulfillmentShipped,
		map[string]any{
			"tracking_number": req.TrackingNumber,
			"carrier":         req.Carrier,
			"shipped_at":      sql.NullTime{Time: time.Now(), Valid: true},
		},
	)
	if err != nil {
		return nil, err
	}

	return &model.ShipPrizeResponse{Fulfillment: model.ConvertPrizeFulfillment(fulfillment)}, nil
}

func (d *fulfillmentDomain) Deliver(
	ctx context.Context, req *model.DeliverPrizeRequest,
) (*model.DeliverPrizeResponse, error) {
	prize, err := d.getPrizeOf(ctx, req.FulfillmentID)
	if err != nil {
		return nil, err
	}

	from := []entity.PrizeFulfillmentStatus{entity.FulfillmentShipped}
	if prize.FulfillmentType == entity.DigitalPrize {
		from = []entity.PrizeFulfillmentStatus{entity.WinnerNotified}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	fulfillment, err := d.transition(ctx, req.FulfillmentID, "deliver",
		from, entity.FulfillmentDelivered,
		map[string]any{"delivered_at": sql.NullTime{Time: time.Now(), Valid: true}},
	)
	if err != nil {
		return nil, err
	}

	// Digital prizes denominated in points pay out on delivery.
	if prize.FulfillmentType == entity.DigitalPrize && prize.PointsValue > 0 {
		if _, err := d.ledger.Earn(ctx, fulfillment.UserID, prize.PointsValue); err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeliverPrizeResponse{Fulfillment: model.ConvertPrizeFulfillment(fulfillment)}, nil
}

func (d *fulfillmentDomain) Forfeit(
	ctx context.Context, req *model.ForfeitPrizeRequest,
) (*model.ForfeitPrizeResponse, error) {
	fulfillment, err := d.transition(ctx, req.FulfillmentID, "forfeit",
		[]entity.PrizeFulfillmentStatus{entity.WinnerNotified, entity.AddressConfirmed},
		entity.FulfillmentForfeited,
		map[string]any{"forfeited_at": sql.NullTime{Time: time.Now(), Valid: true}},
	)
	if err != nil {
		return nil, err
	}

	return &model.ForfeitPrizeResponse{Fulfillment: model.ConvertPrizeFulfillment(fulfillment)}, nil
}

func (d *fulfillmentDomain) GetOverdue(
	ctx context.Context, olderThan time.Time,
) ([]entity.PrizeFulfillment, error) {
	fulfillments, err := d.fulfillmentRepo.GetOverdueNotified(ctx, olderThan)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get overdue fulfillments: %v", err)
		return nil, errorx.Unknown
	}

	return fulfillments, nil
}

// transition moves one fulfillment along a declared edge and returns the
// updated record. Any other move is rejected with InvalidTransition.
func (d *fulfillmentDomain) transition(
	ctx context.Context,
	fulfillmentID, action string,
	from []entity.PrizeFulfillmentStatus,
	to entity.PrizeFulfillmentStatus,
	updates map[string]any,
) (*entity.PrizeFulfillment, error) {
	fulfillment, err := d.getFulfillment(ctx, fulfillmentID)
	if err != nil {
		return nil, err
	}

	current := fulfillment.Status
	allowed := false
	for _, status := range from {
		if current == status {
			allowed = true
		}
	}

	if !allowed {
		return nil, errorx.New(errorx.InvalidTransition,
			"Cannot %s fulfillment %s in status %s", action, fulfillmentID, current)
	}

	if err := d.fulfillmentRepo.UpdateStatus(ctx, fulfillmentID, current, to, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidTransition,
				"Cannot %s fulfillment %s in status %s", action, fulfillmentID, current)
		}

		xcontext.Logger(ctx).Errorf("Cannot update fulfillment status: %v", err)
		return nil, errorx.Unknown
	}

	return d.getFulfillment(ctx, fulfillmentID)
}

func (d *fulfillmentDomain) getFulfillment(
	ctx context.Context, fulfillmentID string,
) (*entity.PrizeFulfillment, error) {
	fulfillment, err := d.fulfillmentRepo.GetByID(ctx, fulfillmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found prize fulfillment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get fulfillment: %v", err)
		return nil, errorx.Unknown
	}

	return fulfillment, nil
}

func (d *fulfillmentDomain) getPrizeOf(
	ctx context.Context, fulfillmentID string,
) (*entity.Prize, error) {
	fulfillment, err := d.getFulfillment(ctx, fulfillmentID)
	if err != nil {
		return nil, err
	}

	prize, err := d.prizeRepo.GetByID(ctx, fulfillment.PrizeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prize: %v", err)
		return nil, errorx.Unknown
	}

	return prize, nil
}
