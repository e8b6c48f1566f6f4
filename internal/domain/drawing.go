package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/model"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/enum"
	"github.com/sweatstakes/backend/pkg/errorx"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// DrawingDomain owns the drawing lifecycle:
// draft -> scheduled -> open -> closed -> completed, with cancel reachable
// from every non-terminal state and delete legal only for drafts.
type DrawingDomain interface {
	Create(ctx context.Context, req *model.CreateDrawingRequest) (*model.CreateDrawingResponse, error)
	Get(ctx context.Context, req *model.GetDrawingRequest) (*model.GetDrawingResponse, error)
	Schedule(ctx context.Context, drawingID string) error
	Open(ctx context.Context, drawingID string) error
	Close(ctx context.Context, drawingID string) error
	Complete(ctx context.Context, drawingID, seed string, totalTickets int) error
	Cancel(ctx context.Context, drawingID string) error
	Delete(ctx context.Context, drawingID string) error
}

type drawingDomain struct {
	drawingRepo  repository.DrawingRepository
	prizeRepo    repository.PrizeRepository
	ticketDomain TicketDomain
}

func NewDrawingDomain(
	drawingRepo repository.DrawingRepository,
	prizeRepo repository.PrizeRepository,
	ticketDomain TicketDomain,
) *drawingDomain {
	return &drawingDomain{
		drawingRepo:  drawingRepo,
		prizeRepo:    prizeRepo,
		ticketDomain: ticketDomain,
	}
}

func (d *drawingDomain) Create(
	ctx context.Context, req *model.CreateDrawingRequest,
) (*model.CreateDrawingResponse, error) {
	drawingType, err := enum.ToEnum[entity.DrawingType](req.Type)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid drawing type: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid drawing type %s", req.Type)
	}

	if !req.TicketSalesClose.Before(req.DrawingTime) {
		return nil, errorx.New(errorx.BadRequest,
			"Ticket sales must close before the drawing time")
	}

	if req.TicketCostPoints < 0 {
		return nil, errorx.New(errorx.BadRequest, "Ticket cost must not be negative")
	}

	for i, prize := range req.Prizes {
		if prize.Quantity <= 0 {
			return nil, errorx.New(errorx.BadRequest,
				"Quantity of prize %d must be a positive number", i+1)
		}

		if _, err := enum.ToEnum[entity.PrizeFulfillmentType](prize.FulfillmentType); err != nil {
			return nil, errorx.New(errorx.BadRequest,
				"Invalid fulfillment type %s of prize %d", prize.FulfillmentType, i+1)
		}
	}

	drawing := &entity.Drawing{
		Base:             entity.Base{ID: uuid.NewString()},
		Type:             drawingType,
		Status:           entity.DrawingDraft,
		TicketSalesClose: req.TicketSalesClose,
		DrawingTime:      req.DrawingTime,
		TicketCostPoints: req.TicketCostPoints,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.drawingRepo.Create(ctx, drawing); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create drawing: %v", err)
		return nil, errorx.Unknown
	}

	for _, prize := range req.Prizes {
		fulfillmentType, _ := enum.ToEnum[entity.PrizeFulfillmentType](prize.FulfillmentType)
		err := d.prizeRepo.Create(ctx, &entity.Prize{
			Base:            entity.Base{ID: uuid.NewString()},
			DrawingID:       drawing.ID,
			Name:            prize.Name,
			Rank:            prize.Rank,
			Quantity:        prize.Quantity,
			FulfillmentType: fulfillmentType,
			PointsValue:     prize.PointsValue,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create prize: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateDrawingResponse{ID: drawing.ID}, nil
}

func (d *drawingDomain) Get(
	ctx context.Context, req *model.GetDrawingRequest,
) (*model.GetDrawingResponse, error) {
	drawing, err := d.drawingRepo.GetByID(ctx, req.DrawingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found drawing")
		}

		xcontext.Logger(ctx).Errorf("Cannot get drawing: %v", err)
		return nil, errorx.Unknown
	}

	prizes, err := d.prizeRepo.GetListByDrawingID(ctx, drawing.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prizes: %v", err)
		return nil, errorx.Unknown
	}

	clientPrizes := []model.Prize{}
	for i := range prizes {
		clientPrizes = append(clientPrizes, model.ConvertPrize(&prizes[i]))
	}

	return &model.GetDrawingResponse{Drawing: model.ConvertDrawing(drawing, clientPrizes)}, nil
}

func (d *drawingDomain) Schedule(ctx context.Context, drawingID string) error {
	return d.transition(ctx, drawingID, entity.DrawingDraft, entity.DrawingScheduled)
}

func (d *drawingDomain) Open(ctx context.Context, drawingID string) error {
	drawing, err := d.getDrawing(ctx, drawingID)
	if err != nil {
		return err
	}

	if !time.Now().Before(drawing.TicketSalesClose) {
		return errorx.New(errorx.InvalidTransition,
			"Cannot open drawing %s after its sales close", drawingID)
	}

	return d.transition(ctx, drawingID, entity.DrawingScheduled, entity.DrawingOpen)
}

// Close ends ticket sales and numbers the sold tickets. It is idempotent for
// already-closed (or completed) drawings because the scheduler may fire more
// than once for the same drawing.
func (d *drawingDomain) Close(ctx context.Context, drawingID string) error {
	drawing, err := d.getDrawing(ctx, drawingID)
	if err != nil {
		return err
	}

	if drawing.Status == entity.DrawingClosed || drawing.Status == entity.DrawingCompleted {
		return nil
	}

	if drawing.Status != entity.DrawingOpen {
		return errorx.New(errorx.InvalidTransition,
			"Cannot close drawing %s in status %s", drawingID, drawing.Status)
	}

	if time.Now().Before(drawing.TicketSalesClose) {
		return errorx.New(errorx.InvalidTransition,
			"Cannot close drawing %s before its sales close", drawingID)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := d.ticketDomain.AssignNumbers(ctx, drawing); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot assign ticket numbers: %v", err)
		return errorx.Unknown
	}

	if err := d.drawingRepo.UpdateStatus(ctx, drawingID, entity.DrawingOpen, entity.DrawingClosed); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update drawing status: %v", err)
		return errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return nil
}

// Complete finalizes a closed, due drawing. A guard miss here is a programmer
// error in the draw engine, not a user-facing condition.
func (d *drawingDomain) Complete(ctx context.Context, drawingID, seed string, totalTickets int) error {
	drawing, err := d.getDrawing(ctx, drawingID)
	if err != nil {
		return err
	}

	if drawing.Status != entity.DrawingClosed {
		return fmt.Errorf("complete drawing %s in status %s", drawingID, drawing.Status)
	}

	if time.Now().Before(drawing.DrawingTime) {
		return fmt.Errorf("complete drawing %s before its drawing time", drawingID)
	}

	err = d.drawingRepo.SetCompleted(ctx, drawingID, seed, totalTickets, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("drawing %s was completed concurrently", drawingID)
		}

		return err
	}

	return nil
}

func (d *drawingDomain) Cancel(ctx context.Context, drawingID string) error {
	drawing, err := d.getDrawing(ctx, drawingID)
	if err != nil {
		return err
	}

	// Cancelling twice is a no-op, like re-closing a closed drawing.
	if drawing.Status == entity.DrawingCancelled {
		return nil
	}

	if drawing.Status == entity.DrawingCompleted {
		return errorx.New(errorx.InvalidTransition,
			"Cannot cancel drawing %s in status %s", drawingID, drawing.Status)
	}

	if err := d.drawingRepo.Cancel(ctx, drawingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.InvalidTransition,
				"Cannot cancel drawing %s in status %s", drawingID, drawing.Status)
		}

		xcontext.Logger(ctx).Errorf("Cannot cancel drawing: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *drawingDomain) Delete(ctx context.Context, drawingID string) error {
	if err := d.drawingRepo.DeleteDraft(ctx, drawingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.InvalidTransition,
				"Only draft drawings can be deleted")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete drawing: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *drawingDomain) getDrawing(ctx context.Context, drawingID string) (*entity.Drawing, error) {
	drawing, err := d.drawingRepo.GetByID(ctx, drawingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found drawing")
		}

		xcontext.Logger(ctx).Errorf("Cannot get drawing: %v", err)
		return nil, errorx.Unknown
	}

	return drawing, nil
}

func (d *drawingDomain) transition(
	ctx context.Context, drawingID string, from, to entity.DrawingStatus,
) error {
	err := d.drawingRepo.UpdateStatus(ctx, drawingID, from, to)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.InvalidTransition,
				"Drawing %s is not in status %s", drawingID, from)
		}

		xcontext.Logger(ctx).Errorf("Cannot update drawing status: %v", err)
		return errorx.Unknown
	}

	return nil
}
