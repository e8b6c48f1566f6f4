package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/math"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/crypto"
	"github.com/sweatstakes/backend/pkg/errorx"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// DrawEngine selects winners for closed, due drawings. Selection is a pure
// function of the stored seed and the numbered ticket list, so anyone holding
// both can replay the draw and verify the winners.
type DrawEngine interface {
	Execute(ctx context.Context, drawingID string) error
}

type drawEngine struct {
	drawingRepo     repository.DrawingRepository
	ticketRepo      repository.TicketRepository
	prizeRepo       repository.PrizeRepository
	fulfillmentRepo repository.PrizeFulfillmentRepository
	drawingDomain   DrawingDomain
}

func NewDrawEngine(
	drawingRepo repository.DrawingRepository,
	ticketRepo repository.TicketRepository,
	prizeRepo repository.PrizeRepository,
	fulfillmentRepo repository.PrizeFulfillmentRepository,
	drawingDomain DrawingDomain,
) *drawEngine {
	return &drawEngine{
		drawingRepo:     drawingRepo,
		ticketRepo:      ticketRepo,
		prizeRepo:       prizeRepo,
		fulfillmentRepo: fulfillmentRepo,
		drawingDomain:   drawingDomain,
	}
}

func (e *drawEngine) Execute(ctx context.Context, drawingID string) error {
	drawing, err := e.drawingRepo.GetByID(ctx, drawingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found drawing")
		}

		xcontext.Logger(ctx).Errorf("Cannot get drawing: %v", err)
		return errorx.Unknown
	}

	// Winners are drawn exactly once. Re-running a completed drawing would
	// either redraw or double-award, so it is rejected outright.
	if drawing.Status == entity.DrawingCompleted {
		return fmt.Errorf("drawing %s is already completed", drawingID)
	}

	if drawing.Status != entity.DrawingClosed {
		return fmt.Errorf("execute drawing %s in status %s", drawingID, drawing.Status)
	}

	if time.Now().Before(drawing.DrawingTime) {
		return fmt.Errorf("execute drawing %s before its drawing time", drawingID)
	}

	seed, err := crypto.GenerateRandomSeed()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate random seed: %v", err)
		return errorx.Unknown
	}

	tickets, err := e.ticketRepo.GetListByDrawingID(ctx, drawingID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return errorx.Unknown
	}

	prizes, err := e.prizeRepo.GetListByDrawingID(ctx, drawingID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prizes: %v", err)
		return errorx.Unknown
	}

	winners := selectWinners(seed, tickets, prizes)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	for _, winner := range winners {
		if err := e.ticketRepo.MarkWinner(ctx, winner.ticket.ID, winner.prize.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mark winner: %v", err)
			return errorx.Unknown
		}

		err := e.fulfillmentRepo.Create(ctx, &entity.PrizeFulfillment{
			Base:     entity.Base{ID: uuid.NewString()},
			TicketID: winner.ticket.ID,
			PrizeID:  winner.prize.ID,
			UserID:   winner.ticket.UserID,
			Status:   entity.FulfillmentPending,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create prize fulfillment: %v", err)
			return errorx.Unknown
		}
	}

	if err := e.drawingDomain.Complete(ctx, drawingID, seed, len(tickets)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete drawing: %v", err)
		return errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	xcontext.Logger(ctx).Infof("Executed drawing %s with %d tickets and %d winners",
		drawingID, len(tickets), len(winners))
	return nil
}

type drawnWinner struct {
	ticket entity.Ticket
	prize  entity.Prize
}

// selectWinners draws each prize's winners without replacement, rank 1 first,
// via a partial Fisher-Yates over the remaining pool. A prize whose quantity
// exceeds the remaining pool is awarded only as far as the pool allows. The
// result depends only on the seed and the given orderings.
func selectWinners(seed string, tickets []entity.Ticket, prizes []entity.Prize) []drawnWinner {
	rng := crypto.NewSeededRand(seed)

	pool := make([]entity.Ticket, len(tickets))
	copy(pool, tickets)

	winners := []drawnWinner{}
	for _, prize := range prizes {
		count := math.MinInt(prize.Quantity, len(pool))
		for i := 0; i < count; i++ {
			j := rng.Intn(len(pool))
			winners = append(winners, drawnWinner{ticket: pool[j], prize: prize})
			pool[j] = pool[len(pool)-1]
			pool = pool[:len(pool)-1]
		}
	}

	return winners
}
