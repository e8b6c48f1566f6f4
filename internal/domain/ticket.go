package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sweatstakes/backend/internal/common"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/model"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/errorx"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// TicketDomain sells tickets against open drawings and numbers them at close.
type TicketDomain interface {
	Buy(ctx context.Context, req *model.BuyTicketRequest) (*model.BuyTicketResponse, error)
	GetMine(ctx context.Context, req *model.GetMyTicketsRequest) (*model.GetMyTicketsResponse, error)

	// AssignNumbers numbers a drawing's tickets 1..N in purchase order inside
	// the caller's transaction. It must run exactly once per drawing; a
	// pre-numbered ticket is a programmer error, not a recoverable case.
	AssignNumbers(ctx context.Context, drawing *entity.Drawing) (int, error)
}

type ticketDomain struct {
	ticketRepo  repository.TicketRepository
	drawingRepo repository.DrawingRepository
	ledger      LedgerDomain
	eligibility common.EligibilityVerifier
}

func NewTicketDomain(
	ticketRepo repository.TicketRepository,
	drawingRepo repository.DrawingRepository,
	ledger LedgerDomain,
	eligibility common.EligibilityVerifier,
) *ticketDomain {
	return &ticketDomain{
		ticketRepo:  ticketRepo,
		drawingRepo: drawingRepo,
		ledger:      ledger,
		eligibility: eligibility,
	}
}

func (d *ticketDomain) Buy(
	ctx context.Context, req *model.BuyTicketRequest,
) (*model.BuyTicketResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	drawing, err := d.drawingRepo.GetByID(ctx, req.DrawingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found drawing")
		}

		xcontext.Logger(ctx).Errorf("Cannot get drawing: %v", err)
		return nil, errorx.Unknown
	}

	if drawing.Status != entity.DrawingOpen || !time.Now().Before(drawing.TicketSalesClose) {
		return nil, errorx.New(errorx.DrawingClosed,
			"Drawing %s is not selling tickets", req.DrawingID)
	}

	if err := d.eligibility.Verify(ctx, userID); err != nil {
		xcontext.Logger(ctx).Debugf("Eligibility check failed: %v", err)
		return nil, errorx.New(errorx.IneligibleUser,
			"User %s is not eligible to enter drawing %s", userID, req.DrawingID)
	}

	// The spend and the ticket must commit as one unit. A failed spend leaves
	// neither a transaction nor a ticket behind.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Sales can close between the read above and this transaction. Re-read
	// under the transaction so a drawing whose tickets are already numbered
	// cannot gain an unnumbered one.
	drawing, err = d.drawingRepo.GetByID(ctx, req.DrawingID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get drawing: %v", err)
		return nil, errorx.Unknown
	}

	if drawing.Status != entity.DrawingOpen {
		return nil, errorx.New(errorx.DrawingClosed,
			"Drawing %s is not selling tickets", req.DrawingID)
	}

	if drawing.TicketCostPoints > 0 {
		if _, err := d.ledger.Spend(ctx, userID, drawing.TicketCostPoints); err != nil {
			return nil, err
		}
	}

	ticket := &entity.Ticket{
		Base:      entity.Base{ID: uuid.NewString()},
		DrawingID: drawing.ID,
		UserID:    userID,
	}

	if err := d.ticketRepo.Create(ctx, ticket); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create ticket: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.BuyTicketResponse{Ticket: model.ConvertTicket(ticket)}, nil
}

func (d *ticketDomain) GetMine(
	ctx context.Context, req *model.GetMyTicketsRequest,
) (*model.GetMyTicketsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	tickets, err := d.ticketRepo.GetListByUserID(ctx, userID, req.DrawingID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	clientTickets := []model.Ticket{}
	for i := range tickets {
		clientTickets = append(clientTickets, model.ConvertTicket(&tickets[i]))
	}

	return &model.GetMyTicketsResponse{Tickets: clientTickets}, nil
}

func (d *ticketDomain) AssignNumbers(ctx context.Context, drawing *entity.Drawing) (int, error) {
	tickets, err := d.ticketRepo.GetListByDrawingID(ctx, drawing.ID)
	if err != nil {
		return 0, err
	}

	for i := range tickets {
		if tickets[i].TicketNumber.Valid {
			return 0, fmt.Errorf("ticket %s of drawing %s is already numbered",
				tickets[i].ID, drawing.ID)
		}

		if err := d.ticketRepo.AssignNumber(ctx, tickets[i].ID, int64(i+1)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("ticket %s of drawing %s was numbered concurrently",
					tickets[i].ID, drawing.ID)
			}

			return 0, err
		}
	}

	return len(tickets), nil
}
