package model

import (
	"database/sql"
	"time"

	"github.com/sweatstakes/backend/internal/entity"
)

// All persisted timestamps render as UTC ISO-8601 with a trailing Z.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return formatTime(t.Time)
}

func ConvertPointTransaction(transaction *entity.PointTransaction) PointTransaction {
	if transaction == nil {
		return PointTransaction{}
	}

	return PointTransaction{
		ID:           transaction.ID,
		Type:         string(transaction.Type),
		Amount:       transaction.Amount,
		BalanceAfter: transaction.BalanceAfter,
		CreatedAt:    formatTime(transaction.CreatedAt),
	}
}

func ConvertDrawing(drawing *entity.Drawing, prizes []Prize) Drawing {
	if drawing == nil {
		return Drawing{}
	}

	return Drawing{
		ID:               drawing.ID,
		Type:             string(drawing.Type),
		Status:           string(drawing.Status),
		TicketSalesClose: formatTime(drawing.TicketSalesClose),
		DrawingTime:      formatTime(drawing.DrawingTime),
		TicketCostPoints: drawing.TicketCostPoints,
		TotalTickets:     drawing.TotalTickets,
		RandomSeed:       drawing.RandomSeed,
		CompletedAt:      formatNullTime(drawing.CompletedAt),
		Prizes:           prizes,
	}
}

func ConvertPrize(prize *entity.Prize) Prize {
	if prize == nil {
		return Prize{}
	}

	return Prize{
		ID:              prize.ID,
		Name:            prize.Name,
		Rank:            prize.Rank,
		Quantity:        prize.Quantity,
		FulfillmentType: string(prize.FulfillmentType),
		PointsValue:     prize.PointsValue,
	}
}

func ConvertTicket(ticket *entity.Ticket) Ticket {
	if ticket == nil {
		return Ticket{}
	}

	result := Ticket{
		ID:        ticket.ID,
		DrawingID: ticket.DrawingID,
		UserID:    ticket.UserID,
		IsWinner:  ticket.IsWinner,
		CreatedAt: formatTime(ticket.CreatedAt),
	}

	if ticket.TicketNumber.Valid {
		result.TicketNumber = ticket.TicketNumber.Int64
	}

	if ticket.PrizeID.Valid {
		result.PrizeID = ticket.PrizeID.String
	}

	return result
}

func ConvertPrizeFulfillment(fulfillment *entity.PrizeFulfillment) PrizeFulfillment {
	if fulfillment == nil {
		return PrizeFulfillment{}
	}

	return PrizeFulfillment{
		ID:              fulfillment.ID,
		TicketID:        fulfillment.TicketID,
		PrizeID:         fulfillment.PrizeID,
		UserID:          fulfillment.UserID,
		Status:          string(fulfillment.Status),
		ShippingAddress: fulfillment.ShippingAddress,
		TrackingNumber:  fulfillment.TrackingNumber,
		Carrier:         fulfillment.Carrier,
		NotifiedAt:      formatNullTime(fulfillment.NotifiedAt),
		ShippedAt:       formatNullTime(fulfillment.ShippedAt),
		DeliveredAt:     formatNullTime(fulfillment.DeliveredAt),
	}
}
