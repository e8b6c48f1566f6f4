package model

import "time"

type CreateDrawingPrize struct {
	Name            string `json:"name"`
	Rank            int    `json:"rank"`
	Quantity        int    `json:"quantity"`
	FulfillmentType string `json:"fulfillment_type"`
	PointsValue     int64  `json:"points_value"`
}

type CreateDrawingRequest struct {
	Type             string               `json:"type"`
	TicketSalesClose time.Time            `json:"ticket_sales_close"`
	DrawingTime      time.Time            `json:"drawing_time"`
	TicketCostPoints int64                `json:"ticket_cost_points"`
	Prizes           []CreateDrawingPrize `json:"prizes"`
}

type CreateDrawingResponse struct {
	ID string `json:"id"`
}

type GetDrawingRequest struct {
	DrawingID string `json:"drawing_id"`
}

type GetDrawingResponse struct {
	Drawing Drawing `json:"drawing"`
}
