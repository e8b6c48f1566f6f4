package model

type BuyTicketRequest struct {
	DrawingID string `json:"drawing_id"`
}

type BuyTicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type GetMyTicketsRequest struct {
	DrawingID string `json:"drawing_id"`
}

type GetMyTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}
