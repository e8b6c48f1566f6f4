package model

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PointBalance int64  `json:"point_balance"`
}

type PointTransaction struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Amount       int64  `json:"amount"`
	BalanceAfter int64  `json:"balance_after"`
	CreatedAt    string `json:"created_at"`
}

type Drawing struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Status           string  `json:"status"`
	TicketSalesClose string  `json:"ticket_sales_close"`
	DrawingTime      string  `json:"drawing_time"`
	TicketCostPoints int64   `json:"ticket_cost_points"`
	TotalTickets     int     `json:"total_tickets"`
	RandomSeed       string  `json:"random_seed,omitempty"`
	CompletedAt      string  `json:"completed_at,omitempty"`
	Prizes           []Prize `json:"prizes,omitempty"`
}

type Prize struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Rank            int    `json:"rank"`
	Quantity        int    `json:"quantity"`
	FulfillmentType string `json:"fulfillment_type"`
	PointsValue     int64  `json:"points_value"`
}

type Ticket struct {
	ID           string `json:"id"`
	DrawingID    string `json:"drawing_id"`
	UserID       string `json:"user_id"`
	TicketNumber int64  `json:"ticket_number,omitempty"`
	IsWinner     bool   `json:"is_winner"`
	PrizeID      string `json:"prize_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type PrizeFulfillment struct {
	ID              string `json:"id"`
	TicketID        string `json:"ticket_id"`
	PrizeID         string `json:"prize_id"`
	UserID          string `json:"user_id"`
	Status          string `json:"status"`
	ShippingAddress string `json:"shipping_address,omitempty"`
	TrackingNumber  string `json:"tracking_number,omitempty"`
	Carrier         string `json:"carrier,omitempty"`
	NotifiedAt      string `json:"notified_at,omitempty"`
	ShippedAt       string `json:"shipped_at,omitempty"`
	DeliveredAt     string `json:"delivered_at,omitempty"`
}
