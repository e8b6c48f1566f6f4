package entity

import "database/sql"

type Ticket struct {
	Base

	DrawingID string  `gorm:"uniqueIndex:idx_drawing_ticket_number"`
	Drawing   Drawing `gorm:"foreignKey:DrawingID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	// TicketNumber stays NULL while sales are open and is assigned exactly
	// once at close, densely 1..N in purchase order.
	TicketNumber sql.NullInt64 `gorm:"uniqueIndex:idx_drawing_ticket_number"`

	IsWinner bool
	PrizeID  sql.NullString
}
