package entity

import (
	"database/sql"
	"time"

	"github.com/sweatstakes/backend/pkg/enum"
)

type DrawingType string

var (
	DailyDrawing  = enum.New(DrawingType("daily"))
	WeeklyDrawing = enum.New(DrawingType("weekly"))
	GrandDrawing  = enum.New(DrawingType("grand"))
)

type DrawingStatus string

var (
	DrawingDraft     = enum.New(DrawingStatus("draft"))
	DrawingScheduled = enum.New(DrawingStatus("scheduled"))
	DrawingOpen      = enum.New(DrawingStatus("open"))
	DrawingClosed    = enum.New(DrawingStatus("closed"))
	DrawingCompleted = enum.New(DrawingStatus("completed"))
	DrawingCancelled = enum.New(DrawingStatus("cancelled"))
)

type Drawing struct {
	Base

	Type   DrawingType
	Status DrawingStatus

	// TicketSalesClose is always strictly before DrawingTime.
	TicketSalesClose time.Time
	DrawingTime      time.Time

	TicketCostPoints int64

	// TotalTickets and RandomSeed are written exactly once, when the drawing
	// completes. The seed plus the numbered ticket list replays the draw.
	TotalTickets int
	RandomSeed   string
	CompletedAt  sql.NullTime
}
