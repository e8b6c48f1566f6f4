package entity

import "github.com/sweatstakes/backend/pkg/enum"

type PrizeFulfillmentType string

var (
	DigitalPrize  = enum.New(PrizeFulfillmentType("digital"))
	PhysicalPrize = enum.New(PrizeFulfillmentType("physical"))
)

type Prize struct {
	Base

	DrawingID string
	Drawing   Drawing `gorm:"foreignKey:DrawingID"`

	Name     string
	Rank     int
	Quantity int

	FulfillmentType PrizeFulfillmentType

	// PointsValue is credited back to the winner's ledger when a digital
	// prize is delivered. Zero for physical prizes.
	PointsValue int64
}
