package entity

import (
	"database/sql"

	"github.com/sweatstakes/backend/pkg/enum"
)

type PrizeFulfillmentStatus string

var (
	FulfillmentPending   = enum.New(PrizeFulfillmentStatus("pending"))
	WinnerNotified       = enum.New(PrizeFulfillmentStatus("winner_notified"))
	AddressConfirmed     = enum.New(PrizeFulfillmentStatus("address_confirmed"))
	AddressInvalid       = enum.New(PrizeFulfillmentStatus("address_invalid"))
	FulfillmentShipped   = enum.New(PrizeFulfillmentStatus("shipped"))
	FulfillmentDelivered = enum.New(PrizeFulfillmentStatus("delivered"))
	FulfillmentForfeited = enum.New(PrizeFulfillmentStatus("forfeited"))
)

type PrizeFulfillment struct {
	Base

	TicketID string `gorm:"uniqueIndex"`
	Ticket   Ticket `gorm:"foreignKey:TicketID"`

	PrizeID string
	Prize   Prize `gorm:"foreignKey:PrizeID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Status PrizeFulfillmentStatus

	ShippingAddress string
	TrackingNumber  string
	Carrier         string

	NotifiedAt         sql.NullTime
	AddressConfirmedAt sql.NullTime
	AddressInvalidAt   sql.NullTime
	ShippedAt          sql.NullTime
	DeliveredAt        sql.NullTime
	ForfeitedAt        sql.NullTime
}
