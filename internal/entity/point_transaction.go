package entity

import (
	"time"

	"github.com/sweatstakes/backend/pkg/enum"
)

type PointTransactionType string

var (
	PointEarn   = enum.New(PointTransactionType("earn"))
	PointSpend  = enum.New(PointTransactionType("spend"))
	PointAdjust = enum.New(PointTransactionType("adjust"))
	PointExpire = enum.New(PointTransactionType("expire"))
)

// PointTransaction is append-only. Rows are created once and never updated or
// deleted; the repository exposes no mutation path.
type PointTransaction struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Type         PointTransactionType
	Amount       int64
	BalanceAfter int64
}
