package entity

import (
	"context"

	"github.com/sweatstakes/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&PointTransaction{},
		&Drawing{},
		&Ticket{},
		&Prize{},
		&PrizeFulfillment{},
	)
}
