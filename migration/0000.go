package migration

import (
	"context"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/pkg/xcontext"
)

// migrate0000 will create the database with the latest version.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.PointTransaction{},
		&entity.Drawing{},
		&entity.Prize{},
		&entity.Ticket{},
		&entity.PrizeFulfillment{},
	)
}
