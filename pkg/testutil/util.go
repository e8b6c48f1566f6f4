package testutil

import (
	"context"
	"time"

	"github.com/sweatstakes/backend/config"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/pkg/logger"
	"github.com/sweatstakes/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		Ledger: config.LedgerConfigs{
			MaxRetries: 5,
		},
		Fulfillment: config.FulfillmentConfigs{
			NotifyWindow: 30 * 24 * time.Hour,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = MockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
