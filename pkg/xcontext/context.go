package xcontext

import (
	"context"

	"github.com/sweatstakes/backend/config"
	"github.com/sweatstakes/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	dbTransactionKey struct{}
	userIDKey        struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.SILENCE)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. Inside a transaction scope opened by
// WithDBTransaction, it returns the transaction instead of the root handle.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(dbTransactionKey{}).(*txHolder); ok && !holder.done {
		return holder.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

type txHolder struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a database transaction and returns a context whose
// DB() resolves to it. The caller must end the scope with
// WithCommitDBTransaction or WithRollbackDBTransaction; the rollback variant
// is a no-op after a commit, so it is safe to defer unconditionally.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTransactionKey{}, &txHolder{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(dbTransactionKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Commit()
		holder.done = true
	}

	return ctx
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(dbTransactionKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Rollback()
		holder.done = true
	}

	return ctx
}

// InDBTransaction reports whether ctx is inside an open transaction scope.
// Components that must be atomic on their own but joinable by a caller's
// transaction (the point ledger) use this to decide ownership.
func InDBTransaction(ctx context.Context) bool {
	holder, ok := ctx.Value(dbTransactionKey{}).(*txHolder)
	return ok && !holder.done
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}
