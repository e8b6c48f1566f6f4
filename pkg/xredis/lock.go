package xredis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/sweatstakes/backend/pkg/xcontext"
)

// ErrLockNotObtained is returned by WithLock when another holder owns the key.
var ErrLockNotObtained = errors.New("lock not obtained")

type Locker interface {
	// WithLock runs f while holding an advisory lock on key. If the lock is
	// held elsewhere it returns ErrLockNotObtained without running f.
	WithLock(ctx context.Context, key string, f func(context.Context) error) error
}

type locker struct {
	rs *redsync.Redsync
}

func NewLocker(ctx context.Context) (*locker, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &locker{rs: redsync.New(goredis.NewPool(redisClient))}, nil
}

func (l *locker) WithLock(ctx context.Context, key string, f func(context.Context) error) error {
	mutex := l.rs.NewMutex("lock:"+key,
		redsync.WithExpiry(time.Minute),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		if errors.Is(err, redsync.ErrFailed) {
			return ErrLockNotObtained
		}

		return err
	}

	defer mutex.UnlockContext(ctx)
	return f(ctx)
}
