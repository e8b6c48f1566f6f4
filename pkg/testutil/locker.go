package testutil

import "context"

// MockLocker hands the lock to every caller unless Err is set.
type MockLocker struct {
	Err error
}

func (l *MockLocker) WithLock(ctx context.Context, key string, f func(context.Context) error) error {
	if l.Err != nil {
		return l.Err
	}

	return f(ctx)
}
