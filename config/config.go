package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database    DatabaseConfigs
	Redis       RedisConfigs
	Ledger      LedgerConfigs
	Fulfillment FulfillmentConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type LedgerConfigs struct {
	// MaxRetries bounds the optimistic-lock retry loop on balance updates.
	MaxRetries int
}

type FulfillmentConfigs struct {
	// NotifyWindow is how long a winner stays in winner_notified before the
	// reaper may forfeit the prize.
	NotifyWindow time.Duration
}
