package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/sweatstakes/backend/config"
	"github.com/sweatstakes/backend/internal/common"
	"github.com/sweatstakes/backend/internal/domain"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/logger"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"github.com/sweatstakes/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo        repository.UserRepository
	transactionRepo repository.PointTransactionRepository
	drawingRepo     repository.DrawingRepository
	prizeRepo       repository.PrizeRepository
	ticketRepo      repository.TicketRepository
	fulfillmentRepo repository.PrizeFulfillmentRepository

	ledgerDomain      domain.LedgerDomain
	ticketDomain      domain.TicketDomain
	drawingDomain     domain.DrawingDomain
	drawEngine        domain.DrawEngine
	fulfillmentDomain domain.FulfillmentDomain

	locker xredis.Locker
}

func (s *srv) loadContext() {
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, s.loadConfig())
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.INFO))
}

func (s *srv) loadConfig() config.Configs {
	return config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "sweatstakes"),
			Password: getEnv("MYSQL_PASSWORD", "sweatstakes"),
			Database: getEnv("MYSQL_DATABASE", "sweatstakes"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Ledger: config.LedgerConfigs{
			MaxRetries: getIntEnv("LEDGER_MAX_RETRIES", 5),
		},
		Fulfillment: config.FulfillmentConfigs{
			NotifyWindow: getDurationEnv("FULFILLMENT_NOTIFY_WINDOW", 30*24*time.Hour),
		},
	}
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.transactionRepo = repository.NewPointTransactionRepository()
	s.drawingRepo = repository.NewDrawingRepository()
	s.prizeRepo = repository.NewPrizeRepository()
	s.ticketRepo = repository.NewTicketRepository()
	s.fulfillmentRepo = repository.NewPrizeFulfillmentRepository()
}

func (s *srv) loadDomains() {
	s.ledgerDomain = domain.NewLedgerDomain(s.userRepo, s.transactionRepo)
	s.ticketDomain = domain.NewTicketDomain(
		s.ticketRepo, s.drawingRepo, s.ledgerDomain, common.NewAllowAllVerifier())
	s.drawingDomain = domain.NewDrawingDomain(s.drawingRepo, s.prizeRepo, s.ticketDomain)
	s.drawEngine = domain.NewDrawEngine(
		s.drawingRepo, s.ticketRepo, s.prizeRepo, s.fulfillmentRepo, s.drawingDomain)
	s.fulfillmentDomain = domain.NewFulfillmentDomain(
		s.fulfillmentRepo, s.prizeRepo, s.ledgerDomain)
}

func (s *srv) loadLocker() {
	locker, err := xredis.NewLocker(s.ctx)
	if err != nil {
		panic(err)
	}

	s.locker = locker
}

func getEnv(key, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return def
}

func getIntEnv(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}

	return n
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}

	return d
}
