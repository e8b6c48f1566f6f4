package main

import (
	"github.com/sweatstakes/backend/internal/domain/cron"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()
	s.loadDomains()
	s.loadLocker()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewDrawingEventCronJob(
		s.drawingRepo, s.drawingDomain, s.drawEngine, s.locker))
	cronJobManager.Register(cron.NewFulfillmentReaperCronJob(s.fulfillmentDomain))
	cronJobManager.Start(s.ctx)

	return nil
}
