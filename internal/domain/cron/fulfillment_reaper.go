package cron

import (
	"context"
	"time"

	"github.com/sweatstakes/backend/internal/domain"
	"github.com/sweatstakes/backend/internal/model"
	"github.com/sweatstakes/backend/pkg/xcontext"
)

// FulfillmentReaperCronJob forfeits prizes whose winners never confirmed an
// address within the notify window.
type FulfillmentReaperCronJob struct {
	fulfillmentDomain domain.FulfillmentDomain
}

func NewFulfillmentReaperCronJob(fulfillmentDomain domain.FulfillmentDomain) *FulfillmentReaperCronJob {
	return &FulfillmentReaperCronJob{fulfillmentDomain: fulfillmentDomain}
}

func (job *FulfillmentReaperCronJob) Do(ctx context.Context) {
	window := xcontext.Configs(ctx).Fulfillment.NotifyWindow
	overdue, err := job.fulfillmentDomain.GetOverdue(ctx, time.Now().Add(-window))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get overdue fulfillments: %v", err)
		return
	}

	for _, fulfillment := range overdue {
		_, err := job.fulfillmentDomain.Forfeit(ctx,
			&model.ForfeitPrizeRequest{FulfillmentID: fulfillment.ID})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot forfeit fulfillment %s: %v", fulfillment.ID, err)
			continue
		}

		xcontext.Logger(ctx).Infof("Forfeited overdue fulfillment %s", fulfillment.ID)
	}
}

func (job *FulfillmentReaperCronJob) RunNow() bool {
	return false
}

func (job *FulfillmentReaperCronJob) Next() time.Time {
	return time.Now().Add(time.Hour).Truncate(time.Hour)
}
