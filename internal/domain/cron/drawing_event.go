package cron

import (
	"context"
	"errors"
	"time"

	"github.com/sweatstakes/backend/internal/domain"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"github.com/sweatstakes/backend/pkg/xredis"
	"golang.org/x/sync/errgroup"
)

// DrawingEventCronJob closes drawings whose sales window has ended and
// executes drawings whose scheduled time has arrived. Each drawing is
// processed under an advisory lock so multiple scheduler instances can run
// side by side without racing on the same drawing.
type DrawingEventCronJob struct {
	drawingRepo   repository.DrawingRepository
	drawingDomain domain.DrawingDomain
	drawEngine    domain.DrawEngine
	locker        xredis.Locker
}

func NewDrawingEventCronJob(
	drawingRepo repository.DrawingRepository,
	drawingDomain domain.DrawingDomain,
	drawEngine domain.DrawEngine,
	locker xredis.Locker,
) *DrawingEventCronJob {
	return &DrawingEventCronJob{
		drawingRepo:   drawingRepo,
		drawingDomain: drawingDomain,
		drawEngine:    drawEngine,
		locker:        locker,
	}
}

func (job *DrawingEventCronJob) Do(ctx context.Context) {
	// CLOSE SALES.
	dueForClose, err := job.drawingRepo.GetDueForClose(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get due-for-close drawings: %v", err)
		return
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, drawing := range dueForClose {
		drawing := drawing
		eg.Go(func() error {
			job.withDrawingLock(egCtx, "close", drawing, func(ctx context.Context) error {
				return job.drawingDomain.Close(ctx, drawing.ID)
			})
			return nil
		})
	}
	_ = eg.Wait()

	// EXECUTE DRAWS.
	dueForExecution, err := job.drawingRepo.GetDueForExecution(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get due-for-execution drawings: %v", err)
		return
	}

	eg, egCtx = errgroup.WithContext(ctx)
	for _, drawing := range dueForExecution {
		drawing := drawing
		eg.Go(func() error {
			job.withDrawingLock(egCtx, "execute", drawing, func(ctx context.Context) error {
				return job.drawEngine.Execute(ctx, drawing.ID)
			})
			return nil
		})
	}
	_ = eg.Wait()
}

func (job *DrawingEventCronJob) withDrawingLock(
	ctx context.Context, action string, drawing entity.Drawing, f func(context.Context) error,
) {
	err := job.locker.WithLock(ctx, "drawing:"+action+":"+drawing.ID, f)
	if err != nil {
		if errors.Is(err, xredis.ErrLockNotObtained) {
			// Another instance owns this drawing for now.
			return
		}

		xcontext.Logger(ctx).Errorf("Cannot %s drawing %s: %v", action, drawing.ID, err)
		return
	}

	xcontext.Logger(ctx).Infof("Drawing %s %s successfully", drawing.ID, action)
}

func (job *DrawingEventCronJob) RunNow() bool {
	return true
}

func (job *DrawingEventCronJob) Next() time.Time {
	return time.Now().Add(time.Minute).Truncate(time.Minute)
}
