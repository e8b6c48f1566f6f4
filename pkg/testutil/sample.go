package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/repository"
)

// SampleUser creates a user with randomized fields. Non-zero fields of init
// overwrite the sample before it is persisted.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	sample := &entity.User{
		Base: entity.Base{ID: uuid.NewString()},
		Name: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleDrawing creates an open daily drawing with a one-hour sales window
// unless init says otherwise.
func SampleDrawing(ctx context.Context, init *entity.Drawing) (entity.Drawing, error) {
	sample := &entity.Drawing{
		Base:             entity.Base{ID: uuid.NewString()},
		Type:             entity.DailyDrawing,
		Status:           entity.DrawingOpen,
		TicketSalesClose: time.Now().Add(time.Hour),
		DrawingTime:      time.Now().Add(2 * time.Hour),
		TicketCostPoints: 100,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewDrawingRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SamplePrize(ctx context.Context, init *entity.Prize) (entity.Prize, error) {
	sample := &entity.Prize{
		Base:            entity.Base{ID: uuid.NewString()},
		Name:            uuid.NewString(),
		Rank:            1,
		Quantity:        1,
		FulfillmentType: entity.PhysicalPrize,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewPrizeRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleTicket(ctx context.Context, init *entity.Ticket) (entity.Ticket, error) {
	sample := &entity.Ticket{
		Base: entity.Base{ID: uuid.NewString()},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewTicketRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SamplePrizeFulfillment(
	ctx context.Context, init *entity.PrizeFulfillment,
) (entity.PrizeFulfillment, error) {
	sample := &entity.PrizeFulfillment{
		Base:   entity.Base{ID: uuid.NewString()},
		Status: entity.FulfillmentPending,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewPrizeFulfillmentRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
