// Package service holds the use cases. Each exported method is one unit of
// work: it validates its input, runs its writes inside Store.WithinTx and
// reports failures as *domain.Error.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"clicksoft-api/internal/domain"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Store  domain.Store
	Events domain.EventPublisher
	Log    *zap.Logger
	Now    func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Events == nil {
		d.Events = noEvents{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

type noEvents struct{}

func (noEvents) Publish(context.Context, domain.ChangeEvent) error { return nil }

// publish announces a committed change. Delivery failures never fail the
// request that caused them.
func (d Deps) publish(ctx context.Context, event string, id, customerID uint) {
	ev := domain.ChangeEvent{Event: event, ID: id, CustomerID: customerID, At: d.Now().Unix()}
	if err := d.Events.Publish(context.WithoutCancel(ctx), ev); err != nil {
		d.Log.Warn("publish change event", zap.String("event", event), zap.Uint("id", id), zap.Error(err))
	}
}

// internal wraps unexpected failures; *domain.Error values pass through.
func internal(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(op, err)
}
