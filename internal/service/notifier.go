package service

import (
	"context"

	"docslot/internal/domain"
)

// Notifier delivers booking events to interested parties. Publish must not
// fail the operation that triggered it; implementations log their own
// delivery errors.
type Notifier interface {
	Publish(ctx context.Context, event domain.BookingEvent)
}

type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, domain.BookingEvent) {}
