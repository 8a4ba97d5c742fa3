// Package notify carries booking events from the service layer to the
// websocket hub, directly or through Redis pub/sub when several instances
// serve the same users.
package notify

import (
	"context"

	"go.uber.org/zap"

	"docslot/internal/domain"
)

// Sink receives events for local delivery. Deliver must not block.
type Sink interface {
	Deliver(event domain.BookingEvent)
}

// LocalNotifier hands events straight to the sink of this process.
type LocalNotifier struct {
	sink   Sink
	logger *zap.Logger
}

func NewLocalNotifier(sink Sink, logger *zap.Logger) *LocalNotifier {
	return &LocalNotifier{sink: sink, logger: logger}
}

func (n *LocalNotifier) Publish(_ context.Context, event domain.BookingEvent) {
	n.logger.Debug("локальная доставка события",
		zap.String("type", string(event.Type)),
		zap.Int64("bookingID", event.Booking.ID))
	n.sink.Deliver(event)
}
