package usecase

import (
	"context"
	"time"

	"fairway-booking/internal/data/entity"
	"fairway-booking/pkg/events"

	"go.uber.org/zap"
)

// publishBookingEvent is best-effort; a broker failure is logged only.
func publishBookingEvent(ctx context.Context, pub events.Publisher, log *zap.Logger, typ events.Type, b *entity.Booking, source string, at time.Time) {
	if pub == nil {
		return
	}

	ev := events.Event{
		Type:       typ,
		BookingID:  b.ID.String(),
		UserID:     b.UserID.String(),
		Status:     string(b.Status),
		Amount:     b.TotalAmount,
		Currency:   b.Currency,
		Source:     source,
		OccurredAt: at.UTC(),
	}

	if err := pub.Publish(ctx, ev); err != nil {
		log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", string(typ)),
			zap.String("booking_id", ev.BookingID))
	}
}
