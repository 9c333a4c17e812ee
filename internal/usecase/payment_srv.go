package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fairway-booking/internal/data/entity"
	"fairway-booking/internal/data/repository"
	"fairway-booking/internal/dto/response"
	"fairway-booking/pkg/events"
	"fairway-booking/pkg/payment"
	"fairway-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebhookVerifier authenticates a raw webhook delivery.
type WebhookVerifier interface {
	Verify(payload []byte, signature string) (payment.Event, error)
}

type PaymentService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*response.WebhookResponse, error)
}

type eventHandler func(ctx context.Context, ev payment.Event) error

type paymentService struct {
	repo     *repository.Repository
	verifier WebhookVerifier
	events   events.Publisher
	secret   string
	log      *zap.Logger
	now      func() time.Time
	handlers map[payment.EventKind]eventHandler
}

func NewPaymentService(
	repo *repository.Repository,
	verifier WebhookVerifier,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) PaymentService {
	s := &paymentService{
		repo:     repo,
		verifier: verifier,
		events:   publisher,
		secret:   config.Stripe.WebhookSecret,
		log:      log.With(zap.String("service", "payment")),
		now:      time.Now,
	}

	s.handlers = map[payment.EventKind]eventHandler{
		payment.CheckoutSessionCompleted:   s.onCheckoutCompleted,
		payment.PaymentIntentSucceeded:     s.onPaymentSucceeded,
		payment.PaymentIntentPaymentFailed: s.onPaymentFailed,
		payment.ChargeRefunded:             s.onChargeRefunded,
		payment.InvoicePaymentSucceeded:    s.onInvoice,
		payment.InvoicePaymentFailed:       s.onInvoice,
	}

	return s
}

// HandleWebhook verifies and dispatches one delivery. Only a bad signature
// or an unexpected failure returns an error; unknown bookings are a no-op.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*response.WebhookResponse, error) {
	if utils.IsPlaceholderSecret(s.secret) || signature == "" {
		s.log.Warn("Webhook signature check skipped",
			zap.Bool("placeholder_secret", utils.IsPlaceholderSecret(s.secret)),
			zap.Bool("signature_present", signature != ""))
		return &response.WebhookResponse{Received: true}, nil
	}

	ev, err := s.verifier.Verify(payload, signature)
	if err != nil {
		s.log.Warn("Webhook signature verification failed", zap.Error(err))
		if !errors.Is(err, payment.ErrInvalidSignature) {
			err = fmt.Errorf("%w: %v", payment.ErrInvalidSignature, err)
		}
		return nil, err
	}

	if err := s.dispatch(ctx, ev); err != nil {
		return nil, err
	}

	return &response.WebhookResponse{Received: true}, nil
}

func (s *paymentService) dispatch(ctx context.Context, ev payment.Event) error {
	handle, ok := s.handlers[ev.Kind]
	if !ok {
		s.log.Info("Unhandled webhook event", zap.String("event_id", ev.ID), zap.String("kind", string(ev.Kind)))
		return nil
	}

	if err := handle(ctx, ev); err != nil {
		s.log.Error("Webhook handler failed",
			zap.Error(err), zap.String("event_id", ev.ID), zap.String("kind", string(ev.Kind)))
		return fmt.Errorf("handle %s: %w", ev.Kind, err)
	}
	return nil
}

func (s *paymentService) onCheckoutCompleted(ctx context.Context, ev payment.Event) error {
	session, err := payment.DecodeSession(ev.Object)
	if err != nil {
		return err
	}

	raw := session.Metadata[payment.MetadataBookingID]
	id, err := uuid.Parse(raw)
	if err != nil {
		s.log.Warn("Checkout session without a booking id",
			zap.String("event_id", ev.ID), zap.String("session_id", session.SessionID))
		return nil
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		s.log.Warn("Checkout completed for unknown booking",
			zap.String("event_id", ev.ID), zap.String("booking_id", raw))
		return nil
	}

	var sessionID, intentID *string
	if session.SessionID != "" {
		sessionID = &session.SessionID
	}
	if session.PaymentIntentID != "" {
		intentID = &session.PaymentIntentID
	}

	if err := s.repo.Booking.MarkPaid(ctx, booking.ID, sessionID, intentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	booking.Status = entity.BookingStatusPaid

	s.log.Info("Booking paid via checkout",
		zap.String("booking_id", booking.ID.String()),
		zap.String("session_id", session.SessionID),
		zap.String("payment_intent_id", session.PaymentIntentID))

	publishBookingEvent(ctx, s.events, s.log, events.BookingPaid, booking, "webhook", s.now())
	return nil
}

func (s *paymentService) onPaymentSucceeded(ctx context.Context, ev payment.Event) error {
	booking, err := s.bookingForIntent(ctx, ev, payment.DecodePaymentIntentID)
	if err != nil || booking == nil {
		return err
	}

	if err := s.setStatus(ctx, booking, entity.BookingStatusPaid); err != nil {
		return err
	}

	publishBookingEvent(ctx, s.events, s.log, events.BookingPaid, booking, "webhook", s.now())
	return nil
}

// onPaymentFailed moves the booking back to PENDING, even from PAID.
func (s *paymentService) onPaymentFailed(ctx context.Context, ev payment.Event) error {
	booking, err := s.bookingForIntent(ctx, ev, payment.DecodePaymentIntentID)
	if err != nil || booking == nil {
		return err
	}

	if booking.Status == entity.BookingStatusPaid {
		s.log.Warn("Payment failure reverts a paid booking to PENDING",
			zap.String("booking_id", booking.ID.String()), zap.String("event_id", ev.ID))
	}

	if err := s.setStatus(ctx, booking, entity.BookingStatusPending); err != nil {
		return err
	}

	publishBookingEvent(ctx, s.events, s.log, events.BookingPaymentFailed, booking, "webhook", s.now())
	return nil
}

func (s *paymentService) onChargeRefunded(ctx context.Context, ev payment.Event) error {
	booking, err := s.bookingForIntent(ctx, ev, payment.DecodeChargePaymentIntentID)
	if err != nil || booking == nil {
		return err
	}

	if err := s.setStatus(ctx, booking, entity.BookingStatusCancelled); err != nil {
		return err
	}

	publishBookingEvent(ctx, s.events, s.log, events.BookingCancelled, booking, "webhook", s.now())
	return nil
}

// Subscription billing is not implemented; invoices are recorded in the log.
func (s *paymentService) onInvoice(_ context.Context, ev payment.Event) error {
	s.log.Info("Invoice event received", zap.String("event_id", ev.ID), zap.String("kind", string(ev.Kind)))
	return nil
}

func (s *paymentService) bookingForIntent(ctx context.Context, ev payment.Event, decode func(json.RawMessage) (string, error)) (*entity.Booking, error) {
	intentID, err := decode(ev.Object)
	if err != nil {
		return nil, err
	}
	if intentID == "" {
		s.log.Warn("Webhook event without a payment intent",
			zap.String("event_id", ev.ID), zap.String("kind", string(ev.Kind)))
		return nil, nil
	}

	booking, err := s.repo.Booking.FindByPaymentIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		s.log.Warn("No booking for payment intent",
			zap.String("event_id", ev.ID),
			zap.String("kind", string(ev.Kind)),
			zap.String("payment_intent_id", intentID))
		return nil, nil
	}
	return booking, nil
}

func (s *paymentService) setStatus(ctx context.Context, booking *entity.Booking, status entity.BookingStatus) error {
	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	s.log.Info("Booking status updated from webhook",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(status)))

	booking.Status = status
	return nil
}
