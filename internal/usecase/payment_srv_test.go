package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fairway-booking/internal/data/entity"
	"fairway-booking/internal/data/repository"
	"fairway-booking/pkg/events"
	"fairway-booking/pkg/payment"
	"fairway-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSignature = "t=1716200000,v1=5257a869e7ecebeda32affa62cdca3fa51cad7e77a0e56ff536d0ce8e108d8bd"

type paymentFixture struct {
	svc      *paymentService
	bookings *memBookings
	verifier *mockVerifier
	events   *recorder
}

func newPaymentFixture(t *testing.T, secret string, seed ...*entity.Booking) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		bookings: newMemBookings(seed...),
		verifier: &mockVerifier{},
		events:   &recorder{},
	}
	cfg := &utils.Config{Stripe: utils.StripeConfig{WebhookSecret: secret}}
	repo := &repository.Repository{Booking: f.bookings}

	f.svc = NewPaymentService(repo, f.verifier, f.events, cfg, zap.NewNop()).(*paymentService)
	f.svc.now = fixedClock(testNow)
	return f
}

// deliver makes the verifier accept the next delivery as ev.
func (f *paymentFixture) deliver(t *testing.T, ev payment.Event) error {
	t.Helper()
	f.verifier.On("Verify", mock.Anything, testSignature).Return(ev, nil).Once()

	ack, err := f.svc.HandleWebhook(context.Background(), []byte(`{"id":"`+ev.ID+`"}`), testSignature)
	if err == nil {
		assert.True(t, ack.Received)
	}
	return err
}

func sessionEvent(bookingID, sessionID, intentID string) payment.Event {
	return payment.Event{
		ID:   "evt_" + sessionID,
		Kind: payment.CheckoutSessionCompleted,
		Object: []byte(fmt.Sprintf(
			`{"id":%q,"object":"checkout.session","payment_intent":%q,"metadata":{"bookingId":%q}}`,
			sessionID, intentID, bookingID)),
	}
}

func intentEvent(kind payment.EventKind, intentID string) payment.Event {
	return payment.Event{
		ID:     "evt_" + intentID,
		Kind:   kind,
		Object: []byte(fmt.Sprintf(`{"id":%q,"object":"payment_intent"}`, intentID)),
	}
}

func refundEvent(intentID string) payment.Event {
	return payment.Event{
		ID:     "evt_refund",
		Kind:   payment.ChargeRefunded,
		Object: []byte(fmt.Sprintf(`{"id":"ch_1","object":"charge","payment_intent":%q}`, intentID)),
	}
}

func TestPaymentService_DispatchTableCoversKnownKinds(t *testing.T) {
	f := newPaymentFixture(t, "whsec_test")

	for _, kind := range payment.KnownKinds {
		assert.Contains(t, f.svc.handlers, kind, "no handler for %s", kind)
	}
	assert.Len(t, f.svc.handlers, len(payment.KnownKinds))
}

func TestPaymentService_CheckoutCompletedIsIdempotent(t *testing.T) {
	b := seedBooking(customer().UserID, entity.BookingStatusPending, testNow)
	b.StripePaymentIntentID = nil
	f := newPaymentFixture(t, "whsec_test", b)

	ev := sessionEvent(b.ID.String(), "cs_1", "pi_1")
	for i := 0; i < 3; i++ {
		require.NoError(t, f.deliver(t, ev))

		stored := f.bookings.get(b.ID)
		assert.Equal(t, entity.BookingStatusPaid, stored.Status)
		assert.Equal(t, "cs_1", *stored.StripeSessionID)
		assert.Equal(t, "pi_1", *stored.StripePaymentIntentID)
	}
}

func TestPaymentService_IntentEvents(t *testing.T) {
	tests := []struct {
		name  string
		from  entity.BookingStatus
		event func(intentID string) payment.Event
		want  entity.BookingStatus
		emits events.Type
	}{
		{
			name:  "succeeded marks paid",
			from:  entity.BookingStatusPending,
			event: func(id string) payment.Event { return intentEvent(payment.PaymentIntentSucceeded, id) },
			want:  entity.BookingStatusPaid,
			emits: events.BookingPaid,
		},
		{
			name:  "failure reverts paid to pending",
			from:  entity.BookingStatusPaid,
			event: func(id string) payment.Event { return intentEvent(payment.PaymentIntentPaymentFailed, id) },
			want:  entity.BookingStatusPending,
			emits: events.BookingPaymentFailed,
		},
		{
			name:  "refund cancels",
			from:  entity.BookingStatusPaid,
			event: refundEvent,
			want:  entity.BookingStatusCancelled,
			emits: events.BookingCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := seedBooking(customer().UserID, tt.from, testNow)
			f := newPaymentFixture(t, "whsec_test", b)

			require.NoError(t, f.deliver(t, tt.event(*b.StripePaymentIntentID)))
			assert.Equal(t, tt.want, f.bookings.get(b.ID).Status)
			assert.Equal(t, []events.Type{tt.emits}, f.events.types())
		})
	}
}

func TestPaymentService_NoOps(t *testing.T) {
	tests := []struct {
		name string
		ev   payment.Event
	}{
		{"checkout for unknown booking", sessionEvent(uuid.NewString(), "cs_x", "pi_x")},
		{"checkout without booking id", sessionEvent("", "cs_x", "pi_x")},
		{"intent with no booking", intentEvent(payment.PaymentIntentSucceeded, "pi_unknown")},
		{"refund with no intent", payment.Event{ID: "evt_r", Kind: payment.ChargeRefunded, Object: []byte(`{"id":"ch_2","object":"charge"}`)}},
		{"invoice paid", payment.Event{ID: "evt_i", Kind: payment.InvoicePaymentSucceeded, Object: []byte(`{"id":"in_1"}`)}},
		{"invoice failed", payment.Event{ID: "evt_j", Kind: payment.InvoicePaymentFailed, Object: []byte(`{"id":"in_2"}`)}},
		{"unknown kind", payment.Event{ID: "evt_k", Kind: "customer.created", Object: []byte(`{"id":"cus_1"}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := seedBooking(customer().UserID, entity.BookingStatusPending, testNow)
			f := newPaymentFixture(t, "whsec_test", b)

			require.NoError(t, f.deliver(t, tt.ev))
			assert.Equal(t, entity.BookingStatusPending, f.bookings.get(b.ID).Status)
			assert.Zero(t, f.bookings.writes)
			assert.Empty(t, f.events.types())
		})
	}
}

func TestPaymentService_NoOrderingGuard(t *testing.T) {
	b := seedBooking(customer().UserID, entity.BookingStatusPaid, testNow)
	f := newPaymentFixture(t, "whsec_test", b)

	require.NoError(t, f.deliver(t, refundEvent(*b.StripePaymentIntentID)))
	require.NoError(t, f.deliver(t, intentEvent(payment.PaymentIntentSucceeded, *b.StripePaymentIntentID)))

	// a late success resurrects the refunded booking
	assert.Equal(t, entity.BookingStatusPaid, f.bookings.get(b.ID).Status)
}

func TestPaymentService_SignatureHandling(t *testing.T) {
	t.Run("placeholder secret skips verification", func(t *testing.T) {
		f := newPaymentFixture(t, "whsec_placeholder")

		ack, err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), testSignature)
		require.NoError(t, err)
		assert.True(t, ack.Received)
		f.verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("missing header skips verification", func(t *testing.T) {
		f := newPaymentFixture(t, "whsec_test")

		ack, err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "")
		require.NoError(t, err)
		assert.True(t, ack.Received)
		f.verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("bad signature", func(t *testing.T) {
		b := seedBooking(customer().UserID, entity.BookingStatusPending, testNow)
		f := newPaymentFixture(t, "whsec_test", b)
		f.verifier.On("Verify", mock.Anything, "t=1,v1=forged").
			Return(payment.Event{}, fmt.Errorf("%w: no matching signature", payment.ErrInvalidSignature)).Once()

		_, err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "t=1,v1=forged")
		require.ErrorIs(t, err, payment.ErrInvalidSignature)
		assert.Zero(t, f.bookings.writes)
	})

	t.Run("malformed object surfaces as failure", func(t *testing.T) {
		f := newPaymentFixture(t, "whsec_test")

		err := f.deliver(t, payment.Event{ID: "evt_bad", Kind: payment.PaymentIntentSucceeded, Object: []byte(`[1,2]`)})
		require.Error(t, err)
		assert.False(t, errors.Is(err, payment.ErrInvalidSignature))
	})
}
