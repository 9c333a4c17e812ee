package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testSecret = "whsec_test_secret"

const sessionPayload = `{
  "id": "evt_1",
  "object": "event",
  "api_version": "2020-08-27",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": "cs_test_123",
      "object": "checkout.session",
      "payment_intent": "pi_456",
      "metadata": {"bookingId": "b-1", "userId": "u-1"}
    }
  }
}`

func sign(payload string, secret string, at time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: at,
	}).Header
}

func TestStripeVerifier_Verify(t *testing.T) {
	v := NewStripeVerifier(testSecret)

	ev, err := v.Verify([]byte(sessionPayload), sign(sessionPayload, testSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, CheckoutSessionCompleted, ev.Kind)

	s, err := DecodeSession(ev.Object)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", s.SessionID)
	assert.Equal(t, "pi_456", s.PaymentIntentID)
	assert.Equal(t, "b-1", s.Metadata[MetadataBookingID])
}

func TestStripeVerifier_Rejects(t *testing.T) {
	v := NewStripeVerifier(testSecret)

	tests := []struct {
		name   string
		header string
	}{
		{"wrong secret", sign(sessionPayload, "whsec_other", time.Now())},
		{"stale timestamp", sign(sessionPayload, testSecret, time.Now().Add(-time.Hour))},
		{"garbage header", "not-a-signature"},
		{"empty header", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify([]byte(sessionPayload), tt.header)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestDecodeChargePaymentIntentID(t *testing.T) {
	id, err := DecodeChargePaymentIntentID([]byte(`{"id":"ch_1","object":"charge","payment_intent":"pi_9"}`))
	require.NoError(t, err)
	assert.Equal(t, "pi_9", id)

	id, err = DecodeChargePaymentIntentID([]byte(`{"id":"ch_2","object":"charge"}`))
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestDecodePaymentIntentID(t *testing.T) {
	id, err := DecodePaymentIntentID([]byte(`{"id":"pi_7","object":"payment_intent","status":"succeeded"}`))
	require.NoError(t, err)
	assert.Equal(t, "pi_7", id)
}

func TestRedirectURLs(t *testing.T) {
	assert.Equal(t,
		"https://fairway.lk/booking/success?session_id={CHECKOUT_SESSION_ID}&booking_id=abc",
		SuccessURL("https://fairway.lk/", "abc"))
	assert.Equal(t,
		"https://fairway.lk/booking/cancel?booking_id=abc",
		CancelURL("https://fairway.lk", "abc"))
}
