package payment

import (
	"encoding/json"
	"errors"
)

// EventKind is a gateway webhook event type.
type EventKind string

const (
	CheckoutSessionCompleted   EventKind = "checkout.session.completed"
	PaymentIntentSucceeded     EventKind = "payment_intent.succeeded"
	PaymentIntentPaymentFailed EventKind = "payment_intent.payment_failed"
	ChargeRefunded             EventKind = "charge.refunded"
	InvoicePaymentSucceeded    EventKind = "invoice.payment_succeeded"
	InvoicePaymentFailed       EventKind = "invoice.payment_failed"
)

// KnownKinds lists every kind the webhook dispatch table must handle.
var KnownKinds = []EventKind{
	CheckoutSessionCompleted,
	PaymentIntentSucceeded,
	PaymentIntentPaymentFailed,
	ChargeRefunded,
	InvoicePaymentSucceeded,
	InvoicePaymentFailed,
}

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Event is a verified webhook event; Object holds the raw data.object payload.
type Event struct {
	ID     string
	Kind   EventKind
	Object json.RawMessage
}

// SessionCompleted is the part of a checkout session the webhook needs.
type SessionCompleted struct {
	SessionID       string
	PaymentIntentID string
	Metadata        map[string]string
}

// MetadataBookingID is the metadata key correlating gateway objects to bookings.
const MetadataBookingID = "bookingId"
