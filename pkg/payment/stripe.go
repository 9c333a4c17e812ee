package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

type CheckoutRequest struct {
	BookingID     string
	ItemID        string
	ItemType      string
	UserID        string
	ProductName   string
	Description   string
	CustomerEmail string
	Currency      string
	AmountMinor   int64
	BaseURL       string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type StripeGateway struct {
	sessions session.Client
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		sessions: session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
	}
}

// CreateCheckoutSession opens a hosted payment page for one booking.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	metadata := map[string]string{
		MetadataBookingID: req.BookingID,
		"itemId":          req.ItemID,
		"itemType":        req.ItemType,
		"userId":          req.UserID,
	}

	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.ProductName),
	}
	if req.Description != "" {
		product.Description = stripe.String(req.Description)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(strings.ToLower(req.Currency)),
				ProductData: product,
				UnitAmount:  stripe.Int64(req.AmountMinor),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(SuccessURL(req.BaseURL, req.BookingID)),
		CancelURL:  stripe.String(CancelURL(req.BaseURL, req.BookingID)),
		Metadata:   metadata,
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: metadata,
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session for booking %s: %w", req.BookingID, err)
	}

	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// SuccessURL keeps the literal {CHECKOUT_SESSION_ID} template for the gateway to fill in.
func SuccessURL(base, bookingID string) string {
	return fmt.Sprintf("%s/booking/success?session_id={CHECKOUT_SESSION_ID}&booking_id=%s",
		strings.TrimRight(base, "/"), url.QueryEscape(bookingID))
}

func CancelURL(base, bookingID string) string {
	return fmt.Sprintf("%s/booking/cancel?booking_id=%s",
		strings.TrimRight(base, "/"), url.QueryEscape(bookingID))
}

type StripeVerifier struct {
	secret string
}

func NewStripeVerifier(secret string) *StripeVerifier {
	return &StripeVerifier{secret: secret}
}

// Verify checks the Stripe-Signature header and decodes the event envelope.
func (v *StripeVerifier) Verify(payload []byte, signature string) (Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, v.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := Event{ID: ev.ID, Kind: EventKind(ev.Type)}
	if ev.Data != nil {
		out.Object = ev.Data.Raw
	}
	return out, nil
}

func DecodeSession(raw json.RawMessage) (*SessionCompleted, error) {
	var s stripe.CheckoutSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	out := &SessionCompleted{SessionID: s.ID, Metadata: s.Metadata}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out, nil
}

func DecodePaymentIntentID(raw json.RawMessage) (string, error) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(raw, &pi); err != nil {
		return "", fmt.Errorf("decode payment intent: %w", err)
	}
	return pi.ID, nil
}

// DecodeChargePaymentIntentID returns the payment intent a charge belongs to.
func DecodeChargePaymentIntentID(raw json.RawMessage) (string, error) {
	var ch stripe.Charge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return "", fmt.Errorf("decode charge: %w", err)
	}
	if ch.PaymentIntent == nil {
		return "", nil
	}
	return ch.PaymentIntent.ID, nil
}
