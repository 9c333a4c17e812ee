package wire

import (
	"fairway-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// The gateway authenticates with its signature header, not a session.
func wirePayment(r chi.Router, webhookHandler *adaptor.WebhookHandler) {
	r.Post("/api/webhooks/stripe", webhookHandler.Stripe)
}
