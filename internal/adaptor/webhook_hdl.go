package adaptor

import (
	"io"
	"net/http"

	"fairway-booking/internal/usecase"
	"fairway-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	maxWebhookBody  = 64 << 10
	signatureHeader = "Stripe-Signature"
)

type WebhookHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.PaymentService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// Stripe handles POST /api/webhooks/stripe. The body is read raw since the
// signature covers the exact bytes.
func (h *WebhookHandler) Stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody+1))
	if err != nil {
		h.log.Warn("Failed to read webhook body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if len(payload) > maxWebhookBody {
		utils.ResponseJSON(w, http.StatusRequestEntityTooLarge, false, "Webhook body too large", nil, nil)
		return
	}

	ack, err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader))
	if err != nil {
		handleServiceError(w, h.log, err, "handle webhook")
		return
	}

	utils.WriteJSON(w, http.StatusOK, ack)
}
