package adaptor

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"fairway-booking/internal/usecase"
	"fairway-booking/pkg/payment"
	"fairway-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Booking *BookingHandler
	Webhook *WebhookHandler
	Search  *SearchHandler
	Catalog *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Booking: NewBookingHandler(service.Booking, log),
		Webhook: NewWebhookHandler(service.Payment, log),
		Search:  NewSearchHandler(service.Search, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
	}
}

// handleServiceError maps usecase sentinels onto status codes.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()
	fields := []zap.Field{zap.Error(err), zap.String("operation", operation)}

	switch {
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, payment.ErrInvalidSignature):
		log.Warn(operation+" validation failed", fields...)
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", fields...)
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", fields...)
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", fields...)
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrInvalidState), errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", fields...)
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrUnavailable):
		log.Warn(operation+" failed - unavailable", fields...)
		utils.ResponseUnavailable(w, errMsg)

	default:
		log.Error("Failed to "+operation, fields...)
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// clientInfo extracts the caller's user agent and address for session records.
func clientInfo(r *http.Request) usecase.ClientInfo {
	ip := r.RemoteAddr
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip, _, _ = strings.Cut(fwd, ",")
	}
	if host, _, err := net.SplitHostPort(strings.TrimSpace(ip)); err == nil {
		ip = host
	}
	return usecase.ClientInfo{
		UserAgent: r.UserAgent(),
		IPAddress: strings.TrimSpace(ip),
	}
}
