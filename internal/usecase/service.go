package usecase

import (
	"fairway-booking/internal/data/content"
	"fairway-booking/internal/data/repository"
	"fairway-booking/pkg/events"
	"fairway-booking/pkg/notify"
	"fairway-booking/pkg/utils"

	"go.uber.org/zap"
)

// Integrations are the outbound systems the services call.
type Integrations struct {
	Catalog  content.CatalogStore
	Gateway  PaymentGateway
	Verifier WebhookVerifier
	Search   SearchEngine
	Notifier notify.Notifier
	Events   events.Publisher
}

type Service struct {
	Auth    AuthService
	Booking BookingService
	Payment PaymentService
	Search  SearchService
	Catalog CatalogService
}

func NewService(repo *repository.Repository, in Integrations, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, log),
		Booking: NewBookingService(repo, in.Catalog, in.Gateway, in.Notifier, in.Events, config, log),
		Payment: NewPaymentService(repo, in.Verifier, in.Events, config, log),
		Search:  NewSearchService(in.Search, log),
		Catalog: NewCatalogService(in.Catalog, config, log),
	}
}
