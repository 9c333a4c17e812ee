package wire

import (
	"net/http"

	"fairway-booking/internal/adaptor"
	"fairway-booking/internal/data/repository"
	"fairway-booking/internal/usecase"
	"fairway-booking/pkg/middleware"
	"fairway-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services and handlers and mounts every route.
func Wiring(repo *repository.Repository, integrations usecase.Integrations, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, integrations, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, repo, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.Origins))

	wireAuth(r, handler.Auth, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wirePayment(r, handler.Webhook)
	wireSearch(r, handler.Search)
	wireCatalog(r, handler.Catalog)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// authenticated is the session middleware every protected group starts with.
func authenticated(repo *repository.Repository, log *zap.Logger) func(http.Handler) http.Handler {
	return middleware.AuthSession(repo.Session, repo.User, log)
}
