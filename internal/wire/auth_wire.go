package wire

import (
	"fairway-booking/internal/adaptor"
	"fairway-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, repo *repository.Repository, log *zap.Logger) {
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/me", authHandler.Me)
	})
}
