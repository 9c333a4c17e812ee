package wire

import (
	"fairway-booking/internal/adaptor"
	"fairway-booking/internal/data/repository"
	"fairway-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.ListBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}", bookingHandler.UpdateBooking)
		r.Delete("/{id}", bookingHandler.CancelBooking)
	})

	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(authenticated(repo, log))
		r.Use(middleware.Admin(log))

		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
