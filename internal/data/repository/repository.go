package repository

import (
	"errors"

	"fairway-booking/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by updates that matched no row.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
