package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Cancellable reports whether an explicit cancellation is allowed.
func (s BookingStatus) Cancellable() bool {
	return s == BookingStatusPending || s == BookingStatusPaid
}

type BookingType string

const (
	BookingTypeHotel BookingType = "HOTEL"
	BookingTypeTour  BookingType = "TOUR"
)

type ItemType string

const (
	ItemTypeHotel ItemType = "hotel"
	ItemTypeTour  ItemType = "tour"
)

// ContactInfo is stored as jsonb.
type ContactInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country,omitempty"`
}

type Booking struct {
	BaseNoDelete
	Reference             string        `db:"reference"`
	UserID                uuid.UUID     `db:"user_id"`
	Type                  BookingType   `db:"booking_type"`
	ItemID                string        `db:"item_id"`
	ItemType              ItemType      `db:"item_type"`
	CheckIn               time.Time     `db:"check_in"`
	CheckOut              time.Time     `db:"check_out"`
	DurationDays          int           `db:"duration_days"`
	Guests                int           `db:"guests"`
	Rooms                 int           `db:"rooms"`
	Adults                int           `db:"adults"`
	Children              int           `db:"children"`
	Infants               int           `db:"infants"`
	SpecialRequests       *string       `db:"special_requests"`
	ContactInfo           ContactInfo   `db:"contact_info"`
	TotalAmount           float64       `db:"total_amount"`
	Currency              string        `db:"currency"`
	StripeSessionID       *string       `db:"stripe_session_id"`
	StripePaymentIntentID *string       `db:"stripe_payment_intent_id"`
	Status                BookingStatus `db:"status"`
}
