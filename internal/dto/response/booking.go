package response

import (
	"time"

	"fairway-booking/internal/data/entity"
)

type CreateBookingResponse struct {
	BookingID   string  `json:"bookingId"`
	Reference   string  `json:"reference"`
	CheckoutURL string  `json:"checkoutUrl"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
}

type BookingResponse struct {
	ID              string               `json:"id"`
	Reference       string               `json:"reference"`
	UserID          string               `json:"userId"`
	Type            entity.BookingType   `json:"type"`
	ItemID          string               `json:"itemId"`
	ItemType        entity.ItemType      `json:"itemType"`
	CheckIn         string               `json:"checkIn"`
	CheckOut        string               `json:"checkOut"`
	DurationDays    int                  `json:"durationDays"`
	Guests          int                  `json:"guests"`
	Rooms           int                  `json:"rooms"`
	Adults          int                  `json:"adults"`
	Children        int                  `json:"children"`
	Infants         int                  `json:"infants"`
	SpecialRequests *string              `json:"specialRequests,omitempty"`
	ContactInfo     entity.ContactInfo   `json:"contactInfo"`
	TotalAmount     float64              `json:"totalAmount"`
	Currency        string               `json:"currency"`
	Status          entity.BookingStatus `json:"status"`
	PaymentStatus   string               `json:"paymentStatus"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

const dateLayout = "2006-01-02"

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		Reference:       b.Reference,
		UserID:          b.UserID.String(),
		Type:            b.Type,
		ItemID:          b.ItemID,
		ItemType:        b.ItemType,
		CheckIn:         b.CheckIn.Format(dateLayout),
		CheckOut:        b.CheckOut.Format(dateLayout),
		DurationDays:    b.DurationDays,
		Guests:          b.Guests,
		Rooms:           b.Rooms,
		Adults:          b.Adults,
		Children:        b.Children,
		Infants:         b.Infants,
		SpecialRequests: b.SpecialRequests,
		ContactInfo:     b.ContactInfo,
		TotalAmount:     b.TotalAmount,
		Currency:        b.Currency,
		Status:          b.Status,
		PaymentStatus:   paymentStatus(b),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func paymentStatus(b *entity.Booking) string {
	switch {
	case b.Status == entity.BookingStatusPaid:
		return "paid"
	case b.Status == entity.BookingStatusCancelled:
		return "void"
	case b.StripeSessionID != nil:
		return "awaiting_payment"
	default:
		return "not_started"
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}
