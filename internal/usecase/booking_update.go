package usecase

import (
	"fmt"
	"strings"

	"fairway-booking/internal/data/entity"
	"fairway-booking/internal/dto/request"
)

// bookingChange is the set of fields a booking may change in its current
// status. PendingChanges and PaidChanges are the only variants.
type bookingChange interface {
	apply(b *entity.Booking)
}

type PendingChanges struct {
	SpecialRequests *string
	ContactInfo     *entity.ContactInfo
	Guests          *int
	Rooms           *int
}

func (c PendingChanges) apply(b *entity.Booking) {
	PaidChanges{SpecialRequests: c.SpecialRequests, ContactInfo: c.ContactInfo}.apply(b)
	if c.Guests != nil {
		b.Guests = *c.Guests
	}
	if c.Rooms != nil {
		b.Rooms = *c.Rooms
	}
}

type PaidChanges struct {
	SpecialRequests *string
	ContactInfo     *entity.ContactInfo
}

func (c PaidChanges) apply(b *entity.Booking) {
	if c.SpecialRequests != nil {
		b.SpecialRequests = c.SpecialRequests
	}
	if c.ContactInfo != nil {
		b.ContactInfo = *c.ContactInfo
	}
}

// changesFor narrows an update request to the variant allowed for status.
// Nothing is applied when it returns an error.
func changesFor(status entity.BookingStatus, req *request.UpdateBookingRequest) (bookingChange, error) {
	var contact *entity.ContactInfo
	if req.ContactInfo != nil {
		c := contactInfo(*req.ContactInfo)
		contact = &c
	}

	switch status {
	case entity.BookingStatusPending:
		return PendingChanges{
			SpecialRequests: req.SpecialRequests,
			ContactInfo:     contact,
			Guests:          req.Guests,
			Rooms:           req.Rooms,
		}, nil

	case entity.BookingStatusPaid:
		var forbidden []string
		if req.Guests != nil {
			forbidden = append(forbidden, "guests")
		}
		if req.Rooms != nil {
			forbidden = append(forbidden, "rooms")
		}
		if len(forbidden) > 0 {
			return nil, validationError("%s cannot be changed on a PAID booking", strings.Join(forbidden, ", "))
		}
		return PaidChanges{SpecialRequests: req.SpecialRequests, ContactInfo: contact}, nil

	default:
		return nil, fmt.Errorf("%w: booking is %s and can no longer be updated", ErrInvalidState, status)
	}
}
