package request

type ContactInfoRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Country string `json:"country,omitempty" validate:"omitempty,max=64"`
}

// CreateBookingRequest mirrors the booking form. Dates are YYYY-MM-DD or RFC 3339.
type CreateBookingRequest struct {
	Type            string             `json:"type" validate:"required,oneof=HOTEL TOUR"`
	ItemID          string             `json:"itemId" validate:"required,max=128"`
	ItemType        string             `json:"itemType" validate:"required,oneof=hotel tour"`
	CheckIn         string             `json:"checkIn" validate:"required"`
	CheckOut        string             `json:"checkOut" validate:"required"`
	Guests          int                `json:"guests" validate:"gte=0,lte=100"`
	Rooms           int                `json:"rooms" validate:"gte=0,lte=50"`
	Adults          int                `json:"adults" validate:"gte=0,lte=100"`
	Children        int                `json:"children" validate:"gte=0,lte=100"`
	Infants         int                `json:"infants" validate:"gte=0,lte=100"`
	SpecialRequests *string            `json:"specialRequests,omitempty" validate:"omitempty,max=2000"`
	ContactInfo     ContactInfoRequest `json:"contactInfo"`
}

// UpdateBookingRequest carries every field any status may change. Which of
// them are actually allowed depends on the booking's current status.
type UpdateBookingRequest struct {
	SpecialRequests *string             `json:"specialRequests,omitempty" validate:"omitempty,max=2000"`
	ContactInfo     *ContactInfoRequest `json:"contactInfo,omitempty"`
	Guests          *int                `json:"guests,omitempty" validate:"omitempty,gte=1,lte=100"`
	Rooms           *int                `json:"rooms,omitempty" validate:"omitempty,gte=1,lte=50"`
}

type ListBookingsRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=PENDING PAID CANCELLED"`
}
