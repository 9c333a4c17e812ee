package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fairway-booking/internal/data/content"
	"fairway-booking/internal/data/entity"
	"fairway-booking/internal/data/repository"
	"fairway-booking/internal/dto/request"
	"fairway-booking/internal/dto/response"
	"fairway-booking/pkg/events"
	"fairway-booking/pkg/notify"
	"fairway-booking/pkg/payment"
	"fairway-booking/pkg/pricing"
	"fairway-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGateway opens hosted checkout pages.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
}

type BookingService interface {
	Create(ctx context.Context, principal utils.Principal, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)
	List(ctx context.Context, principal utils.Principal, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Get(ctx context.Context, principal utils.Principal, bookingID string) (*response.BookingResponse, error)
	Update(ctx context.Context, principal utils.Principal, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	Cancel(ctx context.Context, principal utils.Principal, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	catalog  content.CatalogStore
	gateway  PaymentGateway
	notifier notify.Notifier
	events   events.Publisher
	config   *utils.Config
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	repo *repository.Repository,
	catalog content.CatalogStore,
	gateway PaymentGateway,
	notifier notify.Notifier,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		catalog:  catalog,
		gateway:  gateway,
		notifier: notifier,
		events:   publisher,
		config:   config,
		log:      log.With(zap.String("service", "booking")),
		now:      time.Now,
	}
}

const dateLayout = "2006-01-02"

func (s *bookingService) Create(ctx context.Context, principal utils.Principal, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	// 1. Authenticated caller only
	if principal.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	// 2. Validate payload
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationError("%s", utils.FormatValidationErrors(errs))
	}

	bookingType := entity.BookingType(req.Type)
	itemType := entity.ItemType(req.ItemType)
	if !typesMatch(bookingType, itemType) {
		return nil, validationError("type %s does not match itemType %s", req.Type, req.ItemType)
	}

	// 3. Dates
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return nil, validationError("checkIn must be a date (YYYY-MM-DD)")
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return nil, validationError("checkOut must be a date (YYYY-MM-DD)")
	}

	now := s.now()
	if checkIn.Before(startOfDay(now)) {
		return nil, validationError("checkIn cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return nil, validationError("checkOut must be after checkIn")
	}

	// 4. Duration
	nights := pricing.Nights(checkIn, checkOut)
	durationDays := 1
	if bookingType == entity.BookingTypeTour {
		durationDays = nights
	}

	adults, children, infants, guests, rooms := party(req)

	// 5. Persist PENDING row with a zero total
	base := entity.NewBaseNoDelete(now)
	booking := &entity.Booking{
		BaseNoDelete:    base,
		Reference:       utils.GenerateReference(now, base.ID),
		UserID:          principal.UserID,
		Type:            bookingType,
		ItemID:          req.ItemID,
		ItemType:        itemType,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		DurationDays:    durationDays,
		Guests:          guests,
		Rooms:           rooms,
		Adults:          adults,
		Children:        children,
		Infants:         infants,
		SpecialRequests: req.SpecialRequests,
		ContactInfo:     contactInfo(req.ContactInfo),
		TotalAmount:     0,
		Currency:        pricing.DefaultCurrency,
		Status:          entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// 6. Load catalog item
	item, err := s.catalog.FindItem(ctx, entity.DocType(itemType), req.ItemID)
	if err != nil {
		s.log.Error("Failed to load catalog item",
			zap.Error(err),
			zap.String("item_id", req.ItemID),
			zap.String("booking_id", booking.ID.String()))
		return nil, fmt.Errorf("load catalog item: %w", err)
	}
	if item == nil {
		s.log.Warn("Catalog item not found",
			zap.String("item_id", req.ItemID),
			zap.String("item_type", req.ItemType),
			zap.String("booking_id", booking.ID.String()))
		return nil, notFound(req.ItemType)
	}

	// 7. Price it
	total := pricing.Round2(bookingTotal(item, booking, nights))
	currency := strings.ToUpper(strings.TrimSpace(item.Currency))
	if currency == "" {
		currency = pricing.DefaultCurrency
	}

	// 8. Patch totals
	if err := s.repo.Booking.UpdateTotals(ctx, booking.ID, total, currency); err != nil {
		return nil, fmt.Errorf("update booking totals: %w", err)
	}
	booking.TotalAmount = total
	booking.Currency = currency

	// 9. Checkout session
	checkout, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		BookingID:     booking.ID.String(),
		ItemID:        booking.ItemID,
		ItemType:      string(booking.ItemType),
		UserID:        booking.UserID.String(),
		ProductName:   item.Name,
		Description:   checkoutDescription(booking, nights),
		CustomerEmail: booking.ContactInfo.Email,
		Currency:      currency,
		AmountMinor:   pricing.ToMinorUnits(total),
		BaseURL:       s.config.App.BaseURL,
	})
	if err != nil {
		s.log.Error("Failed to create checkout session",
			zap.Error(err), zap.String("booking_id", booking.ID.String()))
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	// 10. Patch session id
	if err := s.repo.Booking.UpdateSessionID(ctx, booking.ID, checkout.ID); err != nil {
		return nil, fmt.Errorf("update booking session: %w", err)
	}
	booking.StripeSessionID = &checkout.ID

	// 11. Best-effort side effects
	s.notifyCreated(ctx, booking, item, checkout.URL)
	publishBookingEvent(ctx, s.events, s.log, events.BookingCreated, booking, "api", s.now())

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.Float64("total", total),
		zap.String("currency", currency))

	// 12. Result
	return &response.CreateBookingResponse{
		BookingID:   booking.ID.String(),
		Reference:   booking.Reference,
		CheckoutURL: checkout.URL,
		TotalAmount: total,
		Currency:    currency,
	}, nil
}

func (s *bookingService) List(ctx context.Context, principal utils.Principal, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if principal.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	req.Page, req.PerPage = utils.ClampPage(req.Page, req.PerPage, 10, 100)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError("%s", utils.FormatValidationErrors(errs))
	}

	var status *entity.BookingStatus
	if req.Status != "" {
		st := entity.BookingStatus(req.Status)
		status = &st
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, principal.UserID, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, principal.UserID, status)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.Page, req.PerPage, total), nil
}

func (s *bookingService) Get(ctx context.Context, principal utils.Principal, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadAuthorized(ctx, principal, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Update(ctx context.Context, principal utils.Principal, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	booking, err := s.loadAuthorized(ctx, principal, bookingID)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError("%s", utils.FormatValidationErrors(errs))
	}

	change, err := changesFor(booking.Status, req)
	if err != nil {
		s.log.Warn("Booking update rejected",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)))
		return nil, err
	}

	change.apply(booking)
	booking.UpdatedAt = s.now()

	if err := s.repo.Booking.UpdateDetails(ctx, booking); err != nil {
		return nil, translate(err, "booking")
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("by", principal.UserID.String()))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Cancel(ctx context.Context, principal utils.Principal, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadAuthorized(ctx, principal, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.Cancellable() {
		return nil, fmt.Errorf("%w: booking is %s and cannot be cancelled", ErrInvalidState, booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		return nil, translate(err, "booking")
	}
	booking.Status = entity.BookingStatusCancelled
	booking.UpdatedAt = s.now()

	publishBookingEvent(ctx, s.events, s.log, events.BookingCancelled, booking, "api", s.now())

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("by", principal.UserID.String()),
		zap.Bool("admin", principal.IsAdmin()))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// loadAuthorized returns the booking if the principal owns it or is an admin.
func (s *bookingService) loadAuthorized(ctx context.Context, principal utils.Principal, bookingID string) (*entity.Booking, error) {
	if principal.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, validationError("invalid booking id")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, notFound("booking")
	}

	if !principal.CanAccess(booking.UserID) {
		s.log.Warn("Booking access denied",
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", principal.UserID.String()))
		return nil, ErrForbidden
	}

	return booking, nil
}

func (s *bookingService) notifyCreated(ctx context.Context, b *entity.Booking, item *entity.CatalogItem, checkoutURL string) {
	summary := notify.BookingSummary{
		BookingID:     b.ID.String(),
		Reference:     b.Reference,
		ItemName:      item.Name,
		BookingType:   string(b.Type),
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		Rooms:         b.Rooms,
		Total:         pricing.Format(b.TotalAmount, b.Currency),
		CustomerName:  b.ContactInfo.Name,
		CustomerEmail: b.ContactInfo.Email,
		CustomerPhone: b.ContactInfo.Phone,
		CheckoutURL:   checkoutURL,
	}

	if err := s.notifier.BookingConfirmation(ctx, summary); err != nil {
		s.log.Error("Failed to send booking confirmation",
			zap.Error(err), zap.String("booking_id", summary.BookingID))
	}
	if err := s.notifier.OpsBookingAlert(ctx, summary); err != nil {
		s.log.Error("Failed to send ops booking alert",
			zap.Error(err), zap.String("booking_id", summary.BookingID))
	}
}

// ==================== HELPERS ====================

func typesMatch(bt entity.BookingType, it entity.ItemType) bool {
	return (bt == entity.BookingTypeHotel && it == entity.ItemTypeHotel) ||
		(bt == entity.BookingTypeTour && it == entity.ItemTypeTour)
}

// parseDate accepts a calendar date or an RFC 3339 timestamp and keeps only
// the calendar day, as UTC midnight.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// party fills the defaults: one adult when no breakdown is given, guests as
// the head count, and a single room.
func party(req *request.CreateBookingRequest) (adults, children, infants, guests, rooms int) {
	adults, children, infants = req.Adults, req.Children, req.Infants
	if adults+children+infants == 0 {
		adults = max(req.Guests, 1)
	}

	guests = req.Guests
	if guests == 0 {
		guests = adults + children + infants
	}

	rooms = req.Rooms
	if rooms == 0 {
		rooms = 1
	}
	return
}

func bookingTotal(item *entity.CatalogItem, b *entity.Booking, nights int) float64 {
	if b.Type == entity.BookingTypeTour {
		return pricing.TourTotal(item.PricePerPerson, b.Adults, b.Children, b.Infants)
	}
	return pricing.HotelTotal(item.PricePerNight, nights, b.Rooms)
}

func checkoutDescription(b *entity.Booking, nights int) string {
	if b.Type == entity.BookingTypeTour {
		return fmt.Sprintf("%d-day tour from %s, %d guests", b.DurationDays, b.CheckIn.Format(dateLayout), b.Guests)
	}
	return fmt.Sprintf("%d night(s), %d room(s), %s to %s",
		nights, b.Rooms, b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout))
}

func contactInfo(c request.ContactInfoRequest) entity.ContactInfo {
	return entity.ContactInfo{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Country: strings.TrimSpace(c.Country),
	}
}
