package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fairway-booking/internal/data/entity"
	"fairway-booking/internal/data/repository"
	"fairway-booking/internal/dto/request"
	"fairway-booking/pkg/events"
	"fairway-booking/pkg/payment"
	"fairway-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)

type bookingFixture struct {
	svc      *bookingService
	repo     *repository.Repository
	bookings *memBookings
	catalog  *mockCatalog
	gateway  *mockGateway
	notifier *mockNotifier
	events   *recorder
	config   *utils.Config
}

func newBookingFixture(t *testing.T, seed ...*entity.Booking) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		bookings: newMemBookings(seed...),
		catalog:  &mockCatalog{},
		gateway:  &mockGateway{},
		notifier: &mockNotifier{},
		events:   &recorder{},
		config: &utils.Config{
			App:    utils.AppConfig{Name: "Fairway", BaseURL: "https://fairway.lk"},
			Stripe: utils.StripeConfig{WebhookSecret: "whsec_test_secret"},
		},
	}
	f.repo = &repository.Repository{Booking: f.bookings}

	svc := NewBookingService(f.repo, f.catalog, f.gateway, f.notifier, f.events, f.config, zap.NewNop())
	f.svc = svc.(*bookingService)
	f.svc.now = fixedClock(testNow)

	t.Cleanup(func() {
		f.catalog.AssertExpectations(t)
		f.gateway.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})
	return f
}

func (f *bookingFixture) expectNotifications(err error) {
	f.notifier.On("BookingConfirmation", mock.Anything, mock.Anything).Return(err).Once()
	f.notifier.On("OpsBookingAlert", mock.Anything, mock.Anything).Return(err).Once()
}

func hotelRequest() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		Type:     "HOTEL",
		ItemID:   "hotel-galle-fort",
		ItemType: "hotel",
		CheckIn:  "2025-06-01",
		CheckOut: "2025-06-04",
		Rooms:    2,
		Adults:   2,
		ContactInfo: request.ContactInfoRequest{
			Name:  "Nimal Perera",
			Email: "nimal@example.lk",
			Phone: "+94 77 123 4567",
		},
	}
}

func galleFort() *entity.CatalogItem {
	return &entity.CatalogItem{
		ID:            "hotel-galle-fort",
		Type:          entity.DocHotel,
		Name:          "Galle Fort Hotel",
		PricePerNight: 100,
	}
}

func customer() utils.Principal {
	return utils.Principal{UserID: uuid.MustParse("8f14e45f-ceea-467f-a8f0-6f8a1e2b7c11"), Role: "customer"}
}

func seedBooking(owner uuid.UUID, status entity.BookingStatus, createdAt time.Time) *entity.Booking {
	intent := "pi_" + uuid.NewString()[:8]
	id := uuid.New()
	return &entity.Booking{
		BaseNoDelete:          entity.BaseNoDelete{ID: id, CreatedAt: createdAt, UpdatedAt: createdAt},
		Reference:             utils.GenerateReference(createdAt, id),
		UserID:                owner,
		Type:                  entity.BookingTypeHotel,
		ItemID:                "hotel-galle-fort",
		ItemType:              entity.ItemTypeHotel,
		CheckIn:               time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:              time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		DurationDays:          1,
		Guests:                2,
		Rooms:                 1,
		Adults:                2,
		ContactInfo:           entity.ContactInfo{Name: "Nimal Perera", Email: "nimal@example.lk"},
		TotalAmount:           300,
		Currency:              "USD",
		StripePaymentIntentID: &intent,
		Status:                status,
	}
}

func TestBookingService_Create_HotelThenCheckoutCompleted(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.catalog.On("FindItem", mock.Anything, entity.DocHotel, "hotel-galle-fort").Return(galleFort(), nil).Once()
	f.gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(r payment.CheckoutRequest) bool {
		return r.AmountMinor == 60000 &&
			r.Currency == "USD" &&
			r.ItemID == "hotel-galle-fort" &&
			r.ItemType == "hotel" &&
			r.UserID == customer().UserID.String() &&
			r.CustomerEmail == "nimal@example.lk" &&
			r.BaseURL == "https://fairway.lk"
	})).Return(&payment.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil).Once()
	f.expectNotifications(nil)

	resp, err := f.svc.Create(ctx, customer(), hotelRequest())
	require.NoError(t, err)

	assert.Equal(t, 600.0, resp.TotalAmount)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", resp.CheckoutURL)
	assert.Regexp(t, `^BOOK-20250520-093000-[0-9A-F]{12}$`, resp.Reference)

	id := uuid.MustParse(resp.BookingID)
	stored := f.bookings.get(id)
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
	assert.Equal(t, 600.0, stored.TotalAmount)
	assert.Equal(t, 1, stored.DurationDays)
	assert.Equal(t, 2, stored.Rooms)
	assert.Equal(t, 2, stored.Guests)
	require.NotNil(t, stored.StripeSessionID)
	assert.Equal(t, "cs_test_1", *stored.StripeSessionID)
	assert.Equal(t, []events.Type{events.BookingCreated}, f.events.types())

	// the gateway reports the completed checkout
	verifier := &mockVerifier{}
	verifier.On("Verify", mock.Anything, "t=1,v1=sig").Return(payment.Event{
		ID:     "evt_1",
		Kind:   payment.CheckoutSessionCompleted,
		Object: []byte(`{"id":"cs_test_1","object":"checkout.session","payment_intent":"pi_123","metadata":{"bookingId":"` + resp.BookingID + `"}}`),
	}, nil)

	payments := NewPaymentService(f.repo, verifier, f.events, f.config, zap.NewNop())
	ack, err := payments.HandleWebhook(ctx, []byte(`{}`), "t=1,v1=sig")
	require.NoError(t, err)
	assert.True(t, ack.Received)

	stored = f.bookings.get(id)
	assert.Equal(t, entity.BookingStatusPaid, stored.Status)
	require.NotNil(t, stored.StripePaymentIntentID)
	assert.Equal(t, "pi_123", *stored.StripePaymentIntentID)
	assert.Equal(t, []events.Type{events.BookingCreated, events.BookingPaid}, f.events.types())
}

func TestBookingService_Create_TourPricing(t *testing.T) {
	f := newBookingFixture(t)

	f.catalog.On("FindItem", mock.Anything, entity.DocTour, "tour-cultural-triangle").Return(&entity.CatalogItem{
		ID:             "tour-cultural-triangle",
		Type:           entity.DocTour,
		Name:           "Cultural Triangle",
		PricePerPerson: 200,
		Currency:       "usd",
	}, nil).Once()
	f.gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(r payment.CheckoutRequest) bool {
		return r.AmountMinor == 56000
	})).Return(&payment.CheckoutSession{ID: "cs_tour", URL: "https://checkout.stripe.com/c/pay/cs_tour"}, nil).Once()
	f.expectNotifications(nil)

	req := &request.CreateBookingRequest{
		Type:        "TOUR",
		ItemID:      "tour-cultural-triangle",
		ItemType:    "tour",
		CheckIn:     "2025-06-10",
		CheckOut:    "2025-06-13",
		Adults:      2,
		Children:    1,
		Infants:     1,
		ContactInfo: request.ContactInfoRequest{Name: "Anna Schmidt", Email: "anna@example.de"},
	}

	resp, err := f.svc.Create(context.Background(), customer(), req)
	require.NoError(t, err)

	assert.InDelta(t, 560.0, resp.TotalAmount, 0.001)
	assert.Equal(t, "USD", resp.Currency)

	stored := f.bookings.get(uuid.MustParse(resp.BookingID))
	assert.Equal(t, 3, stored.DurationDays)
	assert.Equal(t, 4, stored.Guests)
	assert.Equal(t, 1, stored.Rooms)
}

func TestBookingService_Create_RejectsBeforePersisting(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *request.CreateBookingRequest)
	}{
		{"missing item id", func(r *request.CreateBookingRequest) { r.ItemID = "" }},
		{"missing type", func(r *request.CreateBookingRequest) { r.Type = "" }},
		{"unknown item type", func(r *request.CreateBookingRequest) { r.ItemType = "villa" }},
		{"type mismatch", func(r *request.CreateBookingRequest) { r.Type = "TOUR" }},
		{"check-out equals check-in", func(r *request.CreateBookingRequest) { r.CheckOut = r.CheckIn }},
		{"check-out before check-in", func(r *request.CreateBookingRequest) { r.CheckOut = "2025-05-30" }},
		{"check-in in the past", func(r *request.CreateBookingRequest) { r.CheckIn = "2025-05-19" }},
		{"malformed date", func(r *request.CreateBookingRequest) { r.CheckIn = "01/06/2025" }},
		{"bad contact email", func(r *request.CreateBookingRequest) { r.ContactInfo.Email = "nimal" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			req := hotelRequest()
			tt.mutate(req)

			_, err := f.svc.Create(context.Background(), customer(), req)
			require.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, f.bookings.writes)
		})
	}
}

func TestBookingService_Create_CheckInTodayAllowed(t *testing.T) {
	f := newBookingFixture(t)
	f.catalog.On("FindItem", mock.Anything, entity.DocHotel, "hotel-galle-fort").Return(galleFort(), nil).Once()
	f.gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&payment.CheckoutSession{ID: "cs_today", URL: "https://checkout.stripe.com/c/pay/cs_today"}, nil).Once()
	f.expectNotifications(nil)

	req := hotelRequest()
	req.CheckIn = "2025-05-20"
	req.CheckOut = "2025-05-21T12:00:00+05:30"

	resp, err := f.svc.Create(context.Background(), customer(), req)
	require.NoError(t, err)
	assert.Equal(t, 200.0, resp.TotalAmount)
}

func TestBookingService_Create_Unauthenticated(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(context.Background(), utils.Principal{}, hotelRequest())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, f.bookings.writes)
}

func TestBookingService_Create_UnknownItemLeavesPendingRow(t *testing.T) {
	f := newBookingFixture(t)
	f.catalog.On("FindItem", mock.Anything, entity.DocHotel, "hotel-galle-fort").Return(nil, nil).Once()

	_, err := f.svc.Create(context.Background(), customer(), hotelRequest())
	require.ErrorIs(t, err, ErrNotFound)

	require.Len(t, f.bookings.rows, 1)
	for _, b := range f.bookings.rows {
		assert.Equal(t, entity.BookingStatusPending, b.Status)
		assert.Zero(t, b.TotalAmount)
		assert.Nil(t, b.StripeSessionID)
	}
	f.gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestBookingService_Create_GatewayFailure(t *testing.T) {
	f := newBookingFixture(t)
	f.catalog.On("FindItem", mock.Anything, entity.DocHotel, "hotel-galle-fort").Return(galleFort(), nil).Once()
	f.gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(nil, errors.New("stripe: card_declined")).Once()

	_, err := f.svc.Create(context.Background(), customer(), hotelRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)

	require.Len(t, f.bookings.rows, 1)
	for _, b := range f.bookings.rows {
		assert.Equal(t, 600.0, b.TotalAmount)
		assert.Nil(t, b.StripeSessionID)
	}
	assert.Empty(t, f.events.types())
}

func TestBookingService_Create_NotificationFailureIsIgnored(t *testing.T) {
	f := newBookingFixture(t)
	f.events.err = errors.New("broker down")
	item := galleFort()
	item.Currency = "lkr"
	item.PricePerNight = 30000

	f.catalog.On("FindItem", mock.Anything, entity.DocHotel, "hotel-galle-fort").Return(item, nil).Once()
	f.gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(r payment.CheckoutRequest) bool {
		return r.Currency == "LKR" && r.AmountMinor == 18000000
	})).Return(&payment.CheckoutSession{ID: "cs_lkr", URL: "https://checkout.stripe.com/c/pay/cs_lkr"}, nil).Once()
	f.expectNotifications(errors.New("smtp: connection refused"))

	resp, err := f.svc.Create(context.Background(), customer(), hotelRequest())
	require.NoError(t, err)
	assert.Equal(t, "LKR", resp.Currency)
	assert.Equal(t, 180000.0, resp.TotalAmount)
}

func TestBookingService_List(t *testing.T) {
	me := customer().UserID
	other := uuid.New()
	f := newBookingFixture(t,
		seedBooking(me, entity.BookingStatusPending, testNow.Add(-3*time.Hour)),
		seedBooking(me, entity.BookingStatusPaid, testNow.Add(-2*time.Hour)),
		seedBooking(me, entity.BookingStatusCancelled, testNow.Add(-1*time.Hour)),
		seedBooking(other, entity.BookingStatusPaid, testNow),
	)

	all, err := f.svc.List(context.Background(), customer(), &request.ListBookingsRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 2},
	})
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)
	assert.Equal(t, int64(3), all.Pagination.Total)
	assert.Equal(t, 2, all.Pagination.TotalPages)
	assert.Equal(t, entity.BookingStatusCancelled, all.Data[0].Status)

	paid, err := f.svc.List(context.Background(), customer(), &request.ListBookingsRequest{Status: "PAID"})
	require.NoError(t, err)
	require.Len(t, paid.Data, 1)
	assert.Equal(t, me.String(), paid.Data[0].UserID)
	assert.Equal(t, 1, paid.Pagination.Page)
	assert.Equal(t, 10, paid.Pagination.PerPage)

	_, err = f.svc.List(context.Background(), customer(), &request.ListBookingsRequest{Status: "REFUNDED"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingService_Get_Authorization(t *testing.T) {
	owned := seedBooking(customer().UserID, entity.BookingStatusPending, testNow)
	foreign := seedBooking(uuid.New(), entity.BookingStatusPending, testNow)
	f := newBookingFixture(t, owned, foreign)
	ctx := context.Background()

	got, err := f.svc.Get(ctx, customer(), owned.ID.String())
	require.NoError(t, err)
	assert.Equal(t, owned.ID.String(), got.ID)

	_, err = f.svc.Get(ctx, customer(), foreign.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	admin := utils.Principal{UserID: uuid.New(), Role: utils.RoleAdmin}
	_, err = f.svc.Get(ctx, admin, foreign.ID.String())
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, customer(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Get(ctx, customer(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingService_Update(t *testing.T) {
	notes := "Late arrival, around 11pm"
	rooms := 3
	guests := 5

	t.Run("pending accepts party changes", func(t *testing.T) {
		b := seedBooking(customer().UserID, entity.BookingStatusPending, testNow)
		f := newBookingFixture(t, b)

		got, err := f.svc.Update(context.Background(), customer(), b.ID.String(), &request.UpdateBookingRequest{
			SpecialRequests: &notes,
			Rooms:           &rooms,
			Guests:          &guests,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, got.Rooms)

		stored := f.bookings.get(b.ID)
		assert.Equal(t, 3, stored.Rooms)
		assert.Equal(t, 5, stored.Guests)
		assert.Equal(t, notes, *stored.SpecialRequests)
	})

	t.Run("paid rejects party changes untouched", func(t *testing.T) {
		b := seedBooking(customer().UserID, entity.BookingStatusPaid, testNow)
		f := newBookingFixture(t, b)

		_, err := f.svc.Update(context.Background(), customer(), b.ID.String(), &request.UpdateBookingRequest{
			SpecialRequests: &notes,
			Rooms:           &rooms,
		})
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "rooms")

		stored := f.bookings.get(b.ID)
		assert.Equal(t, 1, stored.Rooms)
		assert.Nil(t, stored.SpecialRequests)
		assert.Zero(t, f.bookings.writes)
	})

	t.Run("paid accepts contact and notes", func(t *testing.T) {
		b := seedBooking(customer().UserID, entity.BookingStatusPaid, testNow)
		f := newBookingFixture(t, b)

		_, err := f.svc.Update(context.Background(), customer(), b.ID.String(), &request.UpdateBookingRequest{
			SpecialRequests: &notes,
			ContactInfo:     &request.ContactInfoRequest{Name: "Nimal P.", Email: "nimal.p@example.lk"},
		})
		require.NoError(t, err)

		stored := f.bookings.get(b.ID)
		assert.Equal(t, "nimal.p@example.lk", stored.ContactInfo.Email)
		assert.Equal(t, notes, *stored.SpecialRequests)
	})

	t.Run("cancelled rejects everything", func(t *testing.T) {
		b := seedBooking(customer().UserID, entity.BookingStatusCancelled, testNow)
		f := newBookingFixture(t, b)

		_, err := f.svc.Update(context.Background(), customer(), b.ID.String(), &request.UpdateBookingRequest{
			SpecialRequests: &notes,
		})
		require.ErrorIs(t, err, ErrInvalidState)
		assert.Zero(t, f.bookings.writes)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		b := seedBooking(uuid.New(), entity.BookingStatusPending, testNow)
		f := newBookingFixture(t, b)

		_, err := f.svc.Update(context.Background(), customer(), b.ID.String(), &request.UpdateBookingRequest{
			SpecialRequests: &notes,
		})
		require.ErrorIs(t, err, ErrForbidden)
		assert.Zero(t, f.bookings.writes)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	for _, status := range []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusPaid} {
		t.Run(string(status), func(t *testing.T) {
			b := seedBooking(customer().UserID, status, testNow)
			f := newBookingFixture(t, b)

			got, err := f.svc.Cancel(context.Background(), customer(), b.ID.String())
			require.NoError(t, err)
			assert.Equal(t, entity.BookingStatusCancelled, got.Status)
			assert.Equal(t, entity.BookingStatusCancelled, f.bookings.get(b.ID).Status)
			assert.Equal(t, []events.Type{events.BookingCancelled}, f.events.types())
		})
	}

	t.Run("already cancelled", func(t *testing.T) {
		b := seedBooking(customer().UserID, entity.BookingStatusCancelled, testNow)
		f := newBookingFixture(t, b)

		_, err := f.svc.Cancel(context.Background(), customer(), b.ID.String())
		require.ErrorIs(t, err, ErrInvalidState)
		assert.Zero(t, f.bookings.writes)
	})

	t.Run("admin may cancel any booking", func(t *testing.T) {
		b := seedBooking(uuid.New(), entity.BookingStatusPaid, testNow)
		f := newBookingFixture(t, b)

		admin := utils.Principal{UserID: uuid.New(), Role: utils.RoleAdmin}
		_, err := f.svc.Cancel(context.Background(), admin, b.ID.String())
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, f.bookings.get(b.ID).Status)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		b := seedBooking(uuid.New(), entity.BookingStatusPaid, testNow)
		f := newBookingFixture(t, b)

		_, err := f.svc.Cancel(context.Background(), customer(), b.ID.String())
		require.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, entity.BookingStatusPaid, f.bookings.get(b.ID).Status)
	})
}
