package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fairway-booking/internal/data/entity"
	"fairway-booking/internal/data/repository"
	"fairway-booking/pkg/events"
	"fairway-booking/pkg/notify"
	"fairway-booking/pkg/payment"
	"fairway-booking/pkg/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memBookings is an in-memory BookingRepository.
type memBookings struct {
	mu     sync.Mutex
	rows   map[uuid.UUID]entity.Booking
	writes int
}

func newMemBookings(seed ...*entity.Booking) *memBookings {
	m := &memBookings{rows: map[uuid.UUID]entity.Booking{}}
	for _, b := range seed {
		m.rows[b.ID] = *b
	}
	return m
}

func (m *memBookings) get(id uuid.UUID) entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memBookings) Create(_ context.Context, b *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[b.ID] = *b
	m.writes++
	return nil
}

func (m *memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memBookings) FindByPaymentIntentID(_ context.Context, intentID string) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.StripePaymentIntentID != nil && *b.StripePaymentIntentID == intentID {
			return &b, nil
		}
	}
	return nil, nil
}

func (m *memBookings) matching(userID uuid.UUID, status *entity.BookingStatus) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range m.rows {
		if b.UserID != userID || (status != nil && b.Status != *status) {
			continue
		}
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memBookings) FindByUserID(_ context.Context, userID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.matching(userID, status)
	if offset >= len(all) {
		return []*entity.Booking{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (m *memBookings) CountByUserID(_ context.Context, userID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.matching(userID, status))), nil
}

func (m *memBookings) update(id uuid.UUID, fn func(b *entity.Booking)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	fn(&b)
	m.rows[id] = b
	m.writes++
	return nil
}

func (m *memBookings) UpdateTotals(_ context.Context, id uuid.UUID, total float64, currency string) error {
	return m.update(id, func(b *entity.Booking) { b.TotalAmount, b.Currency = total, currency })
}

func (m *memBookings) UpdateSessionID(_ context.Context, id uuid.UUID, sessionID string) error {
	return m.update(id, func(b *entity.Booking) { b.StripeSessionID = &sessionID })
}

func (m *memBookings) UpdateDetails(_ context.Context, in *entity.Booking) error {
	return m.update(in.ID, func(b *entity.Booking) {
		b.SpecialRequests, b.ContactInfo, b.Guests, b.Rooms = in.SpecialRequests, in.ContactInfo, in.Guests, in.Rooms
	})
}

func (m *memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	return m.update(id, func(b *entity.Booking) { b.Status = status })
}

func (m *memBookings) MarkPaid(_ context.Context, id uuid.UUID, sessionID, intentID *string) error {
	return m.update(id, func(b *entity.Booking) {
		b.Status = entity.BookingStatusPaid
		if sessionID != nil {
			b.StripeSessionID = sessionID
		}
		if intentID != nil {
			b.StripePaymentIntentID = intentID
		}
	})
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) FindItem(ctx context.Context, docType entity.DocType, id string) (*entity.CatalogItem, error) {
	args := m.Called(ctx, docType, id)
	item, _ := args.Get(0).(*entity.CatalogItem)
	return item, args.Error(1)
}

func (m *mockCatalog) FindBySlug(ctx context.Context, docType entity.DocType, slug, locale string) (*entity.CatalogItem, error) {
	args := m.Called(ctx, docType, slug, locale)
	item, _ := args.Get(0).(*entity.CatalogItem)
	return item, args.Error(1)
}

func (m *mockCatalog) ListByType(ctx context.Context, docType entity.DocType, locale string, limit int) ([]*entity.CatalogItem, error) {
	args := m.Called(ctx, docType, locale, limit)
	items, _ := args.Get(0).([]*entity.CatalogItem)
	return items, args.Error(1)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*payment.CheckoutSession)
	return s, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) BookingConfirmation(ctx context.Context, b notify.BookingSummary) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockNotifier) OpsBookingAlert(ctx context.Context, b notify.BookingSummary) error {
	return m.Called(ctx, b).Error(0)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(payload []byte, signature string) (payment.Event, error) {
	args := m.Called(payload, signature)
	ev, _ := args.Get(0).(payment.Event)
	return ev, args.Error(1)
}

type mockEngine struct{ mock.Mock }

func (m *mockEngine) Execute(ctx context.Context, req search.Request) (*search.Result, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*search.Result)
	return res, args.Error(1)
}

func (m *mockEngine) Healthy(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// recorder collects published lifecycle events.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
