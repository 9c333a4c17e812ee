package repository

import (
	"context"
	"errors"
	"fmt"

	"fairway-booking/internal/data/entity"
	"fairway-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus) (int64, error)

	UpdateTotals(ctx context.Context, id uuid.UUID, totalAmount float64, currency string) error
	UpdateSessionID(ctx context.Context, id uuid.UUID, sessionID string) error
	UpdateDetails(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	MarkPaid(ctx context.Context, id uuid.UUID, sessionID, paymentIntentID *string) error
}

const bookingColumns = `
	id, reference, user_id, booking_type, item_id, item_type, check_in, check_out,
	duration_days, guests, rooms, adults, children, infants, special_requests,
	contact_info, total_amount, currency, stripe_session_id, stripe_payment_intent_id,
	status, created_at, updated_at`

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.UserID,
		&b.Type,
		&b.ItemID,
		&b.ItemType,
		&b.CheckIn,
		&b.CheckOut,
		&b.DurationDays,
		&b.Guests,
		&b.Rooms,
		&b.Adults,
		&b.Children,
		&b.Infants,
		&b.SpecialRequests,
		&b.ContactInfo,
		&b.TotalAmount,
		&b.Currency,
		&b.StripeSessionID,
		&b.StripePaymentIntentID,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := r.db.Exec(ctx, query,
		b.ID,
		b.Reference,
		b.UserID,
		b.Type,
		b.ItemID,
		b.ItemType,
		b.CheckIn,
		b.CheckOut,
		b.DurationDays,
		b.Guests,
		b.Rooms,
		b.Adults,
		b.Children,
		b.Infants,
		b.SpecialRequests,
		b.ContactInfo,
		b.TotalAmount,
		b.Currency,
		b.StripeSessionID,
		b.StripePaymentIntentID,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", b.Reference),
			zap.String("user_id", b.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", b.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return b, nil
}

func (r *bookingRepository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE stripe_payment_intent_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	b, err := scanBooking(r.db.QueryRow(ctx, query, paymentIntentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by payment intent",
			zap.Error(err), zap.String("payment_intent_id", paymentIntentID))
		return nil, fmt.Errorf("find booking by payment intent %s: %w", paymentIntentID, err)
	}

	return b, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND ($2::text IS NULL OR status = $2::text)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, userID, statusArg(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID, err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0, limit)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND ($2::text IS NULL OR status = $2::text)`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID, statusArg(status)).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID, err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateTotals(ctx context.Context, id uuid.UUID, totalAmount float64, currency string) error {
	query := `UPDATE bookings SET total_amount = $2, currency = $3, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "update totals", id, query, id, totalAmount, currency)
}

func (r *bookingRepository) UpdateSessionID(ctx context.Context, id uuid.UUID, sessionID string) error {
	query := `UPDATE bookings SET stripe_session_id = $2, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "update session id", id, query, id, sessionID)
}

func (r *bookingRepository) UpdateDetails(ctx context.Context, b *entity.Booking) error {
	query := `
		UPDATE bookings
		SET special_requests = $2, contact_info = $3, guests = $4, rooms = $5, updated_at = $6
		WHERE id = $1
	`
	return r.exec(ctx, "update details", b.ID, query,
		b.ID, b.SpecialRequests, b.ContactInfo, b.Guests, b.Rooms, b.UpdatedAt)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "update status to "+string(status), id, query, id, status)
}

// MarkPaid sets PAID and records whichever gateway ids are provided.
func (r *bookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, sessionID, paymentIntentID *string) error {
	query := `
		UPDATE bookings
		SET status = $2,
		    stripe_session_id = COALESCE($3, stripe_session_id),
		    stripe_payment_intent_id = COALESCE($4, stripe_payment_intent_id),
		    updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, "mark paid", id, query, id, entity.BookingStatusPaid, sessionID, paymentIntentID)
}

func (r *bookingRepository) exec(ctx context.Context, op string, id uuid.UUID, query string, args ...any) error {
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("%s for booking %s: %w", op, id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return nil
}

func statusArg(status *entity.BookingStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}
