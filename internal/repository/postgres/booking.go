package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Buyaki01/airbnb-api/internal/domain"
	"github.com/Buyaki01/airbnb-api/pkg/database"
	apperrors "github.com/Buyaki01/airbnb-api/pkg/errors"
)

// BookingRepository implements repository.BookingRepository using PostgreSQL.
type BookingRepository struct {
	pool database.DBTX
}

// NewBookingRepository creates a new PostgreSQL-backed booking repository.
func NewBookingRepository(pool database.DBTX) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `id, accommodation_id, renter_id, check_in, check_out, guest_count, contact_name, contact_phone, price_cents, created_at`

// Create inserts a new booking into the database.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.AccommodationID,
		b.RenterID,
		b.CheckIn,
		b.CheckOut,
		b.GuestCount,
		b.ContactName,
		b.ContactPhone,
		b.PriceCents,
		b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

// GetByIDForRenter retrieves a booking scoped to its renter. The renter_id
// predicate makes another user's booking indistinguishable from a missing one.
func (r *BookingRepository) GetByIDForRenter(ctx context.Context, id, renterID string) (*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1 AND renter_id = $2`

	var b domain.Booking
	err := r.pool.QueryRow(ctx, query, id, renterID).Scan(
		&b.ID,
		&b.AccommodationID,
		&b.RenterID,
		&b.CheckIn,
		&b.CheckOut,
		&b.GuestCount,
		&b.ContactName,
		&b.ContactPhone,
		&b.PriceCents,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return &b, nil
}

// ListByRenter returns all bookings made by the given renter, newest first.
func (r *BookingRepository) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE renter_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, renterID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by renter: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID,
			&b.AccommodationID,
			&b.RenterID,
			&b.CheckIn,
			&b.CheckOut,
			&b.GuestCount,
			&b.ContactName,
			&b.ContactPhone,
			&b.PriceCents,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}
