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

// AccommodationRepository implements repository.AccommodationRepository
// using PostgreSQL.
type AccommodationRepository struct {
	pool database.DBTX
}

// NewAccommodationRepository creates a new PostgreSQL-backed accommodation repository.
func NewAccommodationRepository(pool database.DBTX) *AccommodationRepository {
	return &AccommodationRepository{pool: pool}
}

const accommodationColumns = `id, owner_id, title, address, photos, description, features, extra_info, check_in_time, check_out_time, max_guests, price_cents, created_at, updated_at`

// Create inserts a new accommodation into the database.
func (r *AccommodationRepository) Create(ctx context.Context, a *domain.Accommodation) error {
	query := `
		INSERT INTO accommodations (` + accommodationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.OwnerID,
		a.Title,
		a.Address,
		a.Photos,
		a.Description,
		a.Features,
		a.ExtraInfo,
		a.CheckInTime,
		a.CheckOutTime,
		a.MaxGuests,
		a.PriceCents,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert accommodation: %w", err)
	}

	return nil
}

// GetByID retrieves an accommodation by its ID.
func (r *AccommodationRepository) GetByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	query := `
		SELECT ` + accommodationColumns + `
		FROM accommodations
		WHERE id = $1`

	var a domain.Accommodation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.OwnerID,
		&a.Title,
		&a.Address,
		&a.Photos,
		&a.Description,
		&a.Features,
		&a.ExtraInfo,
		&a.CheckInTime,
		&a.CheckOutTime,
		&a.MaxGuests,
		&a.PriceCents,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan accommodation: %w", err)
	}

	return &a, nil
}

// Update replaces the mutable fields of an accommodation. The owner_id
// column is deliberately absent from the SET list.
func (r *AccommodationRepository) Update(ctx context.Context, a *domain.Accommodation) error {
	a.UpdatedAt = touchUpdatedAt()

	query := `
		UPDATE accommodations
		SET title = $1, address = $2, photos = $3, description = $4, features = $5,
		    extra_info = $6, check_in_time = $7, check_out_time = $8, max_guests = $9,
		    price_cents = $10, updated_at = $11
		WHERE id = $12`

	ct, err := r.pool.Exec(ctx, query,
		a.Title,
		a.Address,
		a.Photos,
		a.Description,
		a.Features,
		a.ExtraInfo,
		a.CheckInTime,
		a.CheckOutTime,
		a.MaxGuests,
		a.PriceCents,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("update accommodation: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("accommodation", a.ID)
	}

	return nil
}

// ListByOwner returns all accommodations owned by the given user, newest first.
func (r *AccommodationRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Accommodation, error) {
	query := `
		SELECT ` + accommodationColumns + `
		FROM accommodations
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list accommodations by owner: %w", err)
	}
	defer rows.Close()

	return scanAccommodations(rows)
}

// ListAll returns every accommodation, newest first.
func (r *AccommodationRepository) ListAll(ctx context.Context) ([]domain.Accommodation, error) {
	query := `
		SELECT ` + accommodationColumns + `
		FROM accommodations
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accommodations: %w", err)
	}
	defer rows.Close()

	return scanAccommodations(rows)
}

func scanAccommodations(rows pgx.Rows) ([]domain.Accommodation, error) {
	var accs []domain.Accommodation
	for rows.Next() {
		var a domain.Accommodation
		if err := rows.Scan(
			&a.ID,
			&a.OwnerID,
			&a.Title,
			&a.Address,
			&a.Photos,
			&a.Description,
			&a.Features,
			&a.ExtraInfo,
			&a.CheckInTime,
			&a.CheckOutTime,
			&a.MaxGuests,
			&a.PriceCents,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan accommodation row: %w", err)
		}
		accs = append(accs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accommodation rows: %w", err)
	}
	return accs, nil
}
