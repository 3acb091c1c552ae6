package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/venue-booking-service/internal/domain"
)

// VenueFilter captures venue search parameters.
type VenueFilter struct {
	CustodianID  *string
	Location     *string
	MinCapacity  *int
	NameContains *string
	Limit        int
	Offset       int
}

// VenueRepository encapsulates venue persistence.
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	Update(ctx context.Context, venue *domain.Venue) error
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	ListWithFilter(ctx context.Context, filter VenueFilter) ([]domain.Venue, error)
	ListByCustodian(ctx context.Context, custodianID string) ([]domain.Venue, error)
	Delete(ctx context.Context, id string) error
}

type venueRepository struct {
	pool *pgxpool.Pool
}

// NewVenueRepository instantiates repository.
func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &venueRepository{pool: pool}
}

func (r *venueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	const query = `
        INSERT INTO venues (name, location, capacity, custodian_id, description, amenities, image)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		venue.Name,
		venue.Location,
		venue.Capacity,
		venue.CustodianID,
		venue.Description,
		venue.Amenities,
		venue.Image,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
}

func (r *venueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	const query = `
        UPDATE venues SET name=$1, location=$2, capacity=$3, custodian_id=$4, description=$5,
            amenities=$6, image=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		venue.Name,
		venue.Location,
		venue.Capacity,
		venue.CustodianID,
		venue.Description,
		venue.Amenities,
		venue.Image,
		venue.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	const query = venueSelect + ` WHERE id=$1`
	var venue domain.Venue
	if err := scanVenue(r.pool.QueryRow(ctx, query, id), &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) ListByCustodian(ctx context.Context, custodianID string) ([]domain.Venue, error) {
	return r.ListWithFilter(ctx, VenueFilter{CustodianID: &custodianID})
}

func (r *venueRepository) ListWithFilter(ctx context.Context, filter VenueFilter) ([]domain.Venue, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustodianID != nil {
		args = append(args, *filter.CustodianID)
		clauses = append(clauses, fmt.Sprintf("custodian_id=$%d", len(args)))
	}
	if filter.Location != nil {
		args = append(args, *filter.Location)
		clauses = append(clauses, fmt.Sprintf("LOWER(location)=LOWER($%d)", len(args)))
	}
	if filter.MinCapacity != nil {
		args = append(args, *filter.MinCapacity)
		clauses = append(clauses, fmt.Sprintf("capacity >= $%d", len(args)))
	}
	if filter.NameContains != nil && strings.TrimSpace(*filter.NameContains) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.NameContains))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY name", venueSelect, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Venue
	for rows.Next() {
		var venue domain.Venue
		if err := scanVenue(rows, &venue); err != nil {
			return nil, err
		}
		result = append(result, venue)
	}
	return result, rows.Err()
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM venues WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const venueSelect = `
        SELECT id, name, location, capacity, custodian_id, description, amenities, image, created_at, updated_at
        FROM venues`

func scanVenue(row pgx.Row, venue *domain.Venue) error {
	return row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Location,
		&venue.Capacity,
		&venue.CustodianID,
		&venue.Description,
		&venue.Amenities,
		&venue.Image,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
}
