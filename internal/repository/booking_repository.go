package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/venue-booking-service/internal/domain"
)

// BookingFilter captures booking search parameters. OwnerCustodianID scopes
// through current venue ownership, not the per-booking custodian snapshot.
type BookingFilter struct {
	UserID           *string
	VenueID          *string
	OwnerCustodianID *string
	Statuses         []domain.BookingStatus
	Date             *time.Time
	TimeSlot         *string
	Limit            int
	Offset           int
}

// BookingRepository encapsulates booking persistence. Create and Update run
// against the slot-conflict partial unique index, so an insert or a
// date/slot move that collides with a blocking booking fails atomically
// with a unique violation.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (reference, user_id, venue_id, custodian_id, event_name, event_type, description, event_date, time_slot, capacity, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		booking.Reference,
		booking.UserID,
		booking.VenueID,
		booking.CustodianID,
		booking.EventName,
		booking.EventType,
		booking.Description,
		booking.Date,
		booking.TimeSlot,
		booking.Capacity,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	const query = `
        UPDATE bookings SET event_name=$1, event_type=$2, description=$3, event_date=$4,
            time_slot=$5, capacity=$6, status=$7, cancelled_by=$8, cancelled_at=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		booking.EventName,
		booking.EventType,
		booking.Description,
		booking.Date,
		booking.TimeSlot,
		booking.Capacity,
		booking.Status,
		booking.CancelledBy,
		booking.CancelledAt,
		booking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const query = bookingSelect + ` WHERE b.id=$1`
	var booking domain.Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, id), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	base := bookingSelect
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerCustodianID != nil {
		base += ` JOIN venues v ON v.id = b.venue_id`
		args = append(args, *filter.OwnerCustodianID)
		clauses = append(clauses, fmt.Sprintf("v.custodian_id=$%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("b.user_id=$%d", len(args)))
	}
	if filter.VenueID != nil {
		args = append(args, *filter.VenueID)
		clauses = append(clauses, fmt.Sprintf("b.venue_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("b.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Date != nil {
		args = append(args, domain.DateOnly(*filter.Date))
		clauses = append(clauses, fmt.Sprintf("b.event_date=$%d", len(args)))
	}
	if filter.TimeSlot != nil {
		args = append(args, *filter.TimeSlot)
		clauses = append(clauses, fmt.Sprintf("b.time_slot=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY b.event_date, b.time_slot", base, strings.Join(clauses, " AND "))
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
	return scanBookings(rows)
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const bookingSelect = `
        SELECT b.id, b.reference, b.user_id, b.venue_id, b.custodian_id, b.event_name, b.event_type,
               b.description, b.event_date, b.time_slot, b.capacity, b.status, b.cancelled_by,
               b.cancelled_at, b.created_at, b.updated_at
        FROM bookings b`

func scanBooking(row pgx.Row, booking *domain.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.VenueID,
		&booking.CustodianID,
		&booking.EventName,
		&booking.EventType,
		&booking.Description,
		&booking.Date,
		&booking.TimeSlot,
		&booking.Capacity,
		&booking.Status,
		&booking.CancelledBy,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var result []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}
