package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vuhd/tourbooking/internal/domain"
)

var ErrTourNotFound = errors.New("tour not found")

type TourRepository interface {
	List(ctx context.Context) ([]domain.Tour, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tour, error)
	GetByID(ctx context.Context, id string) (*domain.Tour, error)
}

type PGTourRepository struct {
	db *pgxpool.Pool
}

func NewTourRepository(db *pgxpool.Pool) TourRepository {
	return &PGTourRepository{db: db}
}

const tourColumns = `id, slug, title, seats, price, discount, additional_prices, allow_type_people, category_id, created_at, updated_at`

func (r *PGTourRepository) List(ctx context.Context) ([]domain.Tour, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tourColumns+` FROM tours ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tours := make([]domain.Tour, 0)
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		tours = append(tours, *t)
	}
	return tours, rows.Err()
}

func (r *PGTourRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tourColumns+` FROM tours WHERE slug=$1`, slug)
	t, err := scanTour(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTourNotFound
	}
	return t, err
}

func (r *PGTourRepository) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tourColumns+` FROM tours WHERE id=$1`, id)
	t, err := scanTour(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTourNotFound
	}
	return t, err
}

// additional_prices and allow_type_people are stored as jsonb in the wire
// shape, populated references included.
func scanTour(row pgx.Row) (*domain.Tour, error) {
	var t domain.Tour
	var additional, allow []byte
	if err := row.Scan(&t.ID, &t.Slug, &t.Title, &t.Seats, &t.Price, &t.Discount, &additional, &allow, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if len(additional) > 0 {
		if err := json.Unmarshal(additional, &t.AdditionalPrices); err != nil {
			return nil, err
		}
	}
	if len(allow) > 0 {
		if err := json.Unmarshal(allow, &t.AllowTypePeople); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

var _ TourRepository = (*PGTourRepository)(nil)
