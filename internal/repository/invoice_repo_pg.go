package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vuhd/tourbooking/internal/domain"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByCode(ctx context.Context, code string) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error)
	UpdatePayment(ctx context.Context, id string, method domain.PaymentMethod, total int64, expiresAt time.Time) (*domain.Invoice, error)
	SetTransaction(ctx context.Context, id, transactionID string) error
	ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Invoice, error)
}

type PGInvoiceRepository struct {
	db *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) InvoiceRepository {
	return &PGInvoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_code, transaction_id, tour_id, departure_date, seat_for, seat_add_for,
	name_of_user, phone_number, email, address, province, ward, note, type_of_payment, total_price,
	status, expires_at, created_at, updated_at`

func (r *PGInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	seatFor, err := json.Marshal(invoice.SeatFor)
	if err != nil {
		return err
	}
	seatAddFor, err := json.Marshal(invoice.SeatAddFor)
	if err != nil {
		return err
	}

	invoice.Status = domain.InvoiceStatusPending
	return r.db.QueryRow(ctx, `INSERT INTO invoices
		(invoice_code, tour_id, departure_date, seat_for, seat_add_for, name_of_user, phone_number,
		 email, address, province, ward, note, type_of_payment, total_price, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`,
		invoice.InvoiceCode, invoice.TourID, invoice.DepartureDate, seatFor, seatAddFor,
		invoice.NameOfUser, invoice.PhoneNumber, invoice.Email, invoice.Address, invoice.Province,
		invoice.Ward, invoice.Note, invoice.TypeOfPayment, invoice.TotalPrice, invoice.Status,
		invoice.ExpiresAt).
		Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
}

func (r *PGInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row := r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id=$1`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	return inv, err
}

// GetByCode looks an invoice up by its external invoice code, the order id
// handed to payment gateways.
func (r *PGInvoiceRepository) GetByCode(ctx context.Context, code string) (*domain.Invoice, error) {
	row := r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_code=$1`, code)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	return inv, err
}

func (r *PGInvoiceRepository) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	row := r.db.QueryRow(ctx, `UPDATE invoices SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+invoiceColumns, status, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	return inv, err
}

func (r *PGInvoiceRepository) UpdatePayment(ctx context.Context, id string, method domain.PaymentMethod, total int64, expiresAt time.Time) (*domain.Invoice, error) {
	row := r.db.QueryRow(ctx, `UPDATE invoices SET type_of_payment=$1, total_price=$2, expires_at=$3, updated_at=now()
		WHERE id=$4 RETURNING `+invoiceColumns, method, total, expiresAt, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	return inv, err
}

func (r *PGInvoiceRepository) SetTransaction(ctx context.Context, id, transactionID string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE invoices SET transaction_id=$1, updated_at=now() WHERE id=$2`, transactionID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *PGInvoiceRepository) ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Invoice, error) {
	rows, err := r.db.Query(ctx, `UPDATE invoices SET status=$1, updated_at=now()
		WHERE status=$2 AND expires_at <= $3 RETURNING `+invoiceColumns,
		domain.InvoiceStatusExpired, domain.InvoiceStatusPending, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		expired = append(expired, *inv)
	}
	return expired, rows.Err()
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	var transactionID *string
	var seatFor, seatAddFor []byte
	if err := row.Scan(&inv.ID, &inv.InvoiceCode, &transactionID, &inv.TourID, &inv.DepartureDate,
		&seatFor, &seatAddFor, &inv.NameOfUser, &inv.PhoneNumber, &inv.Email, &inv.Address,
		&inv.Province, &inv.Ward, &inv.Note, &inv.TypeOfPayment, &inv.TotalPrice, &inv.Status,
		&inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	if transactionID != nil {
		inv.TransactionID = *transactionID
	}
	if len(seatFor) > 0 {
		if err := json.Unmarshal(seatFor, &inv.SeatFor); err != nil {
			return nil, err
		}
	}
	if len(seatAddFor) > 0 {
		if err := json.Unmarshal(seatAddFor, &inv.SeatAddFor); err != nil {
			return nil, err
		}
	}
	return &inv, nil
}

var _ InvoiceRepository = (*PGInvoiceRepository)(nil)
