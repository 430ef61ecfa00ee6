package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound             = errors.New("order not found")
	ErrDuplicateTransaction = errors.New("transaction id already exists")
)

// Repository is the canonical data-access contract for orders. Every write is
// a single-row statement; row-level atomicity in Postgres is the only
// concurrency primitive the orchestrator relies on.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Order, error)
	MarkPaid(ctx context.Context, transactionID string) error
	DeleteUnpaid(ctx context.Context, transactionID string) error
}

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, o *Order) error {
	if o.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return fmt.Errorf("repository: failed to generate order ID: %w", err)
		}
		o.ID = id
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO orders (id, product_id, total_price, user_name, email, city, address, zip_code, colors, paid_status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		o.ID,
		o.ProductID,
		o.TotalPrice,
		o.UserName,
		o.Email,
		o.City,
		o.Address,
		o.ZipCode,
		o.Colors,
		o.PaidStatus,
		o.TransactionID,
		o.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateTransaction
		}
		return fmt.Errorf("repository: failed to insert order %s: %w", o.TransactionID, err)
	}

	return nil
}

func (r *postgresRepository) GetByTransactionID(ctx context.Context, transactionID string) (*Order, error) {
	query := `
		SELECT id, product_id, total_price, user_name, email, city, address, zip_code, colors, paid_status, transaction_id, created_at
		FROM orders
		WHERE transaction_id = $1
	`

	var o Order
	err := r.db.QueryRow(ctx, query, transactionID).Scan(
		&o.ID,
		&o.ProductID,
		&o.TotalPrice,
		&o.UserName,
		&o.Email,
		&o.City,
		&o.Address,
		&o.ZipCode,
		&o.Colors,
		&o.PaidStatus,
		&o.TransactionID,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by transaction id %s: %w", transactionID, err)
	}

	return &o, nil
}

// MarkPaid flips paid_status to true. The update is idempotent: a repeated
// call matches the same row again and remains a success.
func (r *postgresRepository) MarkPaid(ctx context.Context, transactionID string) error {
	query := `UPDATE orders SET paid_status = TRUE WHERE transaction_id = $1`

	cmdTag, err := r.db.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("repository: failed to mark order %s paid: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteUnpaid removes a pending order. Paid rows never match, so a failure
// callback arriving after a success callback cannot destroy a paid order.
func (r *postgresRepository) DeleteUnpaid(ctx context.Context, transactionID string) error {
	query := `DELETE FROM orders WHERE transaction_id = $1 AND paid_status = FALSE`

	cmdTag, err := r.db.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("repository: failed to delete order %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
