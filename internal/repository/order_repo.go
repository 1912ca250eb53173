package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/estampaviva/estampa-api/internal/models"
)

// OrderRepository handles data access for checkout orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	const q = `
        INSERT INTO orders (external_reference, status, status_detail, subtotal, currency, payer_email, items)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		order.ExternalReference,
		order.Status,
		order.StatusDetail,
		order.Subtotal,
		order.Currency,
		order.PayerEmail,
		order.Items,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

// GetByExternalReference returns the order with the given external reference.
func (r *OrderRepository) GetByExternalReference(ref string) (*models.Order, error) {
	const q = `SELECT * FROM orders WHERE external_reference = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var order models.Order
	if err := stmt.Get(&order, ref); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &order, nil
}

// SetPayment records the gateway payment id and initial status after charge
// creation.
func (r *OrderRepository) SetPayment(ref string, paymentID int64, status models.OrderStatus, statusDetail string) error {
	const q = `
        UPDATE orders
        SET payment_id = $2, status = $3, status_detail = $4, updated_at = NOW()
        WHERE external_reference = $1`
	_, err := r.db.Exec(q, ref, paymentID, status, statusDetail)
	return err
}

// UpdateStatus applies a payment status transition keyed by external
// reference. Re-applying the same status is a no-op, which keeps webhook
// redeliveries idempotent.
func (r *OrderRepository) UpdateStatus(ref string, status models.OrderStatus, statusDetail string) error {
	const q = `
        UPDATE orders
        SET status = $2, status_detail = $3, updated_at = NOW()
        WHERE external_reference = $1 AND status != $2`
	_, err := r.db.Exec(q, ref, status, statusDetail)
	return err
}

// GetStaleInProcess returns orders still awaiting a terminal payment status
// whose last update is older than staleAfter but younger than maxAge.
func (r *OrderRepository) GetStaleInProcess(staleAfter, maxAge time.Duration, limit int) ([]models.Order, error) {
	const q = `
        SELECT * FROM orders
        WHERE status IN ('pending', 'in_process')
        AND payment_id IS NOT NULL
        AND updated_at < NOW() - make_interval(secs => $1)
        AND created_at > NOW() - make_interval(secs => $2)
        ORDER BY updated_at ASC
        LIMIT $3`

	var orders []models.Order
	if err := r.db.Select(&orders, q, staleAfter.Seconds(), maxAge.Seconds(), limit); err != nil {
		return nil, err
	}
	return orders, nil
}
