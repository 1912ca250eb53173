package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// OrderStatus mirrors the payment gateway status vocabulary.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusApproved   OrderStatus = "approved"
	OrderStatusInProcess  OrderStatus = "in_process"
	OrderStatusRejected   OrderStatus = "rejected"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusChargeback OrderStatus = "charged_back"
)

// Terminal reports whether the status can no longer change through the
// normal payment flow.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusApproved, OrderStatusRejected, OrderStatusCancelled,
		OrderStatusRefunded, OrderStatusChargeback:
		return true
	}
	return false
}

// OrderItems stores the cart snapshot captured at checkout as JSONB.
type OrderItems []CartItem

// Scan implements sql.Scanner.
func (o *OrderItems) Scan(src interface{}) error {
	return scanJSON(src, o)
}

// Value implements driver.Valuer.
func (o OrderItems) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// Order is a checkout record. ExternalReference is the stable id handed to
// the payment gateway; webhook updates key on it idempotently.
type Order struct {
	ID                int         `db:"id" json:"id"`
	ExternalReference string      `db:"external_reference" json:"externalReference"`
	PaymentID         *int64      `db:"payment_id" json:"paymentId,omitempty"`
	Status            OrderStatus `db:"status" json:"status"`
	StatusDetail      string      `db:"status_detail" json:"statusDetail,omitempty"`
	Subtotal          int         `db:"subtotal" json:"subtotal"`
	Currency          Currency    `db:"currency" json:"currency"`
	PayerEmail        string      `db:"payer_email" json:"payerEmail"`
	Items             OrderItems  `db:"items" json:"items"`
	CreatedAt         time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updatedAt"`
}
