package mercadopago

// Payment statuses returned by the Mercado Pago API.
const (
	StatusApproved   = "approved"
	StatusInProcess  = "in_process"
	StatusRejected   = "rejected"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
	StatusChargeback = "charged_back"
)

// Payer identifies the paying customer.
type Payer struct {
	Email string `json:"email"`
}

// PaymentRequest is the body for POST /v1/payments. The amount is the full
// charge in the store currency; Token is the tokenized card produced by the
// client-side SDK.
type PaymentRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Token             string  `json:"token"`
	Description       string  `json:"description,omitempty"`
	Installments      int     `json:"installments"`
	PaymentMethodID   string  `json:"payment_method_id,omitempty"`
	Payer             Payer   `json:"payer"`
	ExternalReference string  `json:"external_reference"`
}

// Payment is the gateway's payment resource, reduced to the fields the store
// consumes.
type Payment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"status_detail"`
	TransactionAmount float64 `json:"transaction_amount"`
	ExternalReference string  `json:"external_reference"`
	CurrencyID        string  `json:"currency_id"`
}

// APIError is the gateway's error body.
type APIError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}

// WebhookNotification is the body Mercado Pago posts to the webhook URL.
// Only payment notifications are processed; the payment itself is fetched
// by id afterwards.
type WebhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}
