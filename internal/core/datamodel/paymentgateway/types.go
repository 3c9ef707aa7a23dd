package paymentgateway

// OrderRequest is the outbound order-creation payload. Amount is in minor
// currency units (paise for INR).
type OrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Order is the gateway's order handle. It is not persisted beyond the
// reference stored on the pending ledger entry.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Callback is the asynchronous confirmation delivered by the gateway after
// the payer completes checkout.
type Callback struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}
