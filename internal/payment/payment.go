package payment

import "context"

// GatewayOrderPaid is the authoritative remote status that allows a local
// order to be marked as paid.
const GatewayOrderPaid = "paid"

// LineItem is a single priced line in a redirect-checkout session. Amounts
// are expressed in the smallest currency unit.
type LineItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

// SessionRequest describes a redirect-checkout session. Success and cancel
// URLs are parameterized by the local order id before the call.
type SessionRequest struct {
	Currency   string     `json:"currency"`
	LineItems  []LineItem `json:"line_items"`
	SuccessURL string     `json:"success_url"`
	CancelURL  string     `json:"cancel_url"`
}

// Session is the created remote checkout session.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// GatewayOrder is a remote order on the collect-style provider. Receipt
// carries the local order id for reconciliation.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CheckoutGateway is the redirect-checkout provider: the shopper is sent to
// the session URL and the provider calls back with a success flag.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// CollectGateway is the order/verify provider: a remote order is created up
// front and its authoritative status fetched after client-side payment.
type CollectGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error)
	FetchOrder(ctx context.Context, id string) (*GatewayOrder, error)
}
