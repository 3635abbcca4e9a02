package domain

import "errors"

// Order fulfilment states. The set is closed and transitions are checked
// against the table below; status only moves forward.
const (
	StatusPlaced         = "Order Placed"
	StatusPacking        = "Packing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
)

var ErrInvalidStatusTransition = errors.New("invalid status transition")

var statusTransitions = map[string][]string{
	StatusPlaced:         {StatusPacking, StatusShipped},
	StatusPacking:        {StatusShipped},
	StatusShipped:        {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {},
}

// IsOrderStatus reports whether s is a member of the closed status set.
func IsOrderStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
