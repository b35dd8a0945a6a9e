package domain

import "time"

// Order tracking stages, in delivery order.
const (
	OrderStatusConfirmed      = "Confirmed"
	OrderStatusShipped        = "Shipped"
	OrderStatusOutForDelivery = "Out for Delivery"
	OrderStatusDelivered      = "Delivered"
)

// orderStages lists the tracking stages from first to terminal.
var orderStages = []string{
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// OrderStages returns the tracking stages in delivery order.
func OrderStages() []string {
	return append([]string(nil), orderStages...)
}

// IsValidOrderStatus checks whether the given status is a known stage.
func IsValidOrderStatus(status string) bool {
	for _, s := range orderStages {
		if s == status {
			return true
		}
	}
	return false
}

// NextOrderStatus returns the stage after the given one. Delivered is
// terminal and advances to itself. An unknown status restarts at Confirmed.
func NextOrderStatus(status string) string {
	for i, s := range orderStages {
		if s == status {
			if i == len(orderStages)-1 {
				return s
			}
			return orderStages[i+1]
		}
	}
	return OrderStatusConfirmed
}

// StartingOrderStatus resolves the stage a reloaded tracking session starts
// from. A persisted "Delivered" (or anything unknown) falls back to
// Confirmed so a fresh session never opens on the terminal stage.
func StartingOrderStatus(saved string) string {
	if saved == "" || saved == OrderStatusDelivered || !IsValidOrderStatus(saved) {
		return OrderStatusConfirmed
	}
	return saved
}

// PendingOrder is the checkout snapshot persisted to the session store:
// the cart contents, destination address, payment method, and subtotal at
// placement time. Once confirmed, the item set is immutable.
type PendingOrder struct {
	OrderID       string    `json:"order_id"`
	Cart          Cart      `json:"cart"`
	Address       Address   `json:"address"`
	PaymentMethod string    `json:"payment_method"`
	Subtotal      int64     `json:"subtotal"`
	PlacedAt      time.Time `json:"placed_at"`
}

// Order is the durable order record.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id,omitempty"`
	SessionID     string      `json:"session_id"`
	Items         []CartEntry `json:"items"`
	Subtotal      int64       `json:"subtotal"`
	Address       Address     `json:"address"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
