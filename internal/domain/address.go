package domain

import "time"

// Address is a delivery address. Phone is a 10-digit number and Pincode a
// 6-digit postal code; both are enforced at the request boundary.
type Address struct {
	ID           string    `json:"id,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	LocalAddress string    `json:"local_address"`
	Pincode      string    `json:"pincode"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}
