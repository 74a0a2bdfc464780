package models

import "time"

// User is a registered tourist. The pipeline treats the id as an opaque key.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
