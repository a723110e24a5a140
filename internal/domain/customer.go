package domain

import "time"

// Customer represents a client of a business
type Customer struct {
	ID         int64
	BusinessID int64
	FullName   string
	Email      *string
	Phone      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
