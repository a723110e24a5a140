package domain

import "time"

// StaffMember represents a staff member whose calendar receives appointments
type StaffMember struct {
	ID         int64
	BusinessID int64
	FullName   string
	Email      *string
	Phone      *string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
