package models

import "time"

// Organization represents a tenant institution. Every other entity carries the
// organization's ID as tenant_id; the organization is a scoping key, not a
// structural container.
type Organization struct {
	ID     string  `json:"id" db:"id"`
	Name   string  `json:"name" db:"name"`
	Slug   string  `json:"slug" db:"slug"`               // Globally unique
	Domain *string `json:"domain,omitempty" db:"domain"` // Globally unique, optional

	// Contact information
	Email *string `json:"email,omitempty" db:"email"`
	Phone *string `json:"phone,omitempty" db:"phone"`

	Description *string `json:"description,omitempty" db:"description"`
	Website     *string `json:"website,omitempty" db:"website"`

	IsActive   bool `json:"isActive" db:"is_active"`
	IsVerified bool `json:"isVerified" db:"is_verified"`

	// Limits (nil means unlimited)
	MaxUsers   *int `json:"maxUsers,omitempty" db:"max_users"`
	MaxCourses *int `json:"maxCourses,omitempty" db:"max_courses"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
