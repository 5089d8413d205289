package dto

// CreateOrganizationRequest represents tenant creation data
type CreateOrganizationRequest struct {
	Name   string  `json:"name" binding:"required"`
	Slug   string  `json:"slug" binding:"required"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Domain *string `json:"domain,omitempty"`
}

// ValidateSlugRequest checks slug availability before creation
type ValidateSlugRequest struct {
	Slug      string `json:"slug" binding:"required"`
	ExcludeID string `json:"excludeId,omitempty"`
}

// SlugAvailabilityResponse reports whether a slug is free to use
type SlugAvailabilityResponse struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
}
