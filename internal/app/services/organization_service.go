package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
)

// OrganizationService handles tenant lifecycle. Organizations are the only
// entities without a tenant scope; their slug and domain are unique globally.
type OrganizationService struct {
	organizationRepo OrganizationRepository
}

// NewOrganizationService creates a new organization service instance
func NewOrganizationService(organizationRepo OrganizationRepository) *OrganizationService {
	return &OrganizationService{organizationRepo: organizationRepo}
}

// CreateOrganizationParams carries the input for CreateOrganization
type CreateOrganizationParams struct {
	Name   string
	Slug   string
	Email  *string
	Domain *string
}

// CreateOrganization creates a new tenant after validating slug and domain
// uniqueness across all tenants.
func (s *OrganizationService) CreateOrganization(ctx context.Context, params CreateOrganizationParams) (*models.Organization, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperrors.NewBadRequestError("organization name cannot be empty")
	}
	if strings.TrimSpace(params.Slug) == "" {
		return nil, apperrors.NewBadRequestError("organization slug cannot be empty")
	}

	existing, err := s.organizationRepo.GetBySlug(ctx, params.Slug)
	if err != nil {
		return nil, fmt.Errorf("error checking slug: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrSlugAlreadyExists
	}

	if params.Domain != nil && *params.Domain != "" {
		existingDomain, err := s.organizationRepo.GetByDomain(ctx, *params.Domain)
		if err != nil {
			return nil, fmt.Errorf("error checking domain: %w", err)
		}
		if existingDomain != nil {
			return nil, apperrors.ErrDomainAlreadyExists
		}
	}

	now := time.Now().UTC()
	org := &models.Organization{
		ID:        uuid.NewString(),
		Name:      params.Name,
		Slug:      params.Slug,
		Email:     params.Email,
		Domain:    params.Domain,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.organizationRepo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("error creating organization: %w", err)
	}

	return org, nil
}

// GetOrganization retrieves an organization by ID
func (s *OrganizationService) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	org, err := s.organizationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving organization: %w", err)
	}
	if org == nil {
		return nil, apperrors.ErrOrganizationNotFound
	}
	return org, nil
}

// GetOrganizationBySlug retrieves an organization by its slug
func (s *OrganizationService) GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	org, err := s.organizationRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("error retrieving organization: %w", err)
	}
	if org == nil {
		return nil, apperrors.ErrOrganizationNotFound
	}
	return org, nil
}

// ValidateSlug reports whether a slug is available, optionally excluding one
// organization (for updates).
func (s *OrganizationService) ValidateSlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	existing, err := s.organizationRepo.GetBySlug(ctx, slug)
	if err != nil {
		return false, fmt.Errorf("error checking slug: %w", err)
	}
	if existing == nil {
		return true, nil
	}
	return excludeID != "" && existing.ID == excludeID, nil
}

// ValidateDomain reports whether a domain is available, optionally excluding
// one organization (for updates).
func (s *OrganizationService) ValidateDomain(ctx context.Context, domain string, excludeID string) (bool, error) {
	existing, err := s.organizationRepo.GetByDomain(ctx, domain)
	if err != nil {
		return false, fmt.Errorf("error checking domain: %w", err)
	}
	if existing == nil {
		return true, nil
	}
	return excludeID != "" && existing.ID == excludeID, nil
}

// ListOrganizations lists all organizations
func (s *OrganizationService) ListOrganizations(ctx context.Context, skip, limit int) ([]*models.Organization, error) {
	orgs, err := s.organizationRepo.ListAll(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing organizations: %w", err)
	}
	return orgs, nil
}
