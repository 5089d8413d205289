package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/db"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
	"github.com/elevatehq/elevate-backend/internal/pkg/dberrors"
)

const organizationColumns = `id, name, slug, domain, email, phone, description, website,
	is_active, is_verified, max_users, max_courses, created_at, updated_at`

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *db.PostgresDB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(database *db.PostgresDB) *OrganizationRepository {
	return &OrganizationRepository{db: database}
}

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	var org models.Organization
	err := row.Scan(
		&org.ID,
		&org.Name,
		&org.Slug,
		&org.Domain,
		&org.Email,
		&org.Phone,
		&org.Description,
		&org.Website,
		&org.IsActive,
		&org.IsVerified,
		&org.MaxUsers,
		&org.MaxCourses,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning organization: %w", err)
	}
	return &org, nil
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	return scanOrganization(r.db.Pool.QueryRow(ctx, query, id))
}

// GetBySlug retrieves an organization by its globally-unique slug
func (r *OrganizationRepository) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1`
	return scanOrganization(r.db.Pool.QueryRow(ctx, query, slug))
}

// GetByDomain retrieves an organization by its globally-unique domain
func (r *OrganizationRepository) GetByDomain(ctx context.Context, domain string) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE domain = $1`
	return scanOrganization(r.db.Pool.QueryRow(ctx, query, domain))
}

// Create inserts a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (id, name, slug, domain, email, phone, description, website,
			is_active, is_verified, max_users, max_courses, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		org.ID, org.Name, org.Slug, org.Domain, org.Email, org.Phone,
		org.Description, org.Website, org.IsActive, org.IsVerified,
		org.MaxUsers, org.MaxCourses, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintOrgSlug) {
			return apperrors.ErrSlugAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintOrgDomain) {
			return apperrors.ErrDomainAlreadyExists
		}
		return fmt.Errorf("error creating organization: %w", err)
	}
	return nil
}

// Update updates an existing organization
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	query := `
		UPDATE organizations
		SET name = $1, slug = $2, domain = $3, email = $4, phone = $5, description = $6,
			website = $7, is_active = $8, is_verified = $9, max_users = $10, max_courses = $11,
			updated_at = NOW()
		WHERE id = $12
	`
	cmdTag, err := r.db.Pool.Exec(ctx, query,
		org.Name, org.Slug, org.Domain, org.Email, org.Phone, org.Description,
		org.Website, org.IsActive, org.IsVerified, org.MaxUsers, org.MaxCourses, org.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintOrgSlug) {
			return apperrors.ErrSlugAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintOrgDomain) {
			return apperrors.ErrDomainAlreadyExists
		}
		return fmt.Errorf("error updating organization: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}
	return nil
}

// Delete removes an organization
func (r *OrganizationRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting organization: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}
	return nil
}

// ListAll lists all organizations
func (r *OrganizationRepository) ListAll(ctx context.Context, skip, limit int) ([]*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations ORDER BY created_at OFFSET $1 LIMIT $2`
	rows, err := r.db.Pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orgs, nil
}
