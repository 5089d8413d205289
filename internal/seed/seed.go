package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/elevatehq/elevate-backend/internal/app/models"
	appRepos "github.com/elevatehq/elevate-backend/internal/app/repositories"
	"github.com/elevatehq/elevate-backend/internal/db"
)

const (
	defaultOrgSlug    = "default"
	defaultAdminEmail = "admin@elevate.local"
)

// CreateDefaultData creates the default organization and its admin account so
// a fresh install is usable immediately. Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	organizationRepo := appRepos.NewOrganizationRepository(database)
	userRepo := appRepos.NewUserRepository(database)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	org, err := organizationRepo.GetBySlug(ctx, defaultOrgSlug)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking default organization")
		return err
	}

	if org == nil {
		now := time.Now().UTC()
		org = &appModels.Organization{
			ID:         uuid.NewString(),
			Name:       "Default Organization",
			Slug:       defaultOrgSlug,
			IsActive:   true,
			IsVerified: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := organizationRepo.Create(ctx, org); err != nil {
			lgr.Error().Err(err).Msg("Error creating default organization")
			return err
		}
		lgr.Info().Str("organizationID", org.ID).Msg("Default organization created")
	}

	admin, err := userRepo.GetByEmailAndTenant(ctx, defaultAdminEmail, org.ID)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if admin == nil {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			now := time.Now().UTC()
			admin = &appModels.User{
				ID:           uuid.NewString(),
				TenantID:     org.ID,
				Email:        defaultAdminEmail,
				PasswordHash: string(hashedPassword),
				FirstName:    "System",
				LastName:     "Administrator",
				Role:         appModels.RoleAdmin,
				IsActive:     true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("adminID", admin.ID).Msg("Default admin user created successfully")
			}
		}
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
