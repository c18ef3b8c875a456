package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lenderapp/lender/internal/model"
	"github.com/lenderapp/lender/internal/repository/base"
)

type ProfileRepository struct {
	db base.DBTX
}

func NewProfileRepository(db base.DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID returns the profile, or nil when it does not exist.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT id, email, phone, full_name, is_admin, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var profile model.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Phone,
		&profile.FullName,
		&profile.IsAdmin,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by id: %w", err)
	}

	return &profile, nil
}
