// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrImageNotFound   = errors.New("image not found")
)

// Repository defines database operations for profiles and images
type Repository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, p *Profile) error
	UpdateLocation(ctx context.Context, userID int64, lat, lng float64) error

	GetImages(ctx context.Context, userID int64) ([]*Image, error)
	AddImage(ctx context.Context, img *Image) error
	DeleteImage(ctx context.Context, userID, imageID int64) (string, error)

	// MarkPhotosUpdated flags rejected interactions targeting this user so the
	// discovery engine gives them another look with the fresh photos.
	MarkPhotosUpdated(ctx context.Context, userID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a Postgres-backed profile repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	query := `
        SELECT user_id, description, gender, gender_interest, search_radius_km,
               birthdate, latitude, longitude, updated_at
        FROM profiles
        WHERE user_id = $1
    `

	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *postgresRepository) UpsertProfile(ctx context.Context, p *Profile) error {
	query := `
        INSERT INTO profiles (user_id, description, gender, gender_interest, search_radius_km, birthdate)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id)
        DO UPDATE SET
            description = $2,
            gender = $3,
            gender_interest = $4,
            search_radius_km = $5,
            birthdate = $6,
            updated_at = CURRENT_TIMESTAMP
        RETURNING updated_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.Description, p.Gender, p.GenderInterest,
		p.SearchRadiusKm, p.Birthdate,
	).Scan(&p.UpdatedAt)
}

func (r *postgresRepository) UpdateLocation(ctx context.Context, userID int64, lat, lng float64) error {
	query := `
        UPDATE profiles
        SET latitude = $2, longitude = $3, updated_at = CURRENT_TIMESTAMP
        WHERE user_id = $1
    `

	res, err := r.db.ExecContext(ctx, query, userID, lat, lng)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *postgresRepository) GetImages(ctx context.Context, userID int64) ([]*Image, error) {
	var images []*Image
	query := `
        SELECT id, user_id, file_key, flag, order_id, created_at
        FROM images
        WHERE user_id = $1
        ORDER BY order_id ASC
    `

	err := r.db.SelectContext(ctx, &images, query, userID)
	return images, err
}

func (r *postgresRepository) AddImage(ctx context.Context, img *Image) error {
	query := `
        INSERT INTO images (user_id, file_key, flag, order_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		img.UserID, img.FileKey, img.Flag, img.OrderID,
	).Scan(&img.ID, &img.CreatedAt)
}

func (r *postgresRepository) DeleteImage(ctx context.Context, userID, imageID int64) (string, error) {
	var fileKey string
	query := `
        DELETE FROM images
        WHERE id = $1 AND user_id = $2
        RETURNING file_key
    `

	err := r.db.GetContext(ctx, &fileKey, query, imageID, userID)
	if err == sql.ErrNoRows {
		return "", ErrImageNotFound
	}

	return fileKey, err
}

func (r *postgresRepository) MarkPhotosUpdated(ctx context.Context, userID int64) error {
	query := `
        UPDATE interactions
        SET candidate_photos_updated = TRUE
        WHERE candidate_id = $1 AND status = 'rejected'
    `

	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
