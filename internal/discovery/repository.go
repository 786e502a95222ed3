package discovery

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/heartlink-app/heartlink-backend/internal/geo"
)

// CandidatePageSize caps how many candidates one call returns. There is no
// pagination cursor: repeated calls may return overlapping sets. Documented
// limitation, not a defect.
const CandidatePageSize = 20

// Repository defines the database reads and writes for discovery
type Repository interface {
	// GetUserProfile returns the discovery view of one user
	GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error)

	// FindCandidates returns a page of candidates for the requester,
	// pre-filtered by bounding box, mutual gender compatibility, the
	// profile-image gate and prior-interaction exclusions, capped at
	// CandidatePageSize. Each returned candidate includes a location and
	// at least one profile-flagged image.
	FindCandidates(ctx context.Context, requester *UserProfile, box geo.BoundingBox) ([]*UserProfile, error)

	// RecordInteraction upserts an approve/reject decision
	RecordInteraction(ctx context.Context, rec *InteractionRecord) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a Postgres-backed discovery repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	var p UserProfile
	query := `
        SELECT user_id, description, gender, gender_interest, search_radius_km,
               birthdate, latitude, longitude
        FROM profiles
        WHERE user_id = $1
    `

	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *postgresRepository) FindCandidates(ctx context.Context, requester *UserProfile, box geo.BoundingBox) ([]*UserProfile, error) {
	var candidates []*UserProfile

	// Mirrors the predicates in preferences.go: mutual gender compatibility
	// with the "everyone" wildcard, a profile-flagged image, no approved
	// interaction, and no rejected interaction unless photos were updated
	// since.
	query := `
        SELECT p.user_id, p.description, p.gender, p.gender_interest,
               p.search_radius_km, p.birthdate, p.latitude, p.longitude
        FROM profiles p
        WHERE p.user_id != $1
          AND p.latitude BETWEEN $2 AND $3
          AND p.longitude BETWEEN $4 AND $5
          AND (p.gender = $6 OR $6 = 'everyone')
          AND (p.gender_interest = $7 OR p.gender_interest = 'everyone')
          AND EXISTS (
              SELECT 1 FROM images i
              WHERE i.user_id = p.user_id AND i.flag = 'profile'
          )
          AND NOT EXISTS (
              SELECT 1 FROM interactions x
              WHERE x.requester_id = $1
                AND x.candidate_id = p.user_id
                AND (
                    x.status = 'approved'
                    OR (x.status = 'rejected' AND x.candidate_photos_updated = FALSE)
                )
          )
        LIMIT $8
    `

	err := r.db.SelectContext(
		ctx, &candidates, query,
		requester.ID,
		box.MinLat, box.MaxLat, box.MinLon, box.MaxLon,
		requester.GenderInterest, requester.Gender,
		CandidatePageSize,
	)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return candidates, nil
	}

	if err := r.attachImages(ctx, candidates); err != nil {
		return nil, err
	}

	return candidates, nil
}

// attachImages loads each candidate's images in a single query, preserving
// per-candidate order by order_id.
func (r *postgresRepository) attachImages(ctx context.Context, candidates []*UserProfile) error {
	ids := make([]int64, len(candidates))
	byID := make(map[int64]*UserProfile, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
		byID[c.ID] = c
	}

	var imgs []*Image
	query := `
        SELECT id, user_id, file_key, flag, order_id
        FROM images
        WHERE user_id = ANY($1)
        ORDER BY user_id, order_id ASC
    `

	if err := r.db.SelectContext(ctx, &imgs, query, pq.Array(ids)); err != nil {
		return err
	}

	for _, img := range imgs {
		if c, ok := byID[img.UserID]; ok {
			c.Images = append(c.Images, img)
		}
	}

	return nil
}

func (r *postgresRepository) RecordInteraction(ctx context.Context, rec *InteractionRecord) error {
	query := `
        INSERT INTO interactions (requester_id, candidate_id, status, candidate_photos_updated)
        VALUES ($1, $2, $3, FALSE)
        ON CONFLICT (requester_id, candidate_id)
        DO UPDATE SET
            status = $3,
            candidate_photos_updated = FALSE,
            created_at = CURRENT_TIMESTAMP
        RETURNING created_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		rec.RequesterID, rec.CandidateID, rec.Status,
	).Scan(&rec.CreatedAt)
}
