package discovery

import (
	"time"

	"github.com/heartlink-app/heartlink-backend/internal/geo"
)

// Gender values
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Gender interest values; "everyone" is the wildcard
const (
	InterestEveryone = "everyone"
)

// Interaction statuses
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// UserProfile is the discovery view of a user: identity, preferences and
// location. Latitude/Longitude are nullable because users may not have shared
// a location yet.
type UserProfile struct {
	ID             int64     `db:"user_id"`
	Description    string    `db:"description"`
	Gender         string    `db:"gender"`
	GenderInterest string    `db:"gender_interest"`
	SearchRadiusKm float64   `db:"search_radius_km"`
	Birthdate      time.Time `db:"birthdate"`
	Latitude       *float64  `db:"latitude"`
	Longitude      *float64  `db:"longitude"`

	// Populated by the repository for candidate pages
	Images []*Image
}

// Location returns the profile's geo point and whether one is set
func (p *UserProfile) Location() (geo.Point, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *p.Latitude, Longitude: *p.Longitude}, true
}

// Image is a candidate photo. FileKey is the stable storage key; URL is filled
// in per request by the image URL resolver.
type Image struct {
	ID      int64  `json:"id" db:"id"`
	UserID  int64  `json:"user_id" db:"user_id"`
	Flag    string `json:"flag" db:"flag"`
	OrderID int    `json:"order_id" db:"order_id"`
	FileKey string `json:"-" db:"file_key"`
	URL     string `json:"url"`
}

// InteractionRecord is an approve/reject decision from one user about another.
// The engine consumes it purely as an exclusion signal.
type InteractionRecord struct {
	RequesterID            int64     `json:"requester_id" db:"requester_id"`
	CandidateID            int64     `json:"candidate_id" db:"candidate_id"`
	Status                 string    `json:"status" db:"status"`
	CandidatePhotosUpdated bool      `json:"candidate_photos_updated" db:"candidate_photos_updated"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
}

// Candidate is the per-request output DTO: constructed, enriched and
// discarded within a single request.
type Candidate struct {
	ID             int64    `json:"id"`
	Description    string   `json:"description"`
	Age            int      `json:"age"`
	Gender         string   `json:"gender"`
	Images         []*Image `json:"images"`
	DistanceMeters float64  `json:"distance_meters"`
}
