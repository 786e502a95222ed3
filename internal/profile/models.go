//internals/profile/models.go

package profile

import "time"

// Gender values
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Gender interest values; "everyone" is the wildcard
const (
	InterestMale     = "male"
	InterestFemale   = "female"
	InterestEveryone = "everyone"
)

// Image flags
const (
	ImageFlagProfile = "profile"
	ImageFlagID      = "id"
)

// Profile holds a user's dating profile and discovery preferences
type Profile struct {
	UserID         int64     `json:"user_id" db:"user_id"`
	Description    string    `json:"description" db:"description"`
	Gender         string    `json:"gender" db:"gender"`
	GenderInterest string    `json:"gender_interest" db:"gender_interest"`
	SearchRadiusKm float64   `json:"search_radius_km" db:"search_radius_km"`
	Birthdate      time.Time `json:"birthdate" db:"birthdate"`
	Latitude       *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude      *float64  `json:"longitude,omitempty" db:"longitude"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// Populated on reads, with resolved URLs
	Images []*Image `json:"images,omitempty"`
}

// Image is one uploaded photo. FileKey is the stable storage key; URL is
// resolved per request by the image URL resolver and never persisted.
type Image struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	FileKey   string    `json:"-" db:"file_key"`
	Flag      string    `json:"flag" db:"flag"`
	OrderID   int       `json:"order_id" db:"order_id"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UpdateProfileRequest is the payload for profile setup and edits
type UpdateProfileRequest struct {
	Description    string  `json:"description" validate:"max=500"`
	Gender         string  `json:"gender" validate:"required,oneof=male female"`
	GenderInterest string  `json:"gender_interest" validate:"required,oneof=male female everyone"`
	SearchRadiusKm float64 `json:"search_radius_km" validate:"required,gt=0"`
	Birthdate      string  `json:"birthdate" validate:"required,datetime=2006-01-02"`
}

// UpdateLocationRequest is the payload for location updates
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}
