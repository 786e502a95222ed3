package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeAt(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthdate time.Time
		want      int
	}{
		{
			name:      "birthday already passed this year",
			birthdate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			want:      24,
		},
		{
			name:      "birthday not yet reached this year",
			birthdate: time.Date(2000, 2, 2, 0, 0, 0, 0, time.UTC),
			want:      23,
		},
		{
			name:      "birthday is today",
			birthdate: time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC),
			want:      24,
		},
		{
			name:      "born later same month",
			birthdate: time.Date(1990, 2, 15, 0, 0, 0, 0, time.UTC),
			want:      33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.birthdate, now))
		})
	}
}
