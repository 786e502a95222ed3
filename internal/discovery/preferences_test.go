package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func profileWith(gender, interest string) *UserProfile {
	return &UserProfile{Gender: gender, GenderInterest: interest}
}

func TestGendersCompatible(t *testing.T) {
	tests := []struct {
		name      string
		requester *UserProfile
		candidate *UserProfile
		want      bool
	}{
		{
			name:      "mutual straight match",
			requester: profileWith(GenderMale, GenderFemale),
			candidate: profileWith(GenderFemale, GenderMale),
			want:      true,
		},
		{
			name:      "candidate not interested back",
			requester: profileWith(GenderMale, GenderFemale),
			candidate: profileWith(GenderFemale, GenderFemale),
			want:      false,
		},
		{
			name:      "requester interest mismatch",
			requester: profileWith(GenderMale, GenderMale),
			candidate: profileWith(GenderFemale, GenderMale),
			want:      false,
		},
		{
			name:      "requester open to everyone",
			requester: profileWith(GenderMale, InterestEveryone),
			candidate: profileWith(GenderFemale, GenderMale),
			want:      true,
		},
		{
			name:      "candidate open to everyone",
			requester: profileWith(GenderFemale, GenderMale),
			candidate: profileWith(GenderMale, InterestEveryone),
			want:      true,
		},
		{
			name:      "both open to everyone",
			requester: profileWith(GenderMale, InterestEveryone),
			candidate: profileWith(GenderMale, InterestEveryone),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GendersCompatible(tt.requester, tt.candidate))
			// Compatibility is symmetric by definition.
			assert.Equal(t, tt.want, GendersCompatible(tt.candidate, tt.requester))
		})
	}
}

func TestInteractionExcludes(t *testing.T) {
	assert.False(t, InteractionExcludes(nil), "no interaction never excludes")

	assert.True(t, InteractionExcludes(&InteractionRecord{
		Status: StatusApproved,
	}), "approved excludes unconditionally")

	assert.True(t, InteractionExcludes(&InteractionRecord{
		Status:                 StatusApproved,
		CandidatePhotosUpdated: true,
	}), "approved excludes even with updated photos")

	assert.True(t, InteractionExcludes(&InteractionRecord{
		Status: StatusRejected,
	}), "rejected excludes while photos unchanged")

	assert.False(t, InteractionExcludes(&InteractionRecord{
		Status:                 StatusRejected,
		CandidatePhotosUpdated: true,
	}), "rejected becomes eligible again after a photo update")
}

func TestHasProfileImage(t *testing.T) {
	p := &UserProfile{Images: []*Image{
		{Flag: "id", OrderID: 0},
		{Flag: "profile", OrderID: 1},
	}}
	assert.True(t, HasProfileImage(p))

	assert.False(t, HasProfileImage(&UserProfile{Images: []*Image{{Flag: "id"}}}))
	assert.False(t, HasProfileImage(&UserProfile{}))
}
