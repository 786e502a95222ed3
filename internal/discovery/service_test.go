package discovery

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlink-app/heartlink-backend/internal/geo"
)

// mockRepository serves canned profiles and candidate pages
type mockRepository struct {
	profiles     map[int64]*UserProfile
	page         []*UserProfile
	interactions []*InteractionRecord
	findErr      error
}

func (m *mockRepository) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return p, nil
}

func (m *mockRepository) FindCandidates(ctx context.Context, requester *UserProfile, box geo.BoundingBox) ([]*UserProfile, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.page, nil
}

func (m *mockRepository) RecordInteraction(ctx context.Context, rec *InteractionRecord) error {
	m.interactions = append(m.interactions, rec)
	return nil
}

// mockResolver derives URLs from file keys
type mockResolver struct {
	err error
}

func (m *mockResolver) ResolveURL(ctx context.Context, fileKey string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "https://cdn.test/" + fileKey, nil
}

func f64(v float64) *float64 { return &v }

func testProfile(id int64, lat, lng, radiusKm float64) *UserProfile {
	return &UserProfile{
		ID:             id,
		Gender:         GenderFemale,
		GenderInterest: GenderMale,
		SearchRadiusKm: radiusKm,
		Birthdate:      time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Latitude:       f64(lat),
		Longitude:      f64(lng),
	}
}

func newTestService(repo Repository, resolver *mockResolver) *service {
	svc := NewService(repo, resolver, 4).(*service)
	svc.now = func() time.Time {
		return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestGetCandidatesRequesterNotFound(t *testing.T) {
	repo := &mockRepository{profiles: map[int64]*UserProfile{}}
	svc := newTestService(repo, &mockResolver{})

	_, err := svc.GetCandidates(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetCandidatesRequesterLocationMissing(t *testing.T) {
	requester := testProfile(1, 0, 0, 10)
	requester.Latitude = nil
	requester.Longitude = nil

	repo := &mockRepository{profiles: map[int64]*UserProfile{1: requester}}
	svc := newTestService(repo, &mockResolver{})

	_, err := svc.GetCandidates(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUserLocationMissing)
}

func TestGetCandidatesEmptyPage(t *testing.T) {
	requester := testProfile(1, 52.52, 13.405, 10)
	requester.Gender = GenderMale
	requester.GenderInterest = GenderFemale

	repo := &mockRepository{
		profiles: map[int64]*UserProfile{1: requester},
		page:     nil,
	}
	svc := newTestService(repo, &mockResolver{})

	candidates, err := svc.GetCandidates(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestGetCandidatesCandidateLocationMissing(t *testing.T) {
	requester := testProfile(1, 52.52, 13.405, 10)
	broken := testProfile(2, 0, 0, 10)
	broken.Latitude = nil
	broken.Longitude = nil

	repo := &mockRepository{
		profiles: map[int64]*UserProfile{1: requester},
		page:     []*UserProfile{broken},
	}
	svc := newTestService(repo, &mockResolver{})

	_, err := svc.GetCandidates(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCandidateLocationMissing)
}

func TestGetCandidatesReciprocity(t *testing.T) {
	// Requester in central Berlin with a wide radius.
	requester := testProfile(1, 52.52, 13.405, 50)
	requester.Gender = GenderMale
	requester.GenderInterest = GenderFemale

	// Nearby candidate whose own radius easily covers the requester.
	mutual := testProfile(2, 52.53, 13.41, 20)

	// Candidate ~10km away whose tiny radius would never surface the
	// requester: visible one way only, so they must be dropped.
	oneSided := testProfile(3, 52.61, 13.41, 1)

	repo := &mockRepository{
		profiles: map[int64]*UserProfile{1: requester},
		page:     []*UserProfile{mutual, oneSided},
	}
	svc := newTestService(repo, &mockResolver{})

	candidates, err := svc.GetCandidates(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(2), candidates[0].ID)

	// Mutual visibility implies the distance fits both radii.
	assert.LessOrEqual(t, candidates[0].DistanceMeters, requester.SearchRadiusKm*1000)
	assert.LessOrEqual(t, candidates[0].DistanceMeters, mutual.SearchRadiusKm*1000)
}

func TestGetCandidatesAnnotations(t *testing.T) {
	requester := testProfile(1, -13.083428636250812, -55.93346064778029, 30)
	requester.Gender = GenderMale
	requester.GenderInterest = GenderFemale

	candidate := testProfile(2, -13.077074752983124, -55.92686241358865, 30)
	candidate.Description = "likes hiking"
	candidate.Birthdate = time.Date(2000, 2, 2, 0, 0, 0, 0, time.UTC)
	candidate.Images = []*Image{
		{ID: 10, UserID: 2, Flag: "profile", OrderID: 0, FileKey: "images/a.jpg"},
		{ID: 11, UserID: 2, Flag: "id", OrderID: 1, FileKey: "images/b.jpg"},
	}

	repo := &mockRepository{
		profiles: map[int64]*UserProfile{1: requester},
		page:     []*UserProfile{candidate},
	}
	svc := newTestService(repo, &mockResolver{})

	candidates, err := svc.GetCandidates(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	got := candidates[0]
	assert.Equal(t, "likes hiking", got.Description)
	assert.Equal(t, GenderFemale, got.Gender)
	assert.Equal(t, 23, got.Age, "birthday not yet reached at the reference date")
	assert.InDelta(t, 1004.93, got.DistanceMeters, 0.5)

	// Image order preserved, URLs resolved per image.
	require.Len(t, got.Images, 2)
	assert.Equal(t, "https://cdn.test/images/a.jpg", got.Images[0].URL)
	assert.Equal(t, "https://cdn.test/images/b.jpg", got.Images[1].URL)
	assert.Equal(t, 0, got.Images[0].OrderID)
	assert.Equal(t, 1, got.Images[1].OrderID)
}

func TestGetCandidatesKeepsRepositoryOrder(t *testing.T) {
	requester := testProfile(1, 52.52, 13.405, 50)
	requester.Gender = GenderMale
	requester.GenderInterest = GenderFemale

	// Further-away candidate first: output must not be re-sorted by distance.
	far := testProfile(2, 52.60, 13.50, 50)
	near := testProfile(3, 52.521, 13.406, 50)

	repo := &mockRepository{
		profiles: map[int64]*UserProfile{1: requester},
		page:     []*UserProfile{far, near},
	}
	svc := newTestService(repo, &mockResolver{})

	candidates, err := svc.GetCandidates(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, int64(2), candidates[0].ID)
	assert.Equal(t, int64(3), candidates[1].ID)
	assert.Greater(t, candidates[0].DistanceMeters, candidates[1].DistanceMeters)
}

func TestGetCandidatesBound(t *testing.T) {
	requester := testProfile(1, 52.52, 13.405, 50)
	requester.Gender = GenderMale
	requester.GenderInterest = GenderFemale

	var page []*UserProfile
	for i := 0; i < CandidatePageSize; i++ {
		c := testProfile(int64(100+i), 52.52+float64(i)*0.001, 13.405, 50)
		page = append(page, c)
	}

	repo := &mockRepository{
		profiles: map[int64]*UserProfile{1: requester},
		page:     page,
	}
	svc := newTestService(repo, &mockResolver{})

	candidates, err := svc.GetCandidates(context.Background(), 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(candidates), CandidatePageSize)
}

func TestGetCandidatesResolverErrorPropagates(t *testing.T) {
	requester := testProfile(1, 52.52, 13.405, 50)
	requester.Gender = GenderMale
	requester.GenderInterest = GenderFemale

	candidate := testProfile(2, 52.53, 13.41, 50)
	candidate.Images = []*Image{{ID: 10, UserID: 2, Flag: "profile", FileKey: "images/a.jpg"}}

	repo := &mockRepository{
		profiles: map[int64]*UserProfile{1: requester},
		page:     []*UserProfile{candidate},
	}
	svc := newTestService(repo, &mockResolver{err: fmt.Errorf("signer down")})

	_, err := svc.GetCandidates(context.Background(), 1)
	assert.Error(t, err)
}

func TestRecordInteraction(t *testing.T) {
	requester := testProfile(1, 52.52, 13.405, 50)
	candidate := testProfile(2, 52.53, 13.41, 50)

	repo := &mockRepository{
		profiles: map[int64]*UserProfile{1: requester, 2: candidate},
	}
	svc := newTestService(repo, &mockResolver{})

	require.NoError(t, svc.ApproveCandidate(context.Background(), 1, 2))
	require.Len(t, repo.interactions, 1)
	assert.Equal(t, StatusApproved, repo.interactions[0].Status)

	require.NoError(t, svc.RejectCandidate(context.Background(), 1, 2))
	assert.Equal(t, StatusRejected, repo.interactions[1].Status)

	assert.ErrorIs(t, svc.ApproveCandidate(context.Background(), 1, 1), ErrSelfInteraction)
	assert.ErrorIs(t, svc.ApproveCandidate(context.Background(), 1, 99), ErrUserNotFound)
}
