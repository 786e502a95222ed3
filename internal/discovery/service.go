package discovery

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartlink-app/heartlink-backend/internal/geo"
	"github.com/heartlink-app/heartlink-backend/internal/images"
)

// Service is the candidate discovery engine
type Service interface {
	// GetCandidates returns a bounded page of compatible, mutually-visible,
	// not-yet-interacted-with candidates for the requester, annotated with
	// age, distance and resolved image URLs. Results keep repository order;
	// no distance sort is applied.
	GetCandidates(ctx context.Context, requesterID int64) ([]*Candidate, error)

	// ApproveCandidate records an approve decision
	ApproveCandidate(ctx context.Context, requesterID, candidateID int64) error

	// RejectCandidate records a reject decision
	RejectCandidate(ctx context.Context, requesterID, candidateID int64) error
}

type service struct {
	repo        Repository
	resolver    images.Resolver
	concurrency int

	now func() time.Time
}

// NewService creates the discovery engine. concurrency caps simultaneous
// image-URL resolutions per request.
func NewService(repo Repository, resolver images.Resolver, concurrency int) Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &service{
		repo:        repo,
		resolver:    resolver,
		concurrency: concurrency,
		now:         time.Now,
	}
}

func (s *service) GetCandidates(ctx context.Context, requesterID int64) ([]*Candidate, error) {
	requester, err := s.repo.GetUserProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	requesterLoc, ok := requester.Location()
	if !ok {
		return nil, ErrUserLocationMissing
	}

	box := geo.BoundingBoxAround(requesterLoc, requester.SearchRadiusKm)

	page, err := s.repo.FindCandidates(ctx, requester, box)
	if err != nil {
		return nil, err
	}

	now := s.now()
	candidates := make([]*Candidate, 0, len(page))
	for _, profile := range page {
		candidateLoc, ok := profile.Location()
		if !ok {
			// Repository contract violation: candidates are pre-filtered by
			// location, so a missing one is a defect, not a skip.
			return nil, fmt.Errorf("%w: candidate %d", ErrCandidateLocationMissing, profile.ID)
		}

		// Reciprocal visibility: the requester must also fall inside the
		// candidate's own search box, otherwise the match would be
		// one-sided.
		candidateBox := geo.BoundingBoxAround(candidateLoc, profile.SearchRadiusKm)
		if !candidateBox.Contains(requesterLoc) {
			continue
		}

		candidates = append(candidates, &Candidate{
			ID:             profile.ID,
			Description:    profile.Description,
			Age:            AgeAt(profile.Birthdate, now),
			Gender:         profile.Gender,
			Images:         profile.Images,
			DistanceMeters: geo.Distance(requesterLoc, candidateLoc),
		})
	}

	if err := s.resolveImageURLs(ctx, candidates); err != nil {
		return nil, err
	}

	recordCandidatesReturned(len(candidates))
	return candidates, nil
}

// resolveImageURLs fans out one resolution per image with bounded
// concurrency. Images are never reordered, so per-candidate order is kept.
func (s *service) resolveImageURLs(ctx context.Context, candidates []*Candidate) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, c := range candidates {
		for _, img := range c.Images {
			img := img
			g.Go(func() error {
				url, err := s.resolver.ResolveURL(ctx, img.FileKey)
				if err != nil {
					return err
				}
				img.URL = url
				return nil
			})
		}
	}

	return g.Wait()
}

func (s *service) ApproveCandidate(ctx context.Context, requesterID, candidateID int64) error {
	return s.recordInteraction(ctx, requesterID, candidateID, StatusApproved)
}

func (s *service) RejectCandidate(ctx context.Context, requesterID, candidateID int64) error {
	return s.recordInteraction(ctx, requesterID, candidateID, StatusRejected)
}

func (s *service) recordInteraction(ctx context.Context, requesterID, candidateID int64, status string) error {
	if requesterID == candidateID {
		return ErrSelfInteraction
	}

	// The candidate must exist; reuse the profile read for the check.
	if _, err := s.repo.GetUserProfile(ctx, candidateID); err != nil {
		return err
	}

	rec := &InteractionRecord{
		RequesterID: requesterID,
		CandidateID: candidateID,
		Status:      status,
	}

	if err := s.repo.RecordInteraction(ctx, rec); err != nil {
		return err
	}

	recordInteraction(status)
	return nil
}
