// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/heartlink-app/heartlink-backend/internal/images"
)

var ErrInvalidImageFlag = errors.New("invalid image flag")

// Service interface
type Service interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)
	UpdateLocation(ctx context.Context, userID int64, req *UpdateLocationRequest) error
	AddImage(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader, flag string, orderID int) (*Image, error)
	RemoveImage(ctx context.Context, userID, imageID int64) error
}

type service struct {
	repo     Repository
	uploads  UploadService
	resolver images.Resolver
}

// NewService creates a new profile service
func NewService(repo Repository, uploads UploadService, resolver images.Resolver) Service {
	return &service{
		repo:     repo,
		uploads:  uploads,
		resolver: resolver,
	}
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	imgs, err := s.repo.GetImages(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, img := range imgs {
		url, err := s.resolver.ResolveURL(ctx, img.FileKey)
		if err != nil {
			return nil, err
		}
		img.URL = url
	}
	p.Images = imgs

	return p, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:         userID,
		Description:    req.Description,
		Gender:         req.Gender,
		GenderInterest: req.GenderInterest,
		SearchRadiusKm: req.SearchRadiusKm,
		Birthdate:      birthdate,
	}

	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) UpdateLocation(ctx context.Context, userID int64, req *UpdateLocationRequest) error {
	return s.repo.UpdateLocation(ctx, userID, req.Latitude, req.Longitude)
}

func (s *service) AddImage(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader, flag string, orderID int) (*Image, error) {
	if flag != ImageFlagProfile && flag != ImageFlagID {
		return nil, ErrInvalidImageFlag
	}

	fileKey, err := s.uploads.Store(ctx, file, header, "images")
	if err != nil {
		return nil, err
	}

	img := &Image{
		UserID:  userID,
		FileKey: fileKey,
		Flag:    flag,
		OrderID: orderID,
	}

	if err := s.repo.AddImage(ctx, img); err != nil {
		// Best effort cleanup of the orphaned upload.
		_ = s.uploads.Delete(ctx, fileKey)
		return nil, err
	}

	// New photos make previously rejected candidates eligible again.
	if err := s.repo.MarkPhotosUpdated(ctx, userID); err != nil {
		return nil, err
	}

	url, err := s.resolver.ResolveURL(ctx, img.FileKey)
	if err != nil {
		return nil, err
	}
	img.URL = url

	return img, nil
}

func (s *service) RemoveImage(ctx context.Context, userID, imageID int64) error {
	fileKey, err := s.repo.DeleteImage(ctx, userID, imageID)
	if err != nil {
		return err
	}

	return s.uploads.Delete(ctx, fileKey)
}
