package service

import (
	"context"
	"fmt"
	"strings"

	"travro/internal/apperr"
	"travro/internal/blob"
	"travro/internal/models"
	"travro/internal/repository"
)

type ProfileService struct {
	users  repository.Users
	blobs  blob.Store
	events *recorder
}

func NewProfileService(users repository.Users, blobs blob.Store, events *recorder) *ProfileService {
	return &ProfileService{users: users, blobs: blobs, events: events}
}

// Get projects the stored user into its public profile.
func (s *ProfileService) Get(u *models.User) models.Profile {
	return models.Profile{
		Username:    u.Username,
		DOB:         u.DOB(),
		ImageRef:    u.ImageRef,
		Destination: u.Destination,
	}
}

// Update applies the supplied fields. A blank destination is ignored, and
// the new photo is uploaded before the record is touched.
func (s *ProfileService) Update(ctx context.Context, u *models.User, in ProfileInput) (*models.User, error) {
	var upd models.ProfileUpdate
	var changed []string

	if in.Destination != nil {
		if d := strings.TrimSpace(*in.Destination); d != "" {
			upd.Destination = &d
			changed = append(changed, "destination")
		}
	}
	if in.Image != nil {
		if !in.Image.IsImage() {
			return nil, fmt.Errorf("image must be an image file: %w", apperr.ErrInvalidInput)
		}
		url, err := s.blobs.Upload(ctx, u.Username, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w: %w", apperr.ErrUpstream, err)
		}
		upd.ImageRef = &url
		changed = append(changed, "image")
	}

	updated, err := s.users.UpdateProfile(ctx, u.ID, upd)
	if err != nil {
		if upd.ImageRef != nil {
			_ = s.blobs.Delete(ctx, *upd.ImageRef)
		}
		return nil, err
	}
	if len(changed) > 0 {
		s.events.record(ctx, u.ID, models.EventProfileUpdate, "updated "+strings.Join(changed, ", "))
	}
	return updated, nil
}
