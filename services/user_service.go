package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fittrack/models"
	"fittrack/storage"
	"fittrack/utils"
)

// ErrFeatureDisabled is returned when an optional integration is not
// configured.
var ErrFeatureDisabled = errors.New("feature not configured")

// Mailer sends account email.
type Mailer interface {
	SendWelcome(ctx context.Context, to, username string) error
}

// ImageStore persists an uploaded image and returns its public URL.
type ImageStore interface {
	UploadDataURI(ctx context.Context, dataURI, prefix string) (string, error)
}

type CreateUserInput struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profilePicture"`
}

type UserService struct {
	store  storage.Store
	opts   Options
	mailer Mailer
	images ImageStore
}

// NewUserService wires optional mail and image integrations; pass nil to
// disable either.
func NewUserService(store storage.Store, opts Options, mailer Mailer, images ImageStore) *UserService {
	return &UserService{store: store, opts: opts.withDefaults(), mailer: mailer, images: images}
}

// requireUser loads a user or fails with storage.ErrNotFound.
func requireUser(ctx context.Context, store storage.Store, d time.Duration, id string) (*models.User, error) {
	u, err := bounded(ctx, d, "get user", func(c context.Context) (*models.User, error) {
		return store.GetUser(c, id)
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %q: %w", id, storage.ErrNotFound)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	u, err := bounded(ctx, s.opts.StoreTimeout, "create user", func(c context.Context) (*models.User, error) {
		return s.store.CreateUser(c, &models.User{
			Username:       in.Username,
			Email:          in.Email,
			ProfilePicture: in.ProfilePicture,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		// registration succeeds even if the welcome mail does not
		if err := s.mailer.SendWelcome(ctx, u.Email, u.Username); err != nil {
			s.opts.Logger.WarnContext(ctx, "welcome email failed",
				slog.String("user_id", u.ID), slog.Any("error", err))
		}
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return requireUser(ctx, s.store, s.opts.StoreTimeout, id)
}

func (s *UserService) UpdateStreak(ctx context.Context, id string, streak int) (*models.User, error) {
	_, err := bounded(ctx, s.opts.StoreTimeout, "update streak", func(c context.Context) (struct{}, error) {
		return struct{}{}, s.store.UpdateUserStreak(c, id, streak)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetProfilePicture uploads a data-URI image and points the user at it.
func (s *UserService) SetProfilePicture(ctx context.Context, id, dataURI string) (*models.User, error) {
	if s.images == nil {
		return nil, fmt.Errorf("profile pictures: %w", ErrFeatureDisabled)
	}
	if _, err := requireUser(ctx, s.store, s.opts.StoreTimeout, id); err != nil {
		return nil, err
	}

	url, err := s.images.UploadDataURI(ctx, dataURI, "profile-pictures/"+id)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidDataURI) {
			return nil, storage.NewValidationError("image", "datauri")
		}
		return nil, fmt.Errorf("upload profile picture: %w", err)
	}

	_, err = bounded(ctx, s.opts.StoreTimeout, "set profile picture", func(c context.Context) (struct{}, error) {
		return struct{}{}, s.store.SetProfilePicture(c, id, url)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
