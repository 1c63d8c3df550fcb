package restaurant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidSettings      = errors.New("invalid restaurant settings")
	ErrStorageNotConfigured = errors.New("logo storage not configured")
)

// Storage is the blob store used for logos.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(repo Repository, storage Storage, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: storage,
		log:     log.With().Str("component", "restaurant").Logger(),
		now:     time.Now,
	}
}

// GetRestaurant satisfies core.RestaurantReader.
func (s *Service) GetRestaurant(ctx context.Context, id int64) (*Restaurant, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// --------------------------------------------------
// Settings
// --------------------------------------------------
func (s *Service) SaveSettings(ctx context.Context, id int64, settings Settings) (*Restaurant, error) {
	settings.Name = strings.TrimSpace(settings.Name)
	if settings.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidSettings)
	}
	if settings.UniversalParcelCharge.IsNegative() {
		return nil, fmt.Errorf("%w: parcel charge must not be negative", ErrInvalidSettings)
	}

	if err := s.repo.UpdateDetails(ctx, id, settings); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("restaurant_id", id).
		Str("universal_parcel_charge", settings.UniversalParcelCharge.String()).
		Msg("restaurant settings saved")

	return s.repo.Get(ctx, id)
}

// --------------------------------------------------
// Logo upload
// --------------------------------------------------
func (s *Service) UploadLogo(
	ctx context.Context,
	id int64,
	body io.Reader,
	filename string,
	contentType string,
) (string, error) {

	ext, err := LogoExtension(filename)
	if err != nil {
		return "", err
	}

	if s.storage == nil {
		return "", ErrStorageNotConfigured
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("logos/restaurant_%d_%d.%s", id, s.now().UnixMilli(), ext)

	url, err := s.storage.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}

	if err := s.repo.UpdateLogoURL(ctx, id, url); err != nil {
		return "", err
	}

	s.log.Info().Int64("restaurant_id", id).Str("key", key).Msg("logo uploaded")
	return url, nil
}
