package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailExists        = errors.New("email already exists")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type Service struct {
	repo     UserRepository
	tokens   *TokenManager
	denylist Denylist
	log      zerolog.Logger
}

func NewService(repo UserRepository, tokens *TokenManager, denylist Denylist, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		denylist: denylist,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

// REGISTER
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// EnsureAdmin creates the admin account once and links it to a restaurant.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string, restaurantID int64) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	switch {
	case errors.Is(err, ErrUserNotFound):
		user, err = s.Register(ctx, "Administrator", email, password, RoleAdmin)
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("email", user.Email).Msg("admin user created")
	case err != nil:
		return nil, err
	}

	if restaurantID > 0 {
		if err := s.repo.LinkRestaurant(ctx, user.ID, restaurantID); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user signed in")
	return token, user, nil
}

// Authenticate validates a bearer token and rejects revoked ones.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// LOGOUT
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if claims.ExpiresAt == nil {
		return ErrInvalidToken
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}

	s.log.Info().Str("user_id", claims.UserID).Msg("user signed out")
	return nil
}

// Me returns the signed-in user and the restaurant they administer
// (0 when unlinked).
func (s *Service) Me(ctx context.Context, userID string) (*User, int64, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	restaurantID, err := s.repo.GetRestaurantIDForUser(ctx, userID)
	if err != nil && !errors.Is(err, ErrNoRestaurant) {
		return nil, 0, err
	}
	return user, restaurantID, nil
}

func (s *Service) RestaurantIDForUser(ctx context.Context, userID string) (int64, error) {
	return s.repo.GetRestaurantIDForUser(ctx, userID)
}
