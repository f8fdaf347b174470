package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wasteworks/wasteworks-api/internal/pkg/password"
	"github.com/wasteworks/wasteworks-api/internal/pkg/token"
)

type Service struct {
	repo   Repository
	tokens *token.Service
}

func NewService(repo Repository, tokens *token.Service) *Service {
	return &Service{repo: repo, tokens: tokens}
}

type LoginResult struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   time.Duration `json:"-"`
	Staff       *Staff        `json:"-"`
}

// Login verifies credentials and issues an access token carrying the
// staff id and role. Lookup failure and a bad password return the same
// error so the response does not leak which emails exist.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	staff, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !staff.Active {
		return nil, ErrStaffInactive
	}

	if !password.Verify(plainPassword, staff.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Generate(staff.ID, string(staff.Role))
	if err != nil {
		log.Error().Err(err).Str("staff_id", staff.ID.String()).Msg("Token generation failed")
		return nil, ErrInternal
	}

	log.Info().
		Str("staff_id", staff.ID.String()).
		Str("role", string(staff.Role)).
		Msg("Staff logged in")

	return &LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   s.tokens.AccessTTL(),
		Staff:       staff,
	}, nil
}

// CreateStaff registers a new operational user. Admin-only at the route
// level; the service just enforces field validity.
func (s *Service) CreateStaff(ctx context.Context, email, name, plainPassword string, role Role) (*Staff, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, ErrInternal
	}

	staff := &Staff{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, err
	}

	log.Info().
		Str("staff_id", staff.ID.String()).
		Str("role", string(role)).
		Msg("Staff created")

	return staff, nil
}
