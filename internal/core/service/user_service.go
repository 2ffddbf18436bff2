package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/userdir/user-directory/internal/api/metrics"
	"github.com/userdir/user-directory/internal/core/domain"
	"github.com/userdir/user-directory/internal/core/ports"
)

// UserService orchestrates the user lifecycle: geodata enrichment on
// create/zip-change, persistence, and nothing else. Each operation is a
// single-shot call with no cross-call state.
type UserService struct {
	repo   ports.UserRepository
	geo    ports.GeodataClient
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, geo ports.GeodataClient, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, geo: geo, logger: logger}
}

// Create resolves geodata for the ZIP code and persists the new user.
// A geocoding failure aborts the whole operation; no partial user is ever
// persisted.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	geo, err := s.geo.GetByZipCode(ctx, input.ZipCode)
	if err != nil {
		s.logger.Error().Err(err).Str("zip_code", input.ZipCode).Msg("geodata lookup failed, aborting user creation")
		return nil, err
	}

	user, err := s.repo.Create(ctx, input, *geo)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info().
		Str("user_id", user.ID).
		Str("zip_code", user.ZipCode).
		Str("timezone", user.Timezone).
		Msg("user created")

	return user, nil
}

// Get returns the user with the given ID, or (nil, nil) when unknown.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all users. No pagination and no ordering guarantee beyond
// what the store naturally returns.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// Update applies a partial update. When the ZIP code changes, geodata is
// re-resolved first; a geocoding failure aborts before any store write.
// UpdatedAt is stamped on every call, even for an empty patch.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	patch := domain.UserPatch{
		Name:      input.Name,
		ZipCode:   input.ZipCode,
		UpdatedAt: time.Now().UTC(),
	}

	refreshed := false
	if input.ZipCode != nil {
		geo, err := s.geo.GetByZipCode(ctx, *input.ZipCode)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", id).Str("zip_code", *input.ZipCode).Msg("geodata lookup failed, aborting user update")
			return nil, err
		}
		patch.Latitude = &geo.Latitude
		patch.Longitude = &geo.Longitude
		patch.Timezone = &geo.Timezone
		refreshed = true
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	metrics.UsersUpdatedTotal.WithLabelValues(boolLabel(refreshed)).Inc()
	s.logger.Info().Str("user_id", id).Bool("geodata_refreshed", refreshed).Msg("user updated")

	return user, nil
}

// Delete removes the user and reports whether it existed.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return false, err
	}
	if deleted {
		metrics.UsersDeletedTotal.Inc()
		s.logger.Info().Str("user_id", id).Msg("user deleted")
	}
	return deleted, nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
