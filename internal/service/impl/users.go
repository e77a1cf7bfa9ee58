package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/warblerhq/warbler/internal/db"
	"github.com/warblerhq/warbler/internal/domain"
	"github.com/warblerhq/warbler/internal/service"
	"github.com/warblerhq/warbler/internal/validate"
)

func (s *AppService) GetMyProfile(ctx context.Context, userID int64) (domain.User, error) {
	return s.DB.GetUserByID(ctx, userID)
}

func (s *AppService) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: empty username", service.ErrInvalidInput)
	}
	return s.DB.GetUserByUsername(ctx, username)
}

func (s *AppService) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (domain.User, error) {
	if update.Name == nil && update.Bio == nil && update.Avatar == nil && update.Username == nil {
		return domain.User{}, fmt.Errorf("%w: no valid fields to update", service.ErrInvalidInput)
	}

	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if err := validate.Name(trimmed); err != nil {
			return domain.User{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
		}
		update.Name = &trimmed
	}

	if update.Bio != nil {
		if err := validate.Bio(*update.Bio); err != nil {
			return domain.User{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
		}
	}

	if update.Username != nil {
		lowered := strings.ToLower(strings.TrimSpace(*update.Username))
		if err := validate.Username(lowered); err != nil {
			return domain.User{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
		}
		if s.Config.IsReserved(lowered) {
			return domain.User{}, fmt.Errorf("%w: this username is reserved", service.ErrInvalidInput)
		}

		taken, err := s.DB.UsernameTaken(ctx, lowered, userID)
		if err != nil {
			return domain.User{}, err
		}
		if taken {
			return domain.User{}, fmt.Errorf("%w: username already taken", service.ErrConflict)
		}
		update.Username = &lowered
	}

	u, err := s.DB.UpdateProfile(ctx, userID, update)
	if errors.Is(err, db.ErrConflict) {
		return domain.User{}, fmt.Errorf("%w: username already taken", service.ErrConflict)
	}
	return u, err
}
