package core

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/warblerhq/warbler/internal/db"
	"github.com/warblerhq/warbler/internal/domain"
	"github.com/warblerhq/warbler/internal/service"
	"github.com/warblerhq/warbler/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

const ResetTokenTTL = 15 * time.Minute

func (s *AppService) Register(ctx context.Context, name, username, email, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validate.SignUpForm(name, username, password, email); err != nil {
		return domain.User{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}
	if s.Config.IsReserved(username) {
		return domain.User{}, fmt.Errorf("%w: this username is reserved", service.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	id, err := s.DB.CreateUser(ctx, name, username, email, string(hash))
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			return domain.User{}, fmt.Errorf("%w: email or username already taken", service.ErrConflict)
		}
		return domain.User{}, err
	}

	return s.DB.GetUserByID(ctx, id)
}

// AuthenticateUser confirms the user's identity and, if their credentials are correct,
// returns data to be put in the login session, such as the user's name and id. user is
// either the user's email address or their username.
func (s *AppService) AuthenticateUser(ctx context.Context, user, password string) (a domain.Account, authenticated bool, err error) {
	user = strings.ToLower(strings.TrimSpace(user))

	if validate.Email(user) == nil {
		a, err = s.DB.GetAuthByEmail(ctx, user)
	} else if validate.Username(user) == nil {
		a, err = s.DB.GetAuthByUsername(ctx, user)
	} else {
		return domain.Account{}, false, nil
	}

	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return domain.Account{}, false, nil
		}
		return domain.Account{}, false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	authenticated = err == nil
	return a, authenticated, nil
}

func (s *AppService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Email(email); err != nil {
		return "", fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}

	a, err := s.DB.GetAuthByEmail(ctx, email)
	if err != nil {
		// Unknown addresses get the same answer as known ones.
		if errors.Is(err, db.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	raw := make([]byte, 32)
	if _, err = rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	err = s.DB.SetResetToken(ctx, a.UserID, hashToken(token), time.Now().Add(ResetTokenTTL))
	if err != nil {
		return "", err
	}

	return "/auth/reset-password/" + token, nil
}

func (s *AppService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validate.Password(newPassword); err != nil {
		return fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}

	id, err := s.DB.GetUserByResetToken(ctx, hashToken(token), time.Now())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: token is invalid or expired", service.ErrInvalidInput)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), BcryptCost)
	if err != nil {
		return err
	}
	return s.DB.ResetPassword(ctx, id, string(hash))
}

func (s *AppService) ChangePassword(ctx context.Context, userID int64, current, updated string) error {
	a, err := s.DB.GetAuthByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(current)) != nil {
		return fmt.Errorf("%w: current password is incorrect", service.ErrInvalidInput)
	}
	if err = validate.Password(updated); err != nil {
		return fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), BcryptCost)
	if err != nil {
		return err
	}
	return s.DB.SetPassword(ctx, userID, string(hash))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
