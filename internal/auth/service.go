package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

// Service wraps authentication business rules over the credential directory.
type Service struct {
	dir *Directory
}

// NewService constructs a new Service.
func NewService(dir *Directory) *Service {
	return &Service{dir: dir}
}

// Authenticate validates email/password credentials and returns the actor
// they authenticate.
func (s *Service) Authenticate(ctx context.Context, email, password string) (authz.Actor, error) {
	cred, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		return authz.Actor{}, shared.ErrInvalidCredentials
	}
	if !cred.IsActive {
		return authz.Actor{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return authz.Actor{}, shared.ErrInvalidCredentials
	}
	return cred.Actor(), nil
}

// ChangePassword verifies the current password before installing a new one.
func (s *Service) ChangePassword(ctx context.Context, actorID, current, next string) error {
	cred, err := s.dir.Get(ctx, actorID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(current)); err != nil {
		return shared.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.dir.UpdatePasswordHash(ctx, actorID, string(hash))
}

// UpdateProfile changes the actor's display name.
func (s *Service) UpdateProfile(ctx context.Context, actorID, firstName, lastName string) (authz.Actor, error) {
	if err := s.dir.UpdateProfile(ctx, actorID, firstName, lastName); err != nil {
		return authz.Actor{}, err
	}
	cred, err := s.dir.Get(ctx, actorID)
	if err != nil {
		return authz.Actor{}, err
	}
	return cred.Actor(), nil
}

// Directory exposes the underlying credential directory for the user
// management screen.
func (s *Service) Directory() *Directory {
	return s.dir
}
