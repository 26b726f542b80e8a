package users

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fleetdesk/fleetdesk/internal/auth"
	"github.com/fleetdesk/fleetdesk/internal/authz"
	rentalshared "github.com/fleetdesk/fleetdesk/internal/rental/shared"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

// Service handles the user management screen on top of the credential
// directory. The screen is SuperAdmin-only by route; the service itself is
// role-agnostic.
type Service struct {
	directory *auth.Directory
}

func NewService(directory *auth.Directory) *Service {
	return &Service{directory: directory}
}

func fromCredential(cred auth.Credential) User {
	actor := cred.Actor()
	return User{
		ID:            cred.ID,
		Email:         cred.Email,
		FirstName:     cred.FirstName,
		LastName:      cred.LastName,
		Role:          cred.Role,
		RoleLabel:     cred.Role.DisplayName(),
		BusinessID:    cred.BusinessID,
		IsActive:      cred.IsActive,
		Misconfigured: actor.Misconfigured(),
		CreatedAt:     cred.CreatedAt,
	}
}

func (s *Service) List(ctx context.Context, filters rentalshared.ListFilters) ([]User, shared.Pagination, error) {
	creds, err := s.directory.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	matched := make([]User, 0, len(creds))
	for _, cred := range creds {
		if filters.BusinessID != "" && cred.BusinessID != filters.BusinessID {
			continue
		}
		if !filters.Matches(cred.Email, cred.FirstName, cred.LastName) {
			continue
		}
		matched = append(matched, fromCredential(cred))
	}
	page := rentalshared.Page(matched, filters.Page, filters.Limit)
	return page, shared.NewPagination(filters.Page, filters.Limit, len(matched)), nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	cred, err := s.directory.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	return fromCredential(*cred), nil
}

type CreateInput struct {
	Email      string
	FirstName  string
	LastName   string
	Password   string
	Role       authz.Role
	BusinessID string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (User, error) {
	if !input.Role.Valid() {
		return User{}, fmt.Errorf("%w: unknown role", shared.ErrInvalidInput)
	}
	if input.Role != authz.RoleSuperAdmin && strings.TrimSpace(input.BusinessID) == "" {
		return User{}, fmt.Errorf("%w: scoped roles need a business assignment", shared.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	cred, err := s.directory.Create(ctx, auth.Credential{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Role:         input.Role,
		BusinessID:   strings.TrimSpace(input.BusinessID),
	})
	if err != nil {
		return User{}, err
	}
	return fromCredential(cred), nil
}

type UpdateInput struct {
	FirstName  string
	LastName   string
	Role       authz.Role
	BusinessID string
	IsActive   bool
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (User, error) {
	if !input.Role.Valid() {
		return User{}, fmt.Errorf("%w: unknown role", shared.ErrInvalidInput)
	}
	if input.Role != authz.RoleSuperAdmin && strings.TrimSpace(input.BusinessID) == "" {
		return User{}, fmt.Errorf("%w: scoped roles need a business assignment", shared.ErrInvalidInput)
	}
	cred, err := s.directory.Update(ctx, id, input.FirstName, input.LastName, input.Role, strings.TrimSpace(input.BusinessID), input.IsActive)
	if err != nil {
		return User{}, err
	}
	return fromCredential(cred), nil
}

// Delete removes a user. The acting SuperAdmin cannot delete themselves;
// locking the last keyholder out is an easy mistake to make.
func (s *Service) Delete(ctx context.Context, actor *authz.Actor, id string) error {
	if actor != nil && actor.ID == id {
		return shared.ErrForbidden
	}
	return s.directory.Delete(ctx, id)
}
