package auth

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

// Directory is the in-memory credential store backing login and the user
// management screen. All access goes through the mutex; there is no
// persistence behind it.
type Directory struct {
	mu      sync.RWMutex
	byID    map[string]*Credential
	ordered []string
}

type seedUser struct {
	id         string
	email      string
	firstName  string
	lastName   string
	role       authz.Role
	businessID string
}

var seedUsers = []seedUser{
	{id: "1", email: "superadmin@example.com", firstName: "Super", lastName: "Admin", role: authz.RoleSuperAdmin},
	{id: "2", email: "employee1@example.com", firstName: "Employee", lastName: "One", role: authz.RoleEmployee, businessID: "business-001"},
	{id: "3", email: "employee2@example.com", firstName: "Employee", lastName: "Two", role: authz.RoleEmployee, businessID: "business-002"},
	{id: "4", email: "admin@example.com", firstName: "Admin", lastName: "User", role: authz.RoleAdmin, businessID: "business-001"},
}

// NewDirectory seeds the demo credential set. Every account uses the
// password "password".
func NewDirectory() (*Directory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	d := &Directory{byID: make(map[string]*Credential, len(seedUsers))}
	now := time.Now().UTC()
	for _, u := range seedUsers {
		d.byID[u.id] = &Credential{
			ID:           u.id,
			Email:        u.email,
			FirstName:    u.firstName,
			LastName:     u.lastName,
			PasswordHash: string(hash),
			Role:         u.role,
			BusinessID:   u.businessID,
			IsActive:     true,
			CreatedAt:    now,
		}
		d.ordered = append(d.ordered, u.id)
	}
	return d, nil
}

// FindByEmail returns the credential for an email, case-insensitively.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*Credential, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, id := range d.ordered {
		if cred := d.byID[id]; strings.ToLower(cred.Email) == email {
			copy := *cred
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Get returns the credential with the given id.
func (d *Directory) Get(ctx context.Context, id string) (*Credential, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cred, ok := d.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copy := *cred
	return &copy, nil
}

// List returns every credential in seed order.
func (d *Directory) List(ctx context.Context) ([]Credential, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Credential, 0, len(d.ordered))
	for _, id := range d.ordered {
		out = append(out, *d.byID[id])
	}
	return out, nil
}

// ListByRole returns credentials holding the given role, in seed order.
func (d *Directory) ListByRole(ctx context.Context, role authz.Role) ([]Credential, error) {
	all, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, cred := range all {
		if cred.Role == role {
			out = append(out, cred)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create adds a credential, rejecting duplicate emails. IDs continue the
// numeric sequence the seeds start.
func (d *Directory) Create(ctx context.Context, cred Credential) (Credential, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(cred.Email))
	for _, id := range d.ordered {
		if strings.ToLower(d.byID[id].Email) == email {
			return Credential{}, shared.ErrConflict
		}
	}
	cred.ID = strconv.Itoa(len(d.ordered) + 1)
	for {
		if _, taken := d.byID[cred.ID]; !taken {
			break
		}
		next, _ := strconv.Atoi(cred.ID)
		cred.ID = strconv.Itoa(next + 1)
	}
	cred.Email = email
	cred.IsActive = true
	cred.CreatedAt = time.Now().UTC()
	stored := cred
	d.byID[cred.ID] = &stored
	d.ordered = append(d.ordered, cred.ID)
	return cred, nil
}

// Update rewrites the managed fields of a credential.
func (d *Directory) Update(ctx context.Context, id string, firstName, lastName string, role authz.Role, businessID string, isActive bool) (Credential, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cred, ok := d.byID[id]
	if !ok {
		return Credential{}, shared.ErrNotFound
	}
	cred.FirstName = strings.TrimSpace(firstName)
	cred.LastName = strings.TrimSpace(lastName)
	cred.Role = role
	cred.BusinessID = businessID
	cred.IsActive = isActive
	copy := *cred
	return copy, nil
}

// Delete removes a credential.
func (d *Directory) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(d.byID, id)
	for i, existing := range d.ordered {
		if existing == id {
			d.ordered = append(d.ordered[:i], d.ordered[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateProfile changes the display name of a credential.
func (d *Directory) UpdateProfile(ctx context.Context, id, firstName, lastName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cred, ok := d.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	cred.FirstName = strings.TrimSpace(firstName)
	cred.LastName = strings.TrimSpace(lastName)
	return nil
}

// UpdatePasswordHash replaces the stored hash for a credential.
func (d *Directory) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cred, ok := d.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	cred.PasswordHash = hash
	return nil
}
