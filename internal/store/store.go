// Package store holds the in-memory user store and its validation rules.
package store

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// TimeFormat is the wall-clock format used for all timestamps the service
// stores or returns.
const TimeFormat = "2006-01-02 15:04:05"

var (
	// ErrNotFound is returned when no user exists for the requested id.
	ErrNotFound = errors.New("user not found")
	// ErrEmailExists is returned when a create or update would break the
	// case-insensitive email uniqueness invariant.
	ErrEmailExists = errors.New("user with this email already exists")
)

// ValidationError carries the ordered list of rule violations for a
// rejected candidate or patch.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// User is the single domain entity managed by the service.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Position  string `json:"position"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Patch is a partial user supplied to Create or Update. Pointer fields
// distinguish an absent attribute from a zero value.
type Patch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Age      *int    `json:"age"`
	Position *string `json:"position"`
}

// Store is a mutex-guarded in-memory user store. Ids are assigned from a
// monotonic counter and never reused; enumeration preserves insertion
// order. All public methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	users  map[int]User
	order  []int
	nextID int
}

// New creates an empty store with the id counter at 1.
func New() *Store {
	return &Store{
		users:  make(map[int]User),
		nextID: 1,
	}
}

// List returns all users in insertion order.
func (s *Store) List() []User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id])
	}
	return out
}

// Get returns the user with the given id, or ErrNotFound.
func (s *Store) Get(id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// Create validates the candidate in full mode, enforces email uniqueness,
// and inserts a new user with an assigned id and creation timestamps.
// Failed attempts do not consume an id.
func (s *Store) Create(p Patch) (User, error) {
	if msgs := Validate(p, true); len(msgs) > 0 {
		return User{}, &ValidationError{Messages: msgs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(*p.Email, 0) {
		return User{}, ErrEmailExists
	}

	now := time.Now().Format(TimeFormat)
	u := User{
		ID:        s.nextID,
		Name:      *p.Name,
		Email:     *p.Email,
		Age:       *p.Age,
		Position:  *p.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	s.order = append(s.order, u.ID)
	s.nextID++
	return u, nil
}

// Update merges the patch over the stored user. Only attributes present in
// the patch are touched; id and created_at are preserved and updated_at is
// refreshed. Changing the email to one held by another user (compared
// case-insensitively) returns ErrEmailExists.
func (s *Store) Update(id int, p Patch) (User, error) {
	if msgs := Validate(p, false); len(msgs) > 0 {
		return User{}, &ValidationError{Messages: msgs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}

	if p.Email != nil && !strings.EqualFold(*p.Email, u.Email) {
		if s.emailTaken(*p.Email, id) {
			return User{}, ErrEmailExists
		}
	}

	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	u.UpdatedAt = time.Now().Format(TimeFormat)

	s.users[id] = u
	return u, nil
}

// Delete removes the user with the given id and returns the removed
// record. The id is never assigned again.
func (s *Store) Delete(id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	delete(s.users, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return u, nil
}

// Search returns, in insertion order, every user whose name, email, or
// position contains the query as a case-insensitive substring. A query
// that is empty after trimming matches nothing.
func (s *Store) Search(query string) []User {
	out := make([]User, 0)
	if strings.TrimSpace(query) == "" {
		return out
	}
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		u := s.users[id]
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Position), q) {
			out = append(out, u)
		}
	}
	return out
}

// Reset restores the empty initial state, including the id counter.
// It exists for tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[int]User)
	s.order = nil
	s.nextID = 1
}

// emailTaken reports whether any user other than excludeID holds the given
// email, compared case-insensitively. Callers must hold s.mu.
func (s *Store) emailTaken(email string, excludeID int) bool {
	for _, u := range s.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
