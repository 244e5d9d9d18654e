package store_test

import (
	"testing"
	"time"

	"github.com/alfagnish/userapi/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func alicePatch() store.Patch {
	return store.Patch{
		Name:     strPtr("Alice Johnson"),
		Email:    strPtr("alice@example.com"),
		Age:      intPtr(29),
		Position: strPtr("Data Scientist"),
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	s := store.New()

	u, err := s.Create(alicePatch())
	require.NoError(t, err)

	assert.Equal(t, 1, u.ID)
	assert.Equal(t, "Alice Johnson", u.Name)
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	_, err = time.Parse(store.TimeFormat, u.CreatedAt)
	assert.NoError(t, err)
}

func TestCreateIDsAreMonotonic(t *testing.T) {
	s := store.New()

	first, err := s.Create(alicePatch())
	require.NoError(t, err)

	p := alicePatch()
	p.Email = strPtr("bob@example.com")
	second, err := s.Create(p)
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
}

func TestCreateValidationFailure(t *testing.T) {
	s := store.New()

	_, err := s.Create(store.Patch{})

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"Field 'name' is required",
		"Field 'email' is required",
		"Field 'age' is required",
		"Field 'position' is required",
	}, verr.Messages)

	assert.Empty(t, s.List())
}

func TestCreateEmailConflictIsCaseInsensitive(t *testing.T) {
	s := store.New()

	_, err := s.Create(alicePatch())
	require.NoError(t, err)

	p := alicePatch()
	p.Email = strPtr("ALICE@example.com")
	_, err = s.Create(p)
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestGetNotFound(t *testing.T) {
	s := store.New()

	_, err := s.Get(42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateMergesPatch(t *testing.T) {
	s := store.New()

	created, err := s.Create(alicePatch())
	require.NoError(t, err)

	updated, err := s.Update(created.ID, store.Patch{Position: strPtr("Senior Developer")})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Age, updated.Age)
	assert.Equal(t, "Senior Developer", updated.Position)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)
}

func TestUpdateOwnEmailCaseVariantAllowed(t *testing.T) {
	s := store.New()

	created, err := s.Create(alicePatch())
	require.NoError(t, err)

	updated, err := s.Update(created.ID, store.Patch{Email: strPtr("ALICE@Example.COM")})
	require.NoError(t, err)
	// Stored as given, not normalised.
	assert.Equal(t, "ALICE@Example.COM", updated.Email)
}

func TestUpdateEmailConflict(t *testing.T) {
	s := store.New()

	_, err := s.Create(alicePatch())
	require.NoError(t, err)

	p := alicePatch()
	p.Email = strPtr("bob@example.com")
	bob, err := s.Create(p)
	require.NoError(t, err)

	_, err = s.Update(bob.ID, store.Patch{Email: strPtr("Alice@example.com")})
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUpdateNotFound(t *testing.T) {
	s := store.New()

	_, err := s.Update(7, store.Patch{Name: strPtr("Nobody")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateEmptyPatch(t *testing.T) {
	s := store.New()

	created, err := s.Create(alicePatch())
	require.NoError(t, err)

	_, err = s.Update(created.ID, store.Patch{})

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"At least one field must be provided"}, verr.Messages)
}

func TestDeleteRetiresID(t *testing.T) {
	s := store.New()

	created, err := s.Create(alicePatch())
	require.NoError(t, err)

	deleted, err := s.Delete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = s.Get(created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	p := alicePatch()
	p.Email = strPtr("carol@example.com")
	next, err := s.Create(p)
	require.NoError(t, err)
	assert.Greater(t, next.ID, created.ID)
}

func TestDeleteNotFound(t *testing.T) {
	s := store.New()

	_, err := s.Delete(1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := store.New()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, e := range emails {
		p := alicePatch()
		p.Email = strPtr(e)
		_, err := s.Create(p)
		require.NoError(t, err)
	}

	_, err := s.Delete(2)
	require.NoError(t, err)

	users := s.List()
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "c@example.com", users[1].Email)
}

func TestSearch(t *testing.T) {
	s := store.New()

	p := alicePatch()
	p.Position = strPtr("Senior Developer")
	_, err := s.Create(p)
	require.NoError(t, err)

	p = alicePatch()
	p.Email = strPtr("bob@corp.io")
	p.Name = strPtr("Bob Stone")
	p.Position = strPtr("Product Manager")
	_, err = s.Create(p)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"matches position case-insensitively", "DEVELOPER", 1},
		{"matches email domain", "corp.io", 1},
		{"matches name substring", "o", 2},
		{"no match", "architect", 0},
		{"empty query matches nothing", "", 0},
		{"whitespace query matches nothing", "   ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Search(tt.query)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestReset(t *testing.T) {
	s := store.New()

	_, err := s.Create(alicePatch())
	require.NoError(t, err)

	s.Reset()

	assert.Empty(t, s.List())
	u, err := s.Create(alicePatch())
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
}
