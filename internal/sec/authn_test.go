package sec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justrob12/seclab/internal/storage"
	"github.com/justrob12/seclab/internal/storage/db"
)

type fakeUsers struct {
	storage.Users

	byName map[string]db.User
}

func (f fakeUsers) GetUserByName(_ context.Context, name string) (db.User, error) {
	if user, ok := f.byName[name]; ok {
		return user, nil
	}
	return db.User{}, storage.ErrNotFound
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	digest, err := testHasher.Hash(NewSecret("s3cret"))
	require.NoError(t, err)
	store := fakeUsers{byName: map[string]db.User{
		"alice": {ID: 1, Name: "alice", PasswordHash: digest},
		"bob":   {ID: 2, Name: "bob", PasswordHash: []byte("corrupt")},
	}}

	tests := []struct {
		name     string
		setup    func(*http.Request)
		wantUser uint64
	}{
		{name: "valid", setup: func(r *http.Request) { r.SetBasicAuth("alice", "s3cret") }, wantUser: 1},
		{name: "wrong password", setup: func(r *http.Request) { r.SetBasicAuth("alice", "nope") }},
		{name: "unknown user", setup: func(r *http.Request) { r.SetBasicAuth("mallory", "s3cret") }},
		{name: "corrupt digest", setup: func(r *http.Request) { r.SetBasicAuth("bob", "s3cret") }},
		{name: "no header", setup: func(*http.Request) {}},
		{name: "malformed header", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic !!!") }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			test.setup(req)

			user, err := Authenticate(t.Context(), req, store)
			if test.wantUser == 0 {
				require.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Zero(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantUser, user.ID)
		})
	}
}

func TestAuthenticatedUserContext(t *testing.T) {
	t.Parallel()

	assert.Zero(t, GetAuthenticatedUser(t.Context()))

	ctx := SetAuthenticatedUser(t.Context(), db.User{ID: 7, Name: "eve"})
	assert.Equal(t, uint64(7), GetAuthenticatedUser(ctx).ID)
}

func TestDecoyDigest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Bcrypt, DetectAlgorithm(decoyDigest))
	assert.False(t, DefaultHasher.NeedsRehash(decoyDigest))
	assert.False(t, VerifyPassword(NewSecret(""), decoyDigest))
}

func TestLogin_ZeroesCandidate(t *testing.T) {
	t.Parallel()

	digest, err := testHasher.Hash(NewSecret("pw"))
	require.NoError(t, err)
	store := fakeUsers{byName: map[string]db.User{"alice": {ID: 1, Name: "alice", PasswordHash: digest}}}

	for _, name := range []string{"alice", "nobody"} {
		candidate := NewSecret("pw")
		_, _ = Login(t.Context(), store, name, candidate)
		assert.True(t, candidate.IsZero(), name)
	}
}
