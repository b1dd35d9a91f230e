package sec

import (
	"context"
	"net/http"

	"github.com/justrob12/seclab/internal/storage"
	"github.com/justrob12/seclab/internal/storage/db"
)

// decoyDigest is a well-formed bcrypt digest at [DefaultCost] that no password
// produces. Unknown users are checked against it so a lookup miss costs the
// same as a wrong password.
var decoyDigest = []byte("$2a$12$abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQ")

type userKey struct{}

// Authenticate resolves the user from req's Basic Auth credentials. Every
// failure, including a missing header or an unknown user, returns
// [ErrInvalidCredentials].
func Authenticate(ctx context.Context, req *http.Request, store storage.Users) (db.User, error) {
	username, password, ok := req.BasicAuth()
	if !ok {
		return db.User{}, ErrInvalidCredentials
	}
	// password is an immutable string; only the copy can be scrubbed.
	return Login(ctx, store, username, NewSecret(password))
}

// Login verifies candidate against the stored digest for username. The
// candidate is zeroed before returning. Unknown users and wrong passwords
// both return [ErrInvalidCredentials] after a full-cost verification.
func Login(ctx context.Context, store storage.Users, username string, candidate Secret) (db.User, error) {
	defer candidate.Zero()

	user, err := store.GetUserByName(ctx, username)
	if err != nil {
		VerifyPassword(candidate, decoyDigest)
		return db.User{}, ErrInvalidCredentials
	}
	if !VerifyPassword(candidate, user.PasswordHash) {
		return db.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetAuthenticatedUser returns the user stored by [SetAuthenticatedUser], or a
// zero-value User if there is none.
func GetAuthenticatedUser(ctx context.Context) db.User {
	if user, ok := ctx.Value(userKey{}).(db.User); ok {
		return user
	}
	return db.User{}
}

// SetAuthenticatedUser attaches an authenticated user to ctx.
func SetAuthenticatedUser(ctx context.Context, user db.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}
