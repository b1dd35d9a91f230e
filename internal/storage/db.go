package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"
	"regexp"

	"github.com/influxdata/influxdb/pkg/snowflake"

	"github.com/justrob12/seclab/internal/storage/db"
)

// Username validation constraints.
const (
	minUsernameLen = 3
	maxUsernameLen = 64
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidUsername reports whether name is 3-64 characters, alphanumeric and
// underscores only.
func ValidUsername(name string) bool {
	return len(name) >= minUsernameLen &&
		len(name) <= maxUsernameLen &&
		usernameRegex.MatchString(name)
}

// UserCursor marks the position of a [Users.ListUsers] page.
type UserCursor struct {
	AfterName string `json:"after_name"`
}

// Validate rejects cursors naming a user that could never be stored.
func (c *UserCursor) Validate() error {
	if !ValidUsername(c.AfterName) {
		return ErrInvalidUsername
	}
	return nil
}

// DB is a [Store] backed by a SQLite database.
type DB struct {
	ids     *snowflake.Generator
	db      *sql.DB
	queries *db.Queries
}

// NewDB opens (and migrates) the SQLite database at path.
func NewDB(ctx context.Context, path string, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, path)
	if err != nil {
		return nil, err
	}
	return &DB{
		ids:     snowflake.New(rand.IntN(1023)), //nolint:gosec,mnd // this isn't for crypto
		db:      handle,
		queries: db.New(handle),
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// ListUsers satisfies the [Users] interface.
func (d *DB) ListUsers(ctx context.Context, afterName string, limit int32) ([]db.User, error) {
	return d.queries.GetUsers(ctx, db.GetUsersParams{
		AfterName: afterName,
		Limit:     int64(limit),
	})
}

// GetUser satisfies the [Users] interface.
func (d *DB) GetUser(ctx context.Context, userID uint64) (db.User, error) {
	user, err := d.queries.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// GetUserByName satisfies the [Users] interface.
func (d *DB) GetUserByName(ctx context.Context, name string) (db.User, error) {
	if !ValidUsername(name) {
		return db.User{}, ErrInvalidUsername
	}
	user, err := d.queries.GetUserByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return user, ErrNotFound
	}
	return user, err
}

// UpsertUser satisfies the [Users] interface.
func (d *DB) UpsertUser(ctx context.Context, user db.User) (db.User, error) {
	if !ValidUsername(user.Name) {
		return db.User{}, ErrInvalidUsername
	}
	if user.ID == 0 {
		user.ID = d.ids.Next()
	}
	switch saved, err := d.queries.UpsertUser(ctx, db.UpsertUserParams{
		ID:           user.ID,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
	}); {
	case errors.Is(err, sql.ErrNoRows):
		return db.User{}, ErrAlreadyExists
	default:
		return saved, err
	}
}

// DeleteUser satisfies the [Users] interface.
func (d *DB) DeleteUser(ctx context.Context, userID uint64) error {
	return d.queries.DeleteUser(ctx, userID)
}

var _ Store = (*DB)(nil)
