package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs the application's statements. Every value is bound as a
// parameter; no statement is assembled from input.
type Queries struct {
	db DBTX
}

// New returns Queries over db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const userColumns = `id, name, password_hash, created_at, updated_at`

const getUser = `select ` + userColumns + ` from users where id = ?`

// GetUser returns the user with the given ID, or sql.ErrNoRows.
func (q *Queries) GetUser(ctx context.Context, id uint64) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUser, id))
}

const getUserByName = `select ` + userColumns + ` from users where name = ?`

// GetUserByName returns the user with the given name, or sql.ErrNoRows.
func (q *Queries) GetUserByName(ctx context.Context, name string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByName, name))
}

const getUsers = `select ` + userColumns + ` from users where name > ? order by name limit ?`

// GetUsers returns up to Limit users ordered by name, starting after
// AfterName.
func (q *Queries) GetUsers(ctx context.Context, arg GetUsersParams) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, getUsers, arg.AfterName, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []User
	for rows.Next() {
		var usr User
		if err = rows.Scan(
			&usr.ID,
			&usr.Name,
			&usr.PasswordHash,
			&usr.CreatedAt,
			&usr.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, usr)
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

// upsertUser updates in place when the ID matches. A name owned by another ID
// leaves the row untouched and returns no rows.
const upsertUser = `
insert into users (id, name, password_hash) values (?, ?, ?)
on conflict do update set
    name = excluded.name,
    password_hash = excluded.password_hash,
    updated_at = current_timestamp
where users.id = excluded.id
returning ` + userColumns

// UpsertUser inserts or replaces a user. It returns sql.ErrNoRows if the name
// belongs to a different user.
func (q *Queries) UpsertUser(ctx context.Context, arg UpsertUserParams) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, upsertUser, arg.ID, arg.Name, arg.PasswordHash))
}

const deleteUser = `delete from users where id = ?`

// DeleteUser removes the user with the given ID.
func (q *Queries) DeleteUser(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, deleteUser, id)
	return err
}

func scanUser(row *sql.Row) (User, error) {
	var usr User
	err := row.Scan(
		&usr.ID,
		&usr.Name,
		&usr.PasswordHash,
		&usr.CreatedAt,
		&usr.UpdatedAt,
	)
	return usr, err
}
