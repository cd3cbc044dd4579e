package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"equipment-backend/internal/platform/db"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        int64
	IsAdmin      bool
	CreatedAt    time.Time
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserStore persists accounts. Lookups return ErrUserNotFound, writes that
// collide on email return ErrEmailTaken.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
	Create(ctx context.Context, u *User) error
	// Update loads the user, lets apply modify it and writes it back atomically.
	Update(ctx context.Context, id string, apply func(u *User) error) (*User, error)
	Delete(ctx context.Context, id string) (*User, error)
	Count(ctx context.Context) (int64, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store {
	return &Store{db: conn}
}

const userColumns = `id, name, email, password_hash, phone, is_admin, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func getOne(ctx context.Context, q db.DBTX, query string, arg any) (*User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	return getOne(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	return getOne(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email)
}

func (s *Store) List(ctx context.Context) ([]User, error) {
	return s.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id`)
}

func (s *Store) ListByIDs(ctx context.Context, ids []string) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := `SELECT ` + userColumns + ` FROM users WHERE id IN (?` + strings.Repeat(",?", len(ids)-1) + `)`
	return s.query(ctx, q, args...)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, u *User) error {
	const q = `
INSERT INTO users (id, name, email, password_hash, phone, is_admin, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.IsAdmin, u.CreatedAt)
	if db.IsDuplicate(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, id string, apply func(u *User) error) (*User, error) {
	var out *User
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		u, err := getOne(ctx, tx, `SELECT `+userColumns+` FROM users WHERE id = ? FOR UPDATE`, id)
		if err != nil {
			return err
		}
		if err := apply(u); err != nil {
			return err
		}
		const q = `
UPDATE users
SET name = ?, email = ?, password_hash = ?, phone = ?, is_admin = ?
WHERE id = ?
`
		_, err = tx.ExecContext(ctx, q, u.Name, u.Email, u.PasswordHash, u.Phone, u.IsAdmin, u.ID)
		if db.IsDuplicate(err) {
			return ErrEmailTaken
		}
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) (*User, error) {
	var out *User
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		u, err := getOne(ctx, tx, `SELECT `+userColumns+` FROM users WHERE id = ? FOR UPDATE`, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
