package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "name", "email", "password_hash", "phone", "is_admin", "created_at"}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewStore(conn), mock
}

func TestStoreGetByID(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ?")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "Alice Admin", "alice@example.com", "hash", int64(555), true, created))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ?")).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows(userCols))

	u, err := s.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Admin", u.Name)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, created, u.CreatedAt)

	_, err = s.GetByID(context.Background(), "u2")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCreateDuplicateEmail(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := s.Create(context.Background(), &User{ID: "u1", Email: "a@b.cd"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdateRunsInTx(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ? FOR UPDATE")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "Old Name", "old@example.com", "hash", int64(1), false, created))
	mock.ExpectExec("UPDATE users").
		WithArgs("New Name", "old@example.com", "hash", int64(1), false, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := s.Update(context.Background(), "u1", func(u *User) error {
		u.Name = "New Name"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdateMissingRollsBack(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("nope").WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectRollback()

	_, err := s.Update(context.Background(), "nope", func(u *User) error { return nil })
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDeleteAndCount(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "Alice Admin", "a@b.cd", "h", int64(1), false, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = ?")).WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(int64(0)))

	u, err := s.Delete(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListByIDs(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id IN (?,?)")).WithArgs("u1", "u2").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "Alice Admin", "a@b.cd", "h", int64(1), false, time.Now()))

	users, err := s.ListByIDs(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	users, err = s.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}
