package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"go-furniture-api/model"
)

func TestUserRepository_CreateUser(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		createdAt := time.Now()
		dbMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id, created_at`)).
			WithArgs("alice", "alice@x.com", "hashed").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id, createdAt))

		user := &model.User{Username: "alice", Email: "alice@x.com", Password: "hashed"}
		err := repo.CreateUser(user)

		assert.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrDuplicate", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs("alice", "alice@x.com", "hashed").
			WillReturnError(&pq.Error{Code: "23505"})

		user := &model.User{Username: "alice", Email: "alice@x.com", Password: "hashed"}
		err := repo.CreateUser(user)

		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	columns := []string{"id", "username", "email", "password", "is_admin", "token_valid_after", "created_at", "last_login_at"}

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		dbMock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
			WithArgs("alice@x.com").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(id, "alice", "alice@x.com", "hashed", false, nil, time.Now(), nil))

		user, err := repo.GetUserByEmail("alice@x.com")

		assert.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Nil(t, user.TokenValidAfter)
	})

	t.Run("not found surfaces sql.ErrNoRows", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
			WithArgs("ghost@x.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByEmail("ghost@x.com")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	id := uuid.New()
	watermark := time.Now()

	dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET password = $1, token_valid_after = $2 WHERE id = $3`)).
		WithArgs("newhash", watermark, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdatePassword(id, "newhash", watermark))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserRepository_DeleteUser(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		dbMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteUser(id))
	})

	t.Run("missing row reports sql.ErrNoRows", func(t *testing.T) {
		dbMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteUser(id), sql.ErrNoRows)
	})
}
