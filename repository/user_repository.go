package repository

import (
	"database/sql"
	"go-furniture-api/logger"
	"go-furniture-api/model"
	"time"

	"github.com/google/uuid"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByID(id uuid.UUID) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetAllUsers() ([]*model.User, error)
	UpdateUsername(id uuid.UUID, username string) error
	UpdatePassword(id uuid.UUID, passwordHash string, validAfter time.Time) error
	UpdateLastLogin(id uuid.UUID, at time.Time) error
	SetAdmin(id uuid.UUID, isAdmin bool) error
	DeleteUser(id uuid.UUID) error
}

// UserRepository implements IUserRepository.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, username, email, password, is_admin, token_valid_after, created_at, last_login_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
		&user.IsAdmin, &user.TokenValidAfter, &user.CreatedAt, &user.LastLoginAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user record. The id is generated by the
// database; username and email uniqueness is enforced by constraints.
func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRow(query, user.Username, user.Email, user.Password).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByID(id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(query, email))
}

func (r *UserRepository) GetUserByUsername(username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.DB.QueryRow(query, username))
}

// GetAllUsers lists every user, most recently active first.
func (r *UserRepository) GetAllUsers() ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY last_login_at DESC NULLS LAST`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get all users query")
		return nil, err
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		user := &model.User{}
		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
			&user.IsAdmin, &user.TokenValidAfter, &user.CreatedAt, &user.LastLoginAt)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateUsername(id uuid.UUID, username string) error {
	query := `UPDATE users SET username = $1 WHERE id = $2`
	_, err := r.DB.Exec(query, username, id)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// UpdatePassword replaces the password hash and moves the token watermark
// forward, invalidating every token issued before validAfter.
func (r *UserRepository) UpdatePassword(id uuid.UUID, passwordHash string, validAfter time.Time) error {
	log := logger.Log.WithField("user_id", id)
	log.Info("Executing query to update password and token watermark")

	query := `UPDATE users SET password = $1, token_valid_after = $2 WHERE id = $3`
	_, err := r.DB.Exec(query, passwordHash, validAfter, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute update password query")
	}
	return err
}

func (r *UserRepository) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login_at = $1 WHERE id = $2`
	_, err := r.DB.Exec(query, at, id)
	return err
}

func (r *UserRepository) SetAdmin(id uuid.UUID, isAdmin bool) error {
	query := `UPDATE users SET is_admin = $1 WHERE id = $2`
	res, err := r.DB.Exec(query, isAdmin, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteUser removes the user row. Ledger entries are independent of the
// user, so nothing cascades; outstanding tokens die at subject resolution.
func (r *UserRepository) DeleteUser(id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	res, err := r.DB.Exec(query, id)
	if err != nil {
		logger.Log.WithField("user_id", id).WithError(err).Error("Failed to execute delete user query")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
