// file: repository/token_repository.go

package repository

import (
	"database/sql"
	"go-furniture-api/logger"
	"time"
)

// ITokenRepository defines the contract for the revocation ledger.
type ITokenRepository interface {
	BlockToken(jti string) error
	IsBlocked(jti string) (bool, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// TokenRepository implements ITokenRepository over the blocked_tokens table.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// BlockToken inserts a jti into the revocation ledger. Inserting the same
// jti twice is not an error; the unique constraint makes the second insert
// a no-op so concurrent revocations of one token cannot fail.
func (r *TokenRepository) BlockToken(jti string) error {
	log := logger.Log.WithField("jti", jti)
	log.Info("Executing query to block token")

	query := `INSERT INTO blocked_tokens (jti) VALUES ($1) ON CONFLICT (jti) DO NOTHING`
	_, err := r.DB.Exec(query, jti)
	if err != nil {
		log.WithError(err).Error("Failed to execute block token query")
		return err
	}
	return nil
}

// IsBlocked reports whether a jti is present in the ledger. This is a
// point query run on every authenticated request.
func (r *TokenRepository) IsBlocked(jti string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM blocked_tokens WHERE jti = $1)`
	err := r.DB.QueryRow(query, jti).Scan(&exists)
	if err != nil {
		logger.Log.WithField("jti", jti).WithError(err).Error("Failed to execute blocked token lookup")
		return false, err
	}
	return exists, nil
}

// DeleteOlderThan prunes ledger entries created before cutoff. Entries
// older than the maximum token lifetime can never match a live token, so
// removing them does not change any validation outcome.
func (r *TokenRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM blocked_tokens WHERE created_at < $1`, cutoff)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute ledger sweep query")
		return 0, err
	}
	return res.RowsAffected()
}
