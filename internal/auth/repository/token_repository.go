package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

const tokenColumns = "id, token_hash, moderator_id, expires_at, revoked_at, created_at"

// TokenRepository stores moderator bearer tokens by hash.
type TokenRepository struct {
	db      *sql.DB
	dialect sqlDialect
}

// NewPostgreSQLTokenRepository creates a TokenRepository for PostgreSQL.
func NewPostgreSQLTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db, dialect: postgresDialect}
}

// NewMySQLTokenRepository creates a TokenRepository for MySQL.
func NewMySQLTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db, dialect: mysqlDialect}
}

func (r *TokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	ids, err := r.dialect.uuidValues(token.ID, token.ModeratorID)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode token id")
	}

	query := "INSERT INTO tokens (" + tokenColumns + ") VALUES (" + r.dialect.params(1, 6) + ")"
	_, err = database.GetTx(ctx, r.db).ExecContext(ctx, query,
		ids[0], token.TokenHash, ids[1], token.ExpiresAt, token.RevokedAt, token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByTokenHash returns ErrTokenNotFound when no token has the hash.
func (r *TokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	query := "SELECT " + tokenColumns + " FROM tokens WHERE token_hash = " + r.dialect.placeholder(1)

	var token authDomain.Token
	err := database.GetTx(ctx, r.db).QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.ModeratorID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, authDomain.ErrTokenNotFound
	case err != nil:
		return nil, apperrors.Wrap(err, "failed to get token")
	}
	return &token, nil
}

// DeleteExpired deletes tokens that expired before the given instant. When dryRun is
// true it only counts them.
func (r *TokenRepository) DeleteExpired(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	querier := database.GetTx(ctx, r.db)
	cond := " FROM tokens WHERE expires_at < " + r.dialect.placeholder(1)

	if dryRun {
		var count int64
		if err := querier.QueryRowContext(ctx, "SELECT COUNT(*)"+cond, before).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count expired tokens")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, "DELETE"+cond, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}
