package repository

import (
	"context"
	"database/sql"
	"errors"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// PostgreSQLFarmRepository implements farm persistence for PostgreSQL.
type PostgreSQLFarmRepository struct {
	db *sql.DB
}

func (p *PostgreSQLFarmRepository) Get(ctx context.Context, farmID string) (*assignmentDomain.Farm, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + farmColumns + ` FROM farms WHERE id = $1`

	farm, err := scanFarm(querier.QueryRowContext(ctx, query, farmID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assignmentDomain.ErrFarmNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get farm")
	}
	return farm, nil
}

func (p *PostgreSQLFarmRepository) Create(ctx context.Context, farm *assignmentDomain.Farm) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO farms (` + farmColumns + `) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`

	_, err := querier.ExecContext(
		ctx,
		query,
		farm.ID,
		nullableString(farm.OwnerID),
		farm.Name,
		farm.Location,
		farm.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create farm")
	}
	return nil
}

func (p *PostgreSQLFarmRepository) List(ctx context.Context, offset, limit int) ([]*assignmentDomain.Farm, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + farmColumns + ` FROM farms ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list farms")
	}
	defer rows.Close() //nolint:errcheck

	return collectFarms(rows)
}

// NewPostgreSQLFarmRepository creates a new PostgreSQL farm repository.
func NewPostgreSQLFarmRepository(db *sql.DB) *PostgreSQLFarmRepository {
	return &PostgreSQLFarmRepository{db: db}
}

func collectFarms(rows *sql.Rows) ([]*assignmentDomain.Farm, error) {
	farms := make([]*assignmentDomain.Farm, 0)
	for rows.Next() {
		farm, err := scanFarm(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan farm")
		}
		farms = append(farms, farm)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate farms")
	}
	return farms, nil
}
