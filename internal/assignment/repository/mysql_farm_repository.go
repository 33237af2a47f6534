package repository

import (
	"context"
	"database/sql"
	"errors"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// MySQLFarmRepository implements farm persistence for MySQL.
type MySQLFarmRepository struct {
	db *sql.DB
}

func (m *MySQLFarmRepository) Get(ctx context.Context, farmID string) (*assignmentDomain.Farm, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + farmColumns + ` FROM farms WHERE id = ?`

	farm, err := scanFarm(querier.QueryRowContext(ctx, query, farmID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assignmentDomain.ErrFarmNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get farm")
	}
	return farm, nil
}

func (m *MySQLFarmRepository) Create(ctx context.Context, farm *assignmentDomain.Farm) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO farms (` + farmColumns + `) VALUES (?, ?, ?, ?, ?)`

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

func (m *MySQLFarmRepository) List(ctx context.Context, offset, limit int) ([]*assignmentDomain.Farm, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + farmColumns + ` FROM farms ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list farms")
	}
	defer rows.Close() //nolint:errcheck

	return collectFarms(rows)
}

// NewMySQLFarmRepository creates a new MySQL farm repository.
func NewMySQLFarmRepository(db *sql.DB) *MySQLFarmRepository {
	return &MySQLFarmRepository{db: db}
}
