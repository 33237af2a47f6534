package repository

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// sqlDialect captures what differs between the PostgreSQL and MySQL schemas of the
// tokens and audit_logs tables.
type sqlDialect struct {
	// placeholder renders the n-th (1-based) bind parameter.
	placeholder func(n int) string
	uuidValue   func(id uuid.UUID) (any, error)
}

var (
	postgresDialect = sqlDialect{
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		uuidValue:   func(id uuid.UUID) (any, error) { return id, nil },
	}
	// MySQL stores IDs as BINARY(16).
	mysqlDialect = sqlDialect{
		placeholder: func(int) string { return "?" },
		uuidValue:   func(id uuid.UUID) (any, error) { return id.MarshalBinary() },
	}
)

// params renders placeholders first..first+count-1 joined by commas.
func (d sqlDialect) params(first, count int) string {
	out := make([]string, count)
	for i := range out {
		out[i] = d.placeholder(first + i)
	}
	return strings.Join(out, ", ")
}

// uuidValues encodes ids in order, stopping at the first failure.
func (d sqlDialect) uuidValues(ids ...uuid.UUID) ([]any, error) {
	values := make([]any, 0, len(ids))
	for _, id := range ids {
		value, err := d.uuidValue(id)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
