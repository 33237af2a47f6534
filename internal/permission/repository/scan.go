package repository

import (
	"cmp"
	"database/sql"
	"slices"
	"time"

	apperrors "github.com/allisson/vetdesk/internal/errors"
	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

type grantRow struct {
	id      string
	kind    permissionDomain.Kind
	enabled bool
}

// grantRows flattens a grant into rows ordered by key.
func grantRows(grant *permissionDomain.Grant) []grantRow {
	rows := make([]grantRow, 0, len(grant.Capabilities)+len(grant.SubOptions))
	for id, enabled := range grant.Capabilities {
		rows = append(rows, grantRow{id: id, kind: permissionDomain.KindCategory, enabled: enabled})
	}
	for id, enabled := range grant.SubOptions {
		rows = append(rows, grantRow{id: id, kind: permissionDomain.KindSubOption, enabled: enabled})
	}
	slices.SortFunc(rows, func(a, b grantRow) int {
		return cmp.Compare(a.id, b.id)
	})
	return rows
}

// scanGrant folds moderator_grants rows into a Grant. UpdatedAt is the latest row time.
func scanGrant(rows *sql.Rows, moderatorID string) (*permissionDomain.Grant, error) {
	grant := permissionDomain.NewGrant(moderatorID)

	for rows.Next() {
		var (
			id        string
			kind      string
			enabled   bool
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &kind, &enabled, &updatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan moderator grant")
		}

		switch permissionDomain.Kind(kind) {
		case permissionDomain.KindCategory:
			grant.Capabilities[id] = enabled
		case permissionDomain.KindSubOption:
			grant.SubOptions[id] = enabled
		}

		if grant.UpdatedAt == nil || updatedAt.After(*grant.UpdatedAt) {
			at := updatedAt
			grant.UpdatedAt = &at
		}
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate moderator grant")
	}

	return grant, nil
}
