package postgres

import (
	"database/sql"
	"fmt"

	v1 "github.com/aevon-lab/faultline/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanFilterRow scans a database row into a SavedFilter.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
// A NULL aggregations column becomes the empty string.
func scanFilterRow(row scanner) (*v1.SavedFilter, error) {
	var f v1.SavedFilter
	var kind string
	var aggregations sql.NullString

	err := row.Scan(
		&f.ID,
		&f.TenantID,
		&f.Name,
		&kind,
		&f.Query,
		&aggregations,
		&f.UsesPremiumFeatures,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan filter row: %w", err)
	}

	f.Kind = v1.FilterKind(kind)
	f.Aggregations = aggregations.String
	return &f, nil
}

// nullIfEmpty stores empty aggregation requests as SQL NULL.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
