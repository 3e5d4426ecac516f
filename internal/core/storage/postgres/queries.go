package postgres

// SQL queries for saved filter storage

const (
	// querySaveFilter inserts a filter. Names are unique per tenant.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveFilter = `
		INSERT INTO saved_filters (
			id, tenant_id, name, kind, query, aggregations,
			uses_premium_features, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tenant_id, name) DO NOTHING
		RETURNING id
	`

	queryGetFilter = `
		SELECT
			id, tenant_id, name, kind, query, aggregations,
			uses_premium_features, created_at, updated_at
		FROM saved_filters
		WHERE tenant_id = $1 AND id = $2
	`

	// queryListFilters treats an empty kind ($2) as "all kinds".
	queryListFilters = `
		SELECT
			id, tenant_id, name, kind, query, aggregations,
			uses_premium_features, created_at, updated_at
		FROM saved_filters
		WHERE tenant_id = $1
		  AND ($2 = '' OR kind = $2)
		ORDER BY name ASC
	`

	queryDeleteFilter = `
		DELETE FROM saved_filters
		WHERE tenant_id = $1 AND id = $2
	`
)
