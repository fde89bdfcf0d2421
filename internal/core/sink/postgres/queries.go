package postgres

const (
	// queryInsertLine appends one audit line. seq (BIGSERIAL) preserves arrival order.
	queryInsertLine = `
		INSERT INTO audit_lines (kind, event_id, line, recorded_at)
		VALUES ($1, $2, $3, $4)
	`

	// queryTableExists guards against starting before migrations ran.
	queryTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'audit_lines'
		)
	`
)
