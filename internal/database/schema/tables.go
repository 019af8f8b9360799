// Package schema defines the database schema.
//
// Every statement is idempotent and runs at startup. Don't put REFERENCES and
// don't put CHECK constraints in the CREATE TABLE statements.
package schema

// TableNames lists the tables in creation order
var TableNames = []string{
	"templates",
}

// TableDefinitions contains all the SQL statements to create the database tables
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id VARCHAR(36) NOT NULL,
		name VARCHAR(64) NOT NULL,
		version INTEGER NOT NULL,
		category VARCHAR(20) NOT NULL,
		subject VARCHAR(255) NOT NULL DEFAULT '',
		preview_text VARCHAR(255),
		document JSONB NOT NULL,
		html TEXT NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		test_data JSONB,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		deleted_at TIMESTAMP,
		PRIMARY KEY (id, version)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_category ON templates(category) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_templates_updated_at ON templates(updated_at DESC)`,
}
