// Package schema holds the table definitions applied at startup.
package schema

// TableDefinitions are idempotent statements run in order on every start
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS email_templates (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		subject TEXT NOT NULL,
		preheader TEXT NOT NULL DEFAULT '',
		html_content TEXT NOT NULL DEFAULT '',
		blocks JSONB NOT NULL DEFAULT '[]',
		global_styles JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_email_templates_updated_at
		ON email_templates (updated_at DESC) WHERE deleted_at IS NULL`,
}
