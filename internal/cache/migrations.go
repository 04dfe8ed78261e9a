package cache

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS master_data (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	payload    TEXT NOT NULL DEFAULT '{}',
	fetched_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS board_snapshots (
	id         TEXT PRIMARY KEY,
	board      TEXT NOT NULL DEFAULT '',
	payload    TEXT NOT NULL DEFAULT '[]',
	fetched_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_fetched_at ON board_snapshots(fetched_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
