package sqlite

// migrations are applied in order; PRAGMA user_version records how many
// have run. Append only.
var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS accounts (
    seq             INTEGER PRIMARY KEY AUTOINCREMENT,
    id              INTEGER NOT NULL UNIQUE,
    screen_name     TEXT NOT NULL,
    social_net_type TEXT NOT NULL DEFAULT 'Twitter',
    descriptor      TEXT NOT NULL,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS app_state (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_screen_name ON accounts(screen_name);`,
}
