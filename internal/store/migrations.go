package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// Each list must be ordered with versions sequential from 1. The
// schema_version insert is part of every migration body.

var sqliteMigrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS todos (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	title     TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	owner     TEXT NOT NULL REFERENCES users(username)
);

CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

var postgresMigrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS todos (
	id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	title     TEXT NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	owner     TEXT NOT NULL REFERENCES users(username)
);

CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
