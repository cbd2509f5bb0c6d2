package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS resolutions (
    generation_id        TEXT PRIMARY KEY,
    session_id           TEXT NOT NULL,
    model                TEXT NOT NULL DEFAULT '',
    provider             TEXT NOT NULL DEFAULT '',
    cost                 REAL NOT NULL,
    cache_discount       REAL NOT NULL DEFAULT 0,
    resolved_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_resolutions_session ON resolutions(session_id);
CREATE INDEX IF NOT EXISTS idx_resolutions_resolved ON resolutions(resolved_at);
`
