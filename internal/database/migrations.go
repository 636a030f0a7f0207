package database

const schema = `
CREATE TABLE IF NOT EXISTS image_assets (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    alt TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'general',
    storage_key TEXT NOT NULL,
    url TEXT NOT NULL,
    thumbnail_url TEXT NOT NULL DEFAULT '',
    responsive_urls TEXT NOT NULL DEFAULT '[]',
    size_bytes INTEGER NOT NULL DEFAULT 0,
    mime_type TEXT NOT NULL DEFAULT '',
    priority INTEGER NOT NULL DEFAULT 0,
    active INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_image_assets_category ON image_assets (category, active, priority);
CREATE INDEX IF NOT EXISTS idx_image_assets_created ON image_assets (created_at);
`
