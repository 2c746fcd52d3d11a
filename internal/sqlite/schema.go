// Package sqlite implements the SQLite storage backend for D-DMaker.
package sqlite

// Schema DDL for all tables. The database file is durable across runs, so
// every statement is idempotent.
const (
	createStories = `CREATE TABLE IF NOT EXISTS stories (
    story_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL,
    last_played TEXT NOT NULL,
    theme TEXT NOT NULL,
    thumbnail BLOB
);`

	createScenes = `CREATE TABLE IF NOT EXISTS scenes (
    scene_id TEXT PRIMARY KEY,
    story_id TEXT NOT NULL,
    name TEXT NOT NULL,
    ord INTEGER NOT NULL,
    background_asset_id TEXT NOT NULL DEFAULT '',
    music_asset_id TEXT NOT NULL DEFAULT '',
    music_name TEXT NOT NULL DEFAULT '',
    tokens TEXT NOT NULL DEFAULT '[]',
    grid_enabled INTEGER NOT NULL DEFAULT 0,
    grid_color TEXT NOT NULL DEFAULT '',
    grid_size INTEGER NOT NULL DEFAULT 0
);`

	createAssets = `CREATE TABLE IF NOT EXISTS assets (
    asset_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    asset_type TEXT NOT NULL,
    data BLOB NOT NULL
);`
)

// Index DDL for the secondary lookups: scenes by story (and ordered within
// a story), assets by type, stories by name and creation time.
const (
	idxStoriesName    = `CREATE INDEX IF NOT EXISTS idx_stories_name ON stories(name);`
	idxStoriesCreated = `CREATE INDEX IF NOT EXISTS idx_stories_created ON stories(created_at);`
	idxScenesStory    = `CREATE INDEX IF NOT EXISTS idx_scenes_story ON scenes(story_id);`
	idxScenesStoryOrd = `CREATE INDEX IF NOT EXISTS idx_scenes_story_ord ON scenes(story_id, ord);`
	idxAssetsType     = `CREATE INDEX IF NOT EXISTS idx_assets_type ON assets(asset_type);`
	idxAssetsName     = `CREATE INDEX IF NOT EXISTS idx_assets_name ON assets(name);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createStories,
	createScenes,
	createAssets,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxStoriesName,
	idxStoriesCreated,
	idxScenesStory,
	idxScenesStoryOrd,
	idxAssetsType,
	idxAssetsName,
}
