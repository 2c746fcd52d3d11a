// This file implements the scenes table accessor for the SQLite backend.
// Tokens are stored as a JSON array in a TEXT column; every other field maps
// to its own column so story/order lookups stay indexable.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

// Compile-time interface check: scenesTable must implement Table.
var _ types.Table = (*scenesTable)(nil)

// scenesTable implements the Table interface for the scene entity type.
type scenesTable struct {
	backend *Backend
}

// Get retrieves a scene by ID and hydrates the row to *types.Scene.
func (st *scenesTable) Get(id string) (any, error) {
	release, err := st.backend.guard()
	if err != nil {
		return nil, err
	}
	defer release()

	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := st.backend.db.QueryRow(selectScene+" WHERE scene_id = ?", id)
	scene, err := hydrateScene(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting scene %s: %w", id, err)
	}
	return scene, nil
}

// Set persists a scene. If id is empty, generates a UUID v7 and creates the
// scene. If id is provided, the scene is upserted under that ID. Returns
// the actual ID used.
func (st *scenesTable) Set(id string, data any) (string, error) {
	release, err := st.backend.guard()
	if err != nil {
		return "", err
	}
	defer release()

	scene, ok := data.(*types.Scene)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := scene.Validate(); err != nil {
		return "", err
	}

	if id == "" {
		id = generateUUID()
	}
	scene.SceneID = id

	if err := upsertScene(st.backend.db, scene); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a scene by ID. Deleting a missing scene is a no-op.
func (st *scenesTable) Delete(id string) error {
	release, err := st.backend.guard()
	if err != nil {
		return err
	}
	defer release()

	if id == "" {
		return types.ErrInvalidID
	}
	if _, err := st.backend.db.Exec("DELETE FROM scenes WHERE scene_id = ?", id); err != nil {
		return fmt.Errorf("deleting scene %s: %w", id, err)
	}
	return nil
}

// Fetch queries scenes matching the filter, ordered ascending. Supported
// filter keys: "story_id" (string).
func (st *scenesTable) Fetch(filter types.Filter) ([]any, error) {
	release, err := st.backend.guard()
	if err != nil {
		return nil, err
	}
	defer release()

	query := selectScene
	var conditions []string
	var args []any

	if filter != nil {
		if v, ok := filter["story_id"]; ok {
			storyID, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "story_id = ?")
			args = append(args, storyID)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY story_id, ord ASC"

	rows, err := st.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching scenes: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		scene, err := hydrateScene(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating scene: %w", err)
		}
		results = append(results, scene)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenes: %w", err)
	}
	return results, nil
}

// selectScene is the shared column list for scene queries.
const selectScene = "SELECT scene_id, story_id, name, ord, background_asset_id, music_asset_id, music_name, tokens, grid_enabled, grid_color, grid_size FROM scenes"

// upsertScene writes a scene through any execer (plain connection or
// transaction). Used by Set, BulkPutScenes, and ImportBundle.
func upsertScene(db execer, scene *types.Scene) error {
	tokens := scene.Tokens
	if tokens == nil {
		tokens = []types.Token{}
	}
	tokensJSON, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("marshaling tokens: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO scenes (scene_id, story_id, name, ord, background_asset_id, music_asset_id, music_name, tokens, grid_enabled, grid_color, grid_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(scene_id) DO UPDATE SET
		   story_id = excluded.story_id,
		   name = excluded.name,
		   ord = excluded.ord,
		   background_asset_id = excluded.background_asset_id,
		   music_asset_id = excluded.music_asset_id,
		   music_name = excluded.music_name,
		   tokens = excluded.tokens,
		   grid_enabled = excluded.grid_enabled,
		   grid_color = excluded.grid_color,
		   grid_size = excluded.grid_size`,
		scene.SceneID, scene.StoryID, scene.Name, scene.Order,
		scene.BackgroundAssetID, scene.MusicAssetID, scene.MusicName,
		string(tokensJSON), boolToInt(scene.GridEnabled), scene.GridColor, scene.GridSize,
	)
	if err != nil {
		return fmt.Errorf("persisting scene: %w", err)
	}
	return nil
}

// execer is the subset of *sql.DB and *sql.Tx that upsertScene needs.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// hydrateScene converts a SQLite row into a *types.Scene.
func hydrateScene(row rowScanner) (*types.Scene, error) {
	var s types.Scene
	var tokensJSON string
	var gridEnabled int
	if err := row.Scan(
		&s.SceneID, &s.StoryID, &s.Name, &s.Order,
		&s.BackgroundAssetID, &s.MusicAssetID, &s.MusicName,
		&tokensJSON, &gridEnabled, &s.GridColor, &s.GridSize,
	); err != nil {
		return nil, err
	}
	s.GridEnabled = gridEnabled != 0
	s.Tokens = []types.Token{}
	if tokensJSON != "" {
		if err := json.Unmarshal([]byte(tokensJSON), &s.Tokens); err != nil {
			return nil, fmt.Errorf("parsing tokens: %w", err)
		}
	}
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
