// This file implements the stories table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

// Compile-time interface check: storiesTable must implement Table.
var _ types.Table = (*storiesTable)(nil)

// storiesTable implements the Table interface for the story entity type.
type storiesTable struct {
	backend *Backend
}

// Get retrieves a story by ID and hydrates the row to *types.Story.
func (st *storiesTable) Get(id string) (any, error) {
	release, err := st.backend.guard()
	if err != nil {
		return nil, err
	}
	defer release()

	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := st.backend.db.QueryRow(
		"SELECT story_id, name, created_at, last_played, theme, thumbnail FROM stories WHERE story_id = ?",
		id,
	)
	story, err := hydrateStory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting story %s: %w", id, err)
	}
	return story, nil
}

// Set persists a story. If id is empty, generates a UUID v7 and creates the
// story. If id is provided, the story is upserted under that ID. Returns
// the actual ID used.
func (st *storiesTable) Set(id string, data any) (string, error) {
	release, err := st.backend.guard()
	if err != nil {
		return "", err
	}
	defer release()

	story, ok := data.(*types.Story)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := story.Validate(); err != nil {
		return "", err
	}

	if id == "" {
		id = generateUUID()
	}
	story.StoryID = id

	_, err = st.backend.db.Exec(
		`INSERT INTO stories (story_id, name, created_at, last_played, theme, thumbnail) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(story_id) DO UPDATE SET
		   name = excluded.name,
		   created_at = excluded.created_at,
		   last_played = excluded.last_played,
		   theme = excluded.theme,
		   thumbnail = excluded.thumbnail`,
		id, story.Name, formatTime(story.CreatedAt), formatTime(story.LastPlayed), story.Theme, story.Thumbnail,
	)
	if err != nil {
		return "", fmt.Errorf("persisting story: %w", err)
	}

	return id, nil
}

// Delete removes a story by ID. Deleting a missing story is a no-op.
// Scenes referencing the story are not cascade-deleted; the data layer
// leaves dangling scenes to the caller.
func (st *storiesTable) Delete(id string) error {
	release, err := st.backend.guard()
	if err != nil {
		return err
	}
	defer release()

	if id == "" {
		return types.ErrInvalidID
	}
	if _, err := st.backend.db.Exec("DELETE FROM stories WHERE story_id = ?", id); err != nil {
		return fmt.Errorf("deleting story %s: %w", id, err)
	}
	return nil
}

// Fetch queries stories matching the filter, newest first. Supported filter
// keys: "name" (string), "theme" (string).
func (st *storiesTable) Fetch(filter types.Filter) ([]any, error) {
	release, err := st.backend.guard()
	if err != nil {
		return nil, err
	}
	defer release()

	query := "SELECT story_id, name, created_at, last_played, theme, thumbnail FROM stories"
	var conditions []string
	var args []any

	if filter != nil {
		if v, ok := filter["name"]; ok {
			name, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "name = ?")
			args = append(args, name)
		}
		if v, ok := filter["theme"]; ok {
			theme, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "theme = ?")
			args = append(args, theme)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := st.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching stories: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		story, err := hydrateStory(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating story: %w", err)
		}
		results = append(results, story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stories: %w", err)
	}
	return results, nil
}

// hydrateStory converts a SQLite row into a *types.Story.
func hydrateStory(row rowScanner) (*types.Story, error) {
	var s types.Story
	var createdAt, lastPlayed string
	if err := row.Scan(&s.StoryID, &s.Name, &createdAt, &lastPlayed, &s.Theme, &s.Thumbnail); err != nil {
		return nil, err
	}
	var err error
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.LastPlayed, err = parseTime("last_played", lastPlayed); err != nil {
		return nil, err
	}
	return &s, nil
}
