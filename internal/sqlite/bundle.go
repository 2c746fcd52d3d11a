// This file implements scene bulk persistence and the story import/export
// transaction.
package sqlite

import (
	"fmt"
	"sort"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

// BulkPutScenes upserts every scene in a single transaction. Either all
// scenes are applied or none are. Scenes without an ID are assigned one.
func (b *Backend) BulkPutScenes(scenes []*types.Scene) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning bulk upsert: %w", err)
	}
	defer tx.Rollback()

	for _, scene := range scenes {
		if scene.SceneID == "" {
			scene.SceneID = generateUUID()
		}
		if err := upsertScene(tx, scene); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bulk upsert: %w", err)
	}
	return nil
}

// ImportBundle upserts the bundle's story and bulk-upserts its scenes in one
// transaction. Validation is shape-only, matching DecodeBundle: the story
// must exist and carry an ID; scene records are persisted as given. Nothing
// is applied when the bundle is rejected.
func (b *Backend) ImportBundle(bundle *types.StoryBundle) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	if bundle == nil || bundle.Story == nil || bundle.Story.StoryID == "" {
		return fmt.Errorf("%w: missing story", types.ErrMalformedBundle)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	story := bundle.Story
	_, err = tx.Exec(
		`INSERT INTO stories (story_id, name, created_at, last_played, theme, thumbnail) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(story_id) DO UPDATE SET
		   name = excluded.name,
		   created_at = excluded.created_at,
		   last_played = excluded.last_played,
		   theme = excluded.theme`,
		story.StoryID, story.Name, formatTime(story.CreatedAt), formatTime(story.LastPlayed), story.Theme, []byte(nil),
	)
	if err != nil {
		return fmt.Errorf("importing story: %w", err)
	}

	for _, scene := range bundle.Scenes {
		if scene.SceneID == "" {
			scene.SceneID = generateUUID()
		}
		if err := upsertScene(tx, scene); err != nil {
			return fmt.Errorf("importing scene %s: %w", scene.SceneID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// ExportBundle collects a story and its scenes, ordered ascending, into a
// bundle ready for encoding. Returns ErrNotFound if the story does not
// exist.
func (b *Backend) ExportBundle(storyID string) (*types.StoryBundle, error) {
	storiesTable, err := b.GetTable(types.StoriesTable)
	if err != nil {
		return nil, err
	}
	scenesTable, err := b.GetTable(types.ScenesTable)
	if err != nil {
		return nil, err
	}

	entity, err := storiesTable.Get(storyID)
	if err != nil {
		return nil, err
	}
	story := entity.(*types.Story)

	rows, err := scenesTable.Fetch(types.Filter{"story_id": storyID})
	if err != nil {
		return nil, err
	}
	scenes := make([]*types.Scene, 0, len(rows))
	for _, r := range rows {
		scenes = append(scenes, r.(*types.Scene))
	}
	sort.SliceStable(scenes, func(i, j int) bool { return scenes[i].Order < scenes[j].Order })

	return &types.StoryBundle{Story: story, Scenes: scenes}, nil
}
