// Package session holds the in-memory editing state for the currently
// loaded story: the story itself, its scenes, the active scene pointer, and
// the edit/play mode flag. The session is an explicit object handed to the
// views that need it, never a package-level singleton, and it is decoupled
// from the persistent store so edits batch up until an explicit Save.
package session

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

// Session is the authoritative in-memory state for what is being viewed or
// edited. Mutations are synchronous whole-state updates; the mutex only
// guards against accidental cross-goroutine use, there is no concurrent
// mutation protocol beyond serialization.
type Session struct {
	mu     sync.Mutex
	logger *slog.Logger

	activeStory   *types.Story
	scenes        []*types.Scene
	activeSceneID string
	editMode      bool
}

// New creates an empty session. Edit mode starts enabled; the player view
// switches it off on entry.
func New(logger *slog.Logger) *Session {
	return &Session{
		logger:   logger,
		editMode: true,
	}
}

// LoadStory replaces all session state with the given story and scenes.
// Scenes are sorted by order ascending, and the active pointer lands on the
// lowest-order scene, or stays unset when scenes is empty.
func (s *Session) LoadStory(story *types.Story, scenes []*types.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := make([]*types.Scene, len(scenes))
	copy(sorted, scenes)
	sortScenes(sorted)

	s.activeStory = story
	s.scenes = sorted
	s.activeSceneID = ""
	if len(sorted) > 0 {
		s.activeSceneID = sorted[0].SceneID
	}
}

// ActiveStory returns the currently loaded story, or nil.
func (s *Session) ActiveStory() *types.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeStory
}

// Scenes returns the scene list, ordered ascending.
func (s *Session) Scenes() []*types.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*types.Scene, len(s.scenes))
	copy(out, s.scenes)
	return out
}

// ActiveSceneID returns the active scene pointer, or "" when unset.
func (s *Session) ActiveSceneID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSceneID
}

// SetActiveScene sets the active scene pointer. The id is not checked
// against the current scene list; a stale pointer simply makes
// CurrentScene return nil.
func (s *Session) SetActiveScene(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSceneID = id
}

// SetEditMode toggles between author mode (backgrounds, music, and token
// deletion allowed) and player mode (tokens may only be placed and moved).
func (s *Session) SetEditMode(edit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editMode = edit
}

// EditMode reports whether the session is in author mode.
func (s *Session) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

// AddScene appends a scene, re-sorts by order, and switches the active
// pointer to the new scene.
func (s *Session) AddScene(scene *types.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenes = append(s.scenes, scene)
	sortScenes(s.scenes)
	s.activeSceneID = scene.SceneID
}

// CreateScene builds a scene for the loaded story with order equal to the
// current scene count, adds it, and returns it. The name defaults to
// "Scene N" when empty. Returns an error when no story is loaded.
func (s *Session) CreateScene(name string) (*types.Scene, error) {
	s.mu.Lock()
	if s.activeStory == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("no story loaded")
	}
	order := len(s.scenes)
	storyID := s.activeStory.StoryID
	s.mu.Unlock()

	if name == "" {
		name = fmt.Sprintf("Scene %d", order+1)
	}
	scene := types.NewScene(storyID, name, order)
	s.AddScene(scene)
	return scene, nil
}

// UpdateScene merges partial fields into the scene with the given id.
// A missing id is a no-op; the return value reports whether a scene
// matched.
func (s *Session) UpdateScene(id string, patch types.ScenePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	scene := s.findLocked(id)
	if scene == nil {
		s.logger.Debug("update for unknown scene ignored", slog.String("scene_id", id))
		return false
	}
	patch.Apply(scene)
	sortScenes(s.scenes)
	return true
}

// DeleteScene removes the scene with the given id. When the removed scene
// was active the pointer becomes unset; it is deliberately not advanced to
// a neighbor.
func (s *Session) DeleteScene(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, scene := range s.scenes {
		if scene.SceneID == id {
			s.scenes = append(s.scenes[:i], s.scenes[i+1:]...)
			break
		}
	}
	if s.activeSceneID == id {
		s.activeSceneID = ""
	}
}

// CurrentScene returns the active scene, or nil when the pointer is unset
// or stale.
func (s *Session) CurrentScene() *types.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeSceneID == "" {
		return nil
	}
	return s.findLocked(s.activeSceneID)
}

// EnsureActiveScene activates the first scene when nothing is active and
// scenes exist. The player view calls this on entry.
func (s *Session) EnsureActiveScene() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeSceneID == "" && len(s.scenes) > 0 {
		s.activeSceneID = s.scenes[0].SceneID
	}
}

// NextScene advances the active pointer to the following scene in order.
// Returns false at the end of the list or when nothing is active.
func (s *Session) NextScene() bool {
	return s.step(1)
}

// PreviousScene moves the active pointer to the preceding scene in order.
// Returns false at the start of the list or when nothing is active.
func (s *Session) PreviousScene() bool {
	return s.step(-1)
}

func (s *Session) step(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, scene := range s.scenes {
		if scene.SceneID == s.activeSceneID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	next := idx + delta
	if next < 0 || next >= len(s.scenes) {
		return false
	}
	s.activeSceneID = s.scenes[next].SceneID
	return true
}

// Save flushes the session to the persistent store: all scenes are
// bulk-upserted in one transaction and the story's lastPlayed is stamped.
// The session itself is never auto-persisted; this is the explicit save.
func (s *Session) Save(store types.Store) error {
	s.mu.Lock()
	story := s.activeStory
	scenes := make([]*types.Scene, len(s.scenes))
	copy(scenes, s.scenes)
	s.mu.Unlock()

	if story == nil {
		return fmt.Errorf("no story loaded")
	}

	if err := store.BulkPutScenes(scenes); err != nil {
		return fmt.Errorf("saving scenes: %w", err)
	}

	story.Touch()
	stories, err := store.GetTable(types.StoriesTable)
	if err != nil {
		return err
	}
	if _, err := stories.Set(story.StoryID, story); err != nil {
		return fmt.Errorf("saving story: %w", err)
	}

	s.logger.Info("progress saved",
		slog.String("story_id", story.StoryID),
		slog.Int("scenes", len(scenes)))
	return nil
}

// findLocked returns the scene with the given id. Caller holds s.mu.
func (s *Session) findLocked(id string) *types.Scene {
	for _, scene := range s.scenes {
		if scene.SceneID == id {
			return scene
		}
	}
	return nil
}

func sortScenes(scenes []*types.Scene) {
	sort.SliceStable(scenes, func(i, j int) bool {
		return scenes[i].Order < scenes[j].Order
	})
}
