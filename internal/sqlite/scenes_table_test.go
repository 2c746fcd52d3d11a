// Unit tests for the scenes table accessor.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

func TestScenesTable_SetAndGet(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.ScenesTable)
	require.NoError(t, err)

	scene := types.NewScene("story-1", "Opening", 0)
	scene.BackgroundAssetID = "asset-bg"
	scene.MusicAssetID = "asset-track"
	scene.MusicName = "tavern.mp3"
	scene.GridEnabled = true
	tok := types.NewToken("asset-goblin", 100, 200)
	tok.TokenID = "tok-1"
	scene.AddToken(tok)

	id, err := table.Set("", scene)
	require.NoError(t, err)

	entity, err := table.Get(id)
	require.NoError(t, err)
	got := entity.(*types.Scene)
	assert.Equal(t, "story-1", got.StoryID)
	assert.Equal(t, "Opening", got.Name)
	assert.Equal(t, "asset-bg", got.BackgroundAssetID)
	assert.Equal(t, "asset-track", got.MusicAssetID)
	assert.Equal(t, "tavern.mp3", got.MusicName)
	assert.True(t, got.GridEnabled)
	assert.Equal(t, types.DefaultGridColor, got.GridColor)
	assert.Equal(t, types.DefaultGridSize, got.GridSize)
	require.Len(t, got.Tokens, 1)
	assert.Equal(t, "tok-1", got.Tokens[0].TokenID)
	assert.Equal(t, 100.0, got.Tokens[0].X)
	assert.Equal(t, 1.0, got.Tokens[0].Scale)
	assert.Equal(t, types.ShapeCircle, got.Tokens[0].Shape)
}

func TestScenesTable_SetValidates(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.ScenesTable)
	require.NoError(t, err)

	_, err = table.Set("", types.NewScene("story-1", "", 0))
	assert.ErrorIs(t, err, types.ErrInvalidName)

	_, err = table.Set("", types.NewScene("story-1", "Opening", -3))
	assert.ErrorIs(t, err, types.ErrInvalidOrder)

	_, err = table.Set("", 42)
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestScenesTable_FetchByStoryOrdered(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.ScenesTable)
	require.NoError(t, err)

	// Insert out of order for two stories.
	for _, s := range []*types.Scene{
		types.NewScene("story-1", "Third", 2),
		types.NewScene("story-2", "Elsewhere", 0),
		types.NewScene("story-1", "First", 0),
		types.NewScene("story-1", "Second", 1),
	} {
		_, err := table.Set("", s)
		require.NoError(t, err)
	}

	rows, err := table.Fetch(types.Filter{"story_id": "story-1"})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	names := []string{}
	for _, r := range rows {
		names = append(names, r.(*types.Scene).Name)
	}
	assert.Equal(t, []string{"First", "Second", "Third"}, names)
}

func TestScenesTable_DeleteIsIdempotent(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.ScenesTable)
	require.NoError(t, err)

	id, err := table.Set("", types.NewScene("story-1", "Opening", 0))
	require.NoError(t, err)

	require.NoError(t, table.Delete(id))
	_, err = table.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, table.Delete(id))
}

func TestScenesTable_TokenListSurvivesRoundTrip(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.ScenesTable)
	require.NoError(t, err)

	scene := types.NewScene("story-1", "Skirmish", 0)
	for i := 0; i < 3; i++ {
		tok := types.NewToken("asset-orc", float64(i*10), float64(i*20))
		tok.TokenID = generateUUID()
		tok.Scale = 1.5
		tok.Shape = types.ShapeSquare
		scene.AddToken(tok)
	}

	id, err := table.Set("", scene)
	require.NoError(t, err)

	entity, err := table.Get(id)
	require.NoError(t, err)
	got := entity.(*types.Scene)
	require.Len(t, got.Tokens, 3)
	for i, tok := range got.Tokens {
		assert.Equal(t, scene.Tokens[i].TokenID, tok.TokenID)
		assert.Equal(t, 1.5, tok.Scale)
		assert.Equal(t, types.ShapeSquare, tok.Shape)
	}
}
