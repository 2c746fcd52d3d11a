// Package canvas interprets pointer interactions against the session's
// active scene: applying dropped assets, placing and manipulating tokens,
// and deriving the grid overlay.
package canvas

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pentarix1996/D-DMaker/internal/session"
	"github.com/pentarix1996/D-DMaker/pkg/types"
)

// HalfToken is the pointer offset in canvas units. Drop positions shift by
// it on both axes so a dropped token centers under the cursor instead of
// hanging off its top-left corner.
const HalfToken = 32

// Point is a position in client or canvas coordinates.
type Point struct {
	X float64
	Y float64
}

// GridSpec is the grid overlay derived from a scene. It carries no state of
// its own and is recomputed whenever the scene changes.
type GridSpec struct {
	Enabled bool
	Color   string
	Size    int
}

// GridFor derives the grid overlay from the scene, applying the default
// color and cell size when the scene leaves styling unset.
func GridFor(scene *types.Scene) GridSpec {
	if scene == nil {
		return GridSpec{Color: types.DefaultGridColor, Size: types.DefaultGridSize}
	}
	return GridSpec{
		Enabled: scene.GridEnabled,
		Color:   scene.EffectiveGridColor(),
		Size:    scene.EffectiveGridSize(),
	}
}

// DropPosition converts client pointer coordinates to a canvas position,
// given the canvas's top-left corner in the same client space.
func DropPosition(pointer, origin Point) Point {
	return Point{
		X: pointer.X - origin.X - HalfToken,
		Y: pointer.Y - origin.Y - HalfToken,
	}
}

// Canvas applies drops and token manipulation to the scene the session
// currently has active. All mutations go through the session store.
type Canvas struct {
	logger  *slog.Logger
	session *session.Session
}

// New creates a canvas bound to the given session.
func New(logger *slog.Logger, sess *session.Session) *Canvas {
	return &Canvas{logger: logger, session: sess}
}

// HandleDrop applies a drag payload dropped at the given client coordinates
// over a canvas whose top-left corner is at origin. Map and audio drops
// apply only in edit mode; any other asset type places a token in any mode.
// A malformed payload is logged at Warn and changes nothing. The returned
// notice, when non-empty, is meant for the user.
func (c *Canvas) HandleDrop(raw []byte, pointer, origin Point) string {
	payload, err := types.DecodeDragPayload(raw)
	if err != nil {
		c.logger.Warn("ignoring malformed drop payload", slog.Any("error", err))
		return ""
	}

	scene := c.session.CurrentScene()
	if scene == nil {
		c.logger.Warn("drop with no active scene",
			slog.String("asset_id", payload.AssetID))
		return ""
	}

	switch payload.Type {
	case types.AssetMap:
		if !c.session.EditMode() {
			c.logger.Debug("map drop outside edit mode ignored",
				slog.String("asset_id", payload.AssetID))
			return ""
		}
		c.session.UpdateScene(scene.SceneID, types.ScenePatch{
			BackgroundAssetID: &payload.AssetID,
		})
		return ""

	case types.AssetAudio:
		if !c.session.EditMode() {
			c.logger.Debug("audio drop outside edit mode ignored",
				slog.String("asset_id", payload.AssetID))
			return ""
		}
		c.session.UpdateScene(scene.SceneID, types.ScenePatch{
			MusicAssetID: &payload.AssetID,
			MusicName:    &payload.Name,
		})
		return fmt.Sprintf("Scene music set to %s", payload.Name)

	default:
		pos := DropPosition(pointer, origin)
		token := types.NewToken(payload.AssetID, pos.X, pos.Y)
		token.TokenID = newTokenID()
		tokens := append(cloneTokens(scene.Tokens), token)
		c.session.UpdateScene(scene.SceneID, types.ScenePatch{Tokens: &tokens})
		return ""
	}
}

// MoveToken replaces the position of a placed token. Moving is permitted in
// any mode. Returns false if no such token exists on the active scene.
func (c *Canvas) MoveToken(tokenID string, to Point) bool {
	return c.patchTokens(func(tokens []types.Token) ([]types.Token, bool) {
		for i := range tokens {
			if tokens[i].TokenID == tokenID {
				tokens[i].X = to.X
				tokens[i].Y = to.Y
				return tokens, true
			}
		}
		return nil, false
	})
}

// AdjustScale changes a token's scale by the given number of fixed
// increments. Negative steps shrink. The result is clamped to the valid
// scale range.
func (c *Canvas) AdjustScale(tokenID string, steps int) bool {
	return c.patchTokens(func(tokens []types.Token) ([]types.Token, bool) {
		for i := range tokens {
			if tokens[i].TokenID == tokenID {
				tokens[i].ScaleBy(float64(steps) * types.TokenScaleStep)
				return tokens, true
			}
		}
		return nil, false
	})
}

// ToggleShape flips a token between circle and square.
func (c *Canvas) ToggleShape(tokenID string) bool {
	return c.patchTokens(func(tokens []types.Token) ([]types.Token, bool) {
		for i := range tokens {
			if tokens[i].TokenID == tokenID {
				tokens[i].ToggleShape()
				return tokens, true
			}
		}
		return nil, false
	})
}

// DeleteToken removes a token from the active scene. Deletion is permitted
// only in edit mode and only after confirm accepts; a declined confirmation
// is a no-op, not an error.
func (c *Canvas) DeleteToken(tokenID string, confirm func() bool) bool {
	if !c.session.EditMode() {
		return false
	}
	if confirm != nil && !confirm() {
		return false
	}
	return c.patchTokens(func(tokens []types.Token) ([]types.Token, bool) {
		for i := range tokens {
			if tokens[i].TokenID == tokenID {
				return append(tokens[:i], tokens[i+1:]...), true
			}
		}
		return nil, false
	})
}

// patchTokens copies the active scene's token list, lets mutate rework the
// copy, and writes the result back through the session. The copy keeps the
// session's scene untouched when the mutation finds no match.
func (c *Canvas) patchTokens(mutate func([]types.Token) ([]types.Token, bool)) bool {
	scene := c.session.CurrentScene()
	if scene == nil {
		return false
	}
	next, ok := mutate(cloneTokens(scene.Tokens))
	if !ok {
		return false
	}
	return c.session.UpdateScene(scene.SceneID, types.ScenePatch{Tokens: &next})
}

func cloneTokens(tokens []types.Token) []types.Token {
	out := make([]types.Token, len(tokens))
	copy(out, tokens)
	return out
}

// newTokenID generates a UUID v7 for token instance IDs.
func newTokenID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
