package types

// Grid overlay defaults. The overlay is derived state: it is recomputed from
// the scene fields on every render and never stored separately.
const (
	DefaultGridColor = "#334155"
	DefaultGridSize  = 48
)

// Scene is one stage of a story: a background, an optional music track, and
// an ordered list of placed tokens. Order is unique within a story and
// equals the story's scene count at creation time, so scenes sort in
// creation sequence.
type Scene struct {
	SceneID           string  `json:"id"`
	StoryID           string  `json:"storyId"`
	Name              string  `json:"name"`
	Order             int     `json:"order"`
	BackgroundAssetID string  `json:"backgroundAssetId,omitempty"`
	MusicAssetID      string  `json:"musicAssetId,omitempty"`
	MusicName         string  `json:"musicName,omitempty"`
	Tokens            []Token `json:"tokens"`
	GridEnabled       bool    `json:"gridEnabled"`
	GridColor         string  `json:"gridColor,omitempty"`
	GridSize          int     `json:"gridSize,omitempty"`
}

// NewScene creates a scene for the given story at the given order with the
// grid disabled and default grid styling. The SceneID is assigned by the
// store on first Set.
func NewScene(storyID, name string, order int) *Scene {
	return &Scene{
		StoryID:   storyID,
		Name:      name,
		Order:     order,
		Tokens:    []Token{},
		GridColor: DefaultGridColor,
		GridSize:  DefaultGridSize,
	}
}

// Validate checks the fields a scene must carry before persistence.
func (s *Scene) Validate() error {
	if s.Name == "" {
		return ErrInvalidName
	}
	if s.Order < 0 {
		return ErrInvalidOrder
	}
	return nil
}

// EffectiveGridColor returns the grid color, falling back to the default.
func (s *Scene) EffectiveGridColor() string {
	if s.GridColor == "" {
		return DefaultGridColor
	}
	return s.GridColor
}

// EffectiveGridSize returns the grid cell size, falling back to the default.
func (s *Scene) EffectiveGridSize() int {
	if s.GridSize <= 0 {
		return DefaultGridSize
	}
	return s.GridSize
}

// Token returns a pointer to the token with the given instance ID, or nil.
func (s *Scene) Token(tokenID string) *Token {
	for i := range s.Tokens {
		if s.Tokens[i].TokenID == tokenID {
			return &s.Tokens[i]
		}
	}
	return nil
}

// AddToken appends a token to the scene's token list.
func (s *Scene) AddToken(t Token) {
	s.Tokens = append(s.Tokens, t)
}

// MoveToken replaces the position of the token with the given instance ID.
// Returns false if no such token exists.
func (s *Scene) MoveToken(tokenID string, x, y float64) bool {
	t := s.Token(tokenID)
	if t == nil {
		return false
	}
	t.X = x
	t.Y = y
	return true
}

// UpdateToken merges a partial update into the token with the given instance
// ID. Returns false if no such token exists.
func (s *Scene) UpdateToken(tokenID string, patch TokenPatch) (bool, error) {
	t := s.Token(tokenID)
	if t == nil {
		return false, nil
	}
	if err := patch.Apply(t); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveToken deletes the token with the given instance ID from the scene.
// Returns false if no such token exists.
func (s *Scene) RemoveToken(tokenID string) bool {
	for i := range s.Tokens {
		if s.Tokens[i].TokenID == tokenID {
			s.Tokens = append(s.Tokens[:i], s.Tokens[i+1:]...)
			return true
		}
	}
	return false
}

// ScenePatch carries a partial scene update. Nil fields are left unchanged.
// Tokens replaces the whole token list when set.
type ScenePatch struct {
	Name              *string
	Order             *int
	BackgroundAssetID *string
	MusicAssetID      *string
	MusicName         *string
	Tokens            *[]Token
	GridEnabled       *bool
	GridColor         *string
	GridSize          *int
}

// Apply merges the patch into the scene.
func (p ScenePatch) Apply(s *Scene) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Order != nil {
		s.Order = *p.Order
	}
	if p.BackgroundAssetID != nil {
		s.BackgroundAssetID = *p.BackgroundAssetID
	}
	if p.MusicAssetID != nil {
		s.MusicAssetID = *p.MusicAssetID
	}
	if p.MusicName != nil {
		s.MusicName = *p.MusicName
	}
	if p.Tokens != nil {
		s.Tokens = *p.Tokens
	}
	if p.GridEnabled != nil {
		s.GridEnabled = *p.GridEnabled
	}
	if p.GridColor != nil {
		s.GridColor = *p.GridColor
	}
	if p.GridSize != nil {
		s.GridSize = *p.GridSize
	}
}
