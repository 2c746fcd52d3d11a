package types

import "time"

// Story themes. A story carries exactly one theme, chosen at creation.
const (
	ThemeFantasy = "fantasy"
	ThemeScifi   = "scifi"
	ThemeHorror  = "horror"
)

// validThemes is the set of recognized theme values.
var validThemes = map[string]bool{
	ThemeFantasy: true,
	ThemeScifi:   true,
	ThemeHorror:  true,
}

// ValidTheme reports whether theme is a recognized story theme.
func ValidTheme(theme string) bool {
	return validThemes[theme]
}

// Story is the root aggregate. It owns zero or more scenes by reference
// (Scene.StoryID); scenes are stored and deleted independently.
//
// The thumbnail is a raw cover image and is never part of the export
// document, hence the "-" JSON tag.
type Story struct {
	StoryID    string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	LastPlayed time.Time `json:"lastPlayed"`
	Theme      string    `json:"theme"`
	Thumbnail  []byte    `json:"-"`
}

// NewStory creates a story with the given name and theme, stamped with the
// current time. The StoryID is assigned by the store on first Set.
func NewStory(name, theme string) *Story {
	now := time.Now().UTC()
	return &Story{
		Name:       name,
		CreatedAt:  now,
		LastPlayed: now,
		Theme:      theme,
	}
}

// Touch records that the story was just played or saved.
func (s *Story) Touch() {
	s.LastPlayed = time.Now().UTC()
}

// Validate checks the fields a story must carry before persistence.
func (s *Story) Validate() error {
	if s.Name == "" {
		return ErrInvalidName
	}
	if !ValidTheme(s.Theme) {
		return ErrInvalidTheme
	}
	return nil
}
