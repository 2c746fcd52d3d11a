package types

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeBundle(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := []byte(`{
			"story": {"id": "s1", "name": "Chronicle", "theme": "fantasy"},
			"scenes": [{"id": "sc1", "storyId": "s1", "name": "Opening", "order": 0, "tokens": []}]
		}`)
		b, err := DecodeBundle(doc)
		if err != nil {
			t.Fatal(err)
		}
		if b.Story.StoryID != "s1" {
			t.Fatalf("expected story s1, got %s", b.Story.StoryID)
		}
		if len(b.Scenes) != 1 || b.Scenes[0].SceneID != "sc1" {
			t.Fatalf("expected one scene sc1, got %v", b.Scenes)
		}
	})

	tests := []struct {
		name string
		doc  string
	}{
		{"not JSON", `{{{`},
		{"missing story", `{"scenes": []}`},
		{"story not an object", `{"story": "name", "scenes": []}`},
		{"missing scenes", `{"story": {"id": "s1"}}`},
		{"scenes not an array", `{"story": {"id": "s1"}, "scenes": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBundle([]byte(tt.doc))
			if !errors.Is(err, ErrMalformedBundle) {
				t.Fatalf("expected ErrMalformedBundle, got %v", err)
			}
		})
	}
}

func TestBundleEncodeDecodeRoundTrip(t *testing.T) {
	story := NewStory("Chronicle", ThemeFantasy)
	story.StoryID = "s1"
	scene := NewScene("s1", "Opening", 0)
	scene.SceneID = "sc1"
	tok := NewToken("asset-1", 12, 34)
	tok.TokenID = "tok-1"
	scene.AddToken(tok)

	b := &StoryBundle{Story: story, Scenes: []*Scene{scene}}
	data, err := b.Encode()
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecodeBundle(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Story.Name != "Chronicle" || got.Story.Theme != ThemeFantasy {
		t.Fatalf("story fields lost in round trip: %+v", got.Story)
	}
	if len(got.Scenes) != 1 {
		t.Fatalf("expected one scene, got %d", len(got.Scenes))
	}
	gotTok := got.Scenes[0].Token("tok-1")
	if gotTok == nil || gotTok.X != 12 || gotTok.Y != 34 || gotTok.Scale != 1.0 {
		t.Fatalf("token fields lost in round trip: %+v", gotTok)
	}
}

func TestBundleFileName(t *testing.T) {
	b := &StoryBundle{Story: &Story{Name: "The Sunken Keep"}}
	if b.FileName() != "The Sunken Keep.json" {
		t.Fatalf("unexpected file name %q", b.FileName())
	}
	empty := &StoryBundle{}
	if empty.FileName() != "story.json" {
		t.Fatalf("expected fallback name, got %q", empty.FileName())
	}
}

func TestBundleNeverCarriesBinary(t *testing.T) {
	story := NewStory("Chronicle", ThemeHorror)
	story.Thumbnail = []byte{0xff, 0xd8}
	b := &StoryBundle{Story: story, Scenes: []*Scene{}}
	data, err := b.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "thumbnail") {
		t.Fatal("thumbnail blob must not be serialized")
	}
}
