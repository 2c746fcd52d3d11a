package types

import (
	"errors"
	"testing"
)

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene("story-1", "Scene 1", 0)
	if s.GridEnabled {
		t.Fatal("grid should start disabled")
	}
	if s.GridColor != DefaultGridColor {
		t.Fatalf("expected default grid color %s, got %s", DefaultGridColor, s.GridColor)
	}
	if s.GridSize != DefaultGridSize {
		t.Fatalf("expected default grid size %d, got %d", DefaultGridSize, s.GridSize)
	}
	if s.Tokens == nil || len(s.Tokens) != 0 {
		t.Fatalf("expected empty token list, got %v", s.Tokens)
	}
}

func TestSceneValidate(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		s := NewScene("story-1", "", 0)
		if !errors.Is(s.Validate(), ErrInvalidName) {
			t.Fatal("expected ErrInvalidName")
		}
	})
	t.Run("negative order", func(t *testing.T) {
		s := NewScene("story-1", "Scene 1", -1)
		if !errors.Is(s.Validate(), ErrInvalidOrder) {
			t.Fatal("expected ErrInvalidOrder")
		}
	})
}

func TestSceneGridFallbacks(t *testing.T) {
	s := &Scene{}
	if s.EffectiveGridColor() != DefaultGridColor {
		t.Fatalf("expected default color, got %s", s.EffectiveGridColor())
	}
	if s.EffectiveGridSize() != DefaultGridSize {
		t.Fatalf("expected default size, got %d", s.EffectiveGridSize())
	}

	s.GridColor = "#ff0000"
	s.GridSize = 64
	if s.EffectiveGridColor() != "#ff0000" || s.EffectiveGridSize() != 64 {
		t.Fatal("explicit grid values should win over defaults")
	}
}

func TestSceneTokenOperations(t *testing.T) {
	s := NewScene("story-1", "Scene 1", 0)
	tok := NewToken("asset-1", 10, 10)
	tok.TokenID = "tok-1"
	s.AddToken(tok)

	t.Run("move existing token", func(t *testing.T) {
		if !s.MoveToken("tok-1", 50, 60) {
			t.Fatal("expected move to succeed")
		}
		got := s.Token("tok-1")
		if got.X != 50 || got.Y != 60 {
			t.Fatalf("expected (50, 60), got (%v, %v)", got.X, got.Y)
		}
	})

	t.Run("move missing token is a no-op", func(t *testing.T) {
		if s.MoveToken("missing", 1, 1) {
			t.Fatal("expected move of missing token to report false")
		}
	})

	t.Run("update merges partial fields", func(t *testing.T) {
		shape := ShapeSquare
		ok, err := s.UpdateToken("tok-1", TokenPatch{Shape: &shape})
		if err != nil || !ok {
			t.Fatalf("expected update to succeed, ok=%v err=%v", ok, err)
		}
		if got := s.Token("tok-1"); got.Shape != ShapeSquare {
			t.Fatalf("expected square, got %s", got.Shape)
		}
	})

	t.Run("remove token", func(t *testing.T) {
		if !s.RemoveToken("tok-1") {
			t.Fatal("expected remove to succeed")
		}
		if s.Token("tok-1") != nil {
			t.Fatal("token should be gone")
		}
		if s.RemoveToken("tok-1") {
			t.Fatal("second remove should report false")
		}
	})
}

func TestScenePatchApply(t *testing.T) {
	s := NewScene("story-1", "Scene 1", 0)
	bg := "asset-bg"
	enabled := true
	color := "#112233"
	(ScenePatch{
		BackgroundAssetID: &bg,
		GridEnabled:       &enabled,
		GridColor:         &color,
	}).Apply(s)

	if s.BackgroundAssetID != "asset-bg" {
		t.Fatalf("expected background asset set, got %q", s.BackgroundAssetID)
	}
	if !s.GridEnabled || s.GridColor != "#112233" {
		t.Fatalf("expected grid patch applied, got enabled=%v color=%s", s.GridEnabled, s.GridColor)
	}
	if s.Name != "Scene 1" || s.Order != 0 {
		t.Fatal("unpatched fields must stay unchanged")
	}
}
