package types

import "math"

// Token shapes.
const (
	ShapeCircle = "circle"
	ShapeSquare = "square"
)

// Token scale bounds and the increment applied per interaction.
const (
	MinTokenScale  = 0.5
	MaxTokenScale  = 3.0
	TokenScaleStep = 0.1
)

// validShapes is the set of recognized token shapes.
var validShapes = map[string]bool{
	ShapeCircle: true,
	ShapeSquare: true,
}

// ValidShape reports whether shape is a recognized token shape.
func ValidShape(shape string) bool {
	return validShapes[shape]
}

// Token is one placed instance of an asset on a scene. TokenID is unique per
// instance; many tokens may reference the same AssetID. The reference may
// dangle after the asset is deleted, in which case rendering falls back to
// a placeholder.
type Token struct {
	TokenID  string  `json:"id"`
	AssetID  string  `json:"assetId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	Shape    string  `json:"shape"`
	Rotation float64 `json:"rotation"`
	Layer    int     `json:"layer,omitempty"`
}

// NewToken creates a token for the given asset at the given canvas position
// with the default scale, shape, and rotation. The TokenID must be assigned
// by the caller.
func NewToken(assetID string, x, y float64) Token {
	return Token{
		AssetID: assetID,
		X:       x,
		Y:       y,
		Scale:   1.0,
		Shape:   ShapeCircle,
	}
}

// ClampScale quantizes s to the nearest scale step and bounds it to
// [MinTokenScale, MaxTokenScale]. Quantizing keeps repeated increments
// exact: ten decrements from 1.0 land on exactly 0.5.
func ClampScale(s float64) float64 {
	s = math.Round(s/TokenScaleStep) * TokenScaleStep
	if s < MinTokenScale {
		return MinTokenScale
	}
	if s > MaxTokenScale {
		return MaxTokenScale
	}
	return s
}

// ScaleBy adjusts the token scale by delta, clamped to the valid range.
func (t *Token) ScaleBy(delta float64) {
	t.Scale = ClampScale(t.Scale + delta)
}

// ToggleShape flips the token between circle and square.
func (t *Token) ToggleShape() {
	if t.Shape == ShapeCircle {
		t.Shape = ShapeSquare
	} else {
		t.Shape = ShapeCircle
	}
}

// TokenPatch carries a partial token update. Nil fields are left unchanged.
type TokenPatch struct {
	X        *float64
	Y        *float64
	Scale    *float64
	Shape    *string
	Rotation *float64
	Layer    *int
}

// Apply merges the patch into the token. Scale values are clamped, shape
// values are validated; an invalid shape is rejected and nothing else from
// the patch is applied.
func (p TokenPatch) Apply(t *Token) error {
	if p.Shape != nil && !ValidShape(*p.Shape) {
		return ErrInvalidShape
	}
	if p.X != nil {
		t.X = *p.X
	}
	if p.Y != nil {
		t.Y = *p.Y
	}
	if p.Scale != nil {
		t.Scale = ClampScale(*p.Scale)
	}
	if p.Shape != nil {
		t.Shape = *p.Shape
	}
	if p.Rotation != nil {
		t.Rotation = *p.Rotation
	}
	if p.Layer != nil {
		t.Layer = *p.Layer
	}
	return nil
}
