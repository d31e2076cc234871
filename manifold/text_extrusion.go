package manifold

import (
	"bytes"
	"fmt"

	gotext "github.com/go-text/typesetting/font"
)

// GlyphOutlineSource turns a single rune into a closed 2D outline in font
// units, the one non-CSG step of TextExtrusion spec.md §1 calls out as an
// external collaborator ("font glyph loading ... for ImportModel/
// TextExtrusion"). Everything past outline extraction (extruding the
// outline into a solid) goes through Library.Mesh like any other shape.
type GlyphOutlineSource interface {
	// Outline returns the glyph outline for r, as one polygon per contour,
	// scaled so 1 font unit is 1 model unit.
	Outline(r rune) ([]Polygon, error)
}

// GoTextOutlineSource extracts glyph outlines using go-text/typesetting's
// font parser. Grounded on the teacher's text/ package, which shapes and
// rasterizes glyphs with the same library; here only the outline
// extraction surface is wired, consistent with spec.md treating font
// handling as an external collaborator.
type GoTextOutlineSource struct {
	Face *gotext.Face
}

// NewGoTextOutlineSource parses font file bytes with go-text/typesetting,
// the same ParseTTF entry point the teacher's GoTextShaper uses.
func NewGoTextOutlineSource(data []byte) (*GoTextOutlineSource, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("manifold: parsing font: %w", err)
	}
	return &GoTextOutlineSource{Face: face}, nil
}

// Outline is not implemented by the reference source: extracting and
// flattening go-text/typesetting's segment outlines into closed polygons
// is genuine font-rendering work spec.md places out of scope ("described
// only through their interfaces"). Callers that need real glyph geometry
// should supply their own GlyphOutlineSource.
func (s *GoTextOutlineSource) Outline(r rune) ([]Polygon, error) {
	return nil, fmt.Errorf("manifold: glyph outline extraction for %q is not implemented by the reference source", r)
}
