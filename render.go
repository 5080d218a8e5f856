package panzoom

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// GeoM returns t as an ebiten geometry matrix mapping content coordinates to
// viewport coordinates.
func (t Transform) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(t.Scale, t.Scale)
	g.Translate(t.Translation.X, t.Translation.Y)
	return g
}

// ScreenGeoM returns t as an ebiten geometry matrix mapping content
// coordinates to screen coordinates for a viewport positioned at vp.
func (t Transform) ScreenGeoM(vp Rect) ebiten.GeoM {
	m := t.ScreenMatrix(vp)
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Draw renders content onto dst, clipped to the viewer's viewport.
// Nothing is drawn before the viewport has a size.
func (v *Viewer) Draw(dst, content *ebiten.Image) {
	vp := v.layout.ViewportRect()
	if vp.Empty() || dst == nil || content == nil {
		return
	}
	// Sub-images keep the parent's coordinate space, so the viewport origin
	// stays in the matrix.
	clip := dst.SubImage(image.Rect(
		int(vp.X), int(vp.Y),
		int(vp.X+vp.Width), int(vp.Y+vp.Height),
	)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM = v.transform.ScreenGeoM(vp)
	op.Filter = ebiten.FilterLinear
	clip.DrawImage(content, op)
}
