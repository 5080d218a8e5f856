package panzoom

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Transform is the visual state of the panned/zoomed content: a uniform
// scale about the content's top-left corner followed by a translation in
// viewport pixels. It is the animator's source of truth and is converted to
// a renderer representation only when drawing.
type Transform struct {
	Translation Vec2
	Scale       float64
}

// IdentityTransform returns a transform with unit scale and no translation.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Matrix returns the affine matrix [a, b, c, d, tx, ty] mapping content
// coordinates to viewport coordinates.
func (t Transform) Matrix() [6]float64 {
	return [6]float64{t.Scale, 0, 0, t.Scale, t.Translation.X, t.Translation.Y}
}

// ScreenMatrix returns the matrix mapping content coordinates to screen
// coordinates for a viewport positioned at vp.
func (t Transform) ScreenMatrix(vp Rect) [6]float64 {
	origin := [6]float64{1, 0, 0, 1, vp.X, vp.Y}
	return multiplyAffine(origin, t.Matrix())
}

// Apply maps a content-space point into viewport space.
func (t Transform) Apply(p Vec2) Vec2 {
	x, y := transformPoint(t.Matrix(), p.X, p.Y)
	return Vec2{x, y}
}

// Invert maps a viewport-space point back into content space. A zero scale
// maps everything to the origin of the translation.
func (t Transform) Invert(p Vec2) Vec2 {
	x, y := transformPoint(invertAffine(t.Matrix()), p.X, p.Y)
	return Vec2{x, y}
}

// ContentSize returns the size natural content occupies under t.
func (t Transform) ContentSize(natural Vec2) Vec2 {
	return natural.Mul(t.Scale)
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// fitScale returns the uniform scale that fits content inside viewport while
// preserving aspect ratio: width-based when the content is relatively wider
// than the viewport, height-based otherwise.
func fitScale(content, viewport Vec2) float64 {
	if content.X <= 0 || content.Y <= 0 || viewport.X <= 0 || viewport.Y <= 0 {
		return 1
	}
	if content.X/content.Y > viewport.X/viewport.Y {
		return viewport.X / content.X
	}
	return viewport.Y / content.Y
}

// centerTranslation returns the translation that centres content of the given
// natural size at scale inside viewport.
func centerTranslation(content, viewport Vec2, scale float64) Vec2 {
	return Vec2{
		X: (viewport.X - content.X*scale) / 2,
		Y: (viewport.Y - content.Y*scale) / 2,
	}
}

// zoomAnchored returns the translation keeping the viewport centre fixed when
// the scale changes by ratio (newScale/oldScale).
func zoomAnchored(translation, center Vec2, ratio float64) Vec2 {
	return center.Add(translation.Sub(center).Mul(ratio))
}
