package panzoom

// Bounds describes the constraint a translation is checked against.
type Bounds struct {
	// Enabled turns bounds enforcement on. When false Resolve is a pass-through.
	Enabled bool
	// Viewport is the size of the visible area.
	Viewport Vec2
	// Content is the content size at the current scale.
	Content Vec2
	// Inset is how far an oversized content edge may recede into the viewport
	// before it is snapped back.
	Inset float64
}

// BoundsResult is the output of Resolve.
type BoundsResult struct {
	Position Vec2
	Clamped  bool
}

// Resolve returns the nearest in-bounds translation for candidate. zoomRatio
// is the speculative scale change being applied to Content (1 when not
// zooming; non-positive values are treated as 1).
//
// Each axis is checked on its own:
//
//	content <= viewport: 0 <= leading edge, trailing edge <= viewport
//	content >  viewport: leading edge > inset snaps to 0,
//	                     trailing edge < viewport-inset snaps flush to the far edge
//
// Clamped is true when any of the four edge checks fired.
func (b Bounds) Resolve(candidate Vec2, zoomRatio float64) BoundsResult {
	if !b.Enabled {
		return BoundsResult{Position: candidate}
	}
	if zoomRatio <= 0 {
		zoomRatio = 1
	}
	content := b.Content.Mul(zoomRatio)

	x, clampedX := clampAxis(candidate.X, content.X, b.Viewport.X, b.Inset)
	y, clampedY := clampAxis(candidate.Y, content.Y, b.Viewport.Y, b.Inset)
	return BoundsResult{Position: Vec2{x, y}, Clamped: clampedX || clampedY}
}

// InBounds reports whether candidate passes every edge check unchanged.
func (b Bounds) InBounds(candidate Vec2) bool {
	return !b.Resolve(candidate, 1).Clamped
}

// clampAxis applies the per-axis edge rules to pos, the leading edge of a
// span of length extent inside a viewport of length view.
func clampAxis(pos, extent, view, inset float64) (float64, bool) {
	if extent <= view {
		if pos < 0 {
			return 0, true
		}
		if pos+extent > view {
			return view - extent, true
		}
		return pos, false
	}

	if pos > inset {
		return 0, true
	}
	if pos+extent < view-inset {
		return view - extent, true
	}
	return pos, false
}
