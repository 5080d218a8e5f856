package panzoom

import "go.uber.org/zap"

// SetDebugMode enables or disables per-frame logging of the animator state.
// Output goes to the configured Logger at debug level.
func (v *Viewer) SetDebugMode(enabled bool) {
	v.debug = enabled
}

// debugLog records the transform and momentum of an active animation.
// Idle frames are skipped.
func (v *Viewer) debugLog() {
	if !v.debug || !v.animator.Active() {
		return
	}
	t := v.transform
	v.log.Debug("frame",
		zap.Float64("x", t.Translation.X),
		zap.Float64("y", t.Translation.Y),
		zap.Float64("scale", t.Scale),
		zap.Float64("force", v.animator.Force()),
		zap.Bool("gesture", v.sampler.Active()))
}
