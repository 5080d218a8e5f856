package panzoom

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// Layout reports post-layout geometry of the host. A zero content size
// means the content has not been measured yet.
type Layout interface {
	// ViewportRect is the visible area in screen coordinates.
	ViewportRect() Rect
	// ContentSize is the natural (unscaled) size of the content.
	ContentSize() Vec2
}

// StaticLayout is a Layout with fixed values, updated by assigning fields.
type StaticLayout struct {
	Viewport Rect
	Content  Vec2
}

// ViewportRect implements Layout.
func (l *StaticLayout) ViewportRect() Rect { return l.Viewport }

// ContentSize implements Layout.
func (l *StaticLayout) ContentSize() Vec2 { return l.Content }

// Viewer pans and zooms content inside a viewport. It consumes pointer
// gestures as a MotionHandler, listens for zoom events on a ZoomBus, and
// writes the result into a Transform that is drawn with Draw.
//
// All methods must be called from the game loop goroutine.
type Viewer struct {
	// OnSettle, if set, is called whenever a gesture, throw or zoom comes to
	// rest, with the settled transform.
	OnSettle func(Transform)

	cfg    Config
	layout Layout
	bus    *ZoomBus
	log    *zap.Logger
	debug  bool

	transform Transform
	animator  *Animator
	sampler   *Sampler
	receiver  *ZoomReceiver
	retry     retryPolicy

	panOrigin   Vec2
	attached    bool
	initialized bool
}

// NewViewer creates a detached viewer for layout. bus may be nil when the
// viewer is only zoomed directly through Zoom.
func NewViewer(layout Layout, bus *ZoomBus, cfg Config) *Viewer {
	cfg = cfg.withDefaults()
	v := &Viewer{
		cfg:       cfg,
		layout:    layout,
		bus:       bus,
		log:       cfg.Logger,
		transform: IdentityTransform(),
		retry:     retryPolicy{interval: cfg.RetryInterval, maxAttempts: cfg.RetryAttempts},
	}
	v.animator = NewAnimator(&v.transform, cfg.MinZoomRatio)
	v.animator.Duration = cfg.AnimationDuration

	v.sampler = NewSampler(cfg.Axis)
	v.sampler.OnStartFunc = v.gestureStart
	v.sampler.OnMoveFunc = v.gestureMove
	v.sampler.OnEndFunc = v.gestureEnd

	v.receiver = NewZoomReceiver(cfg.InitialZoomRatio, v.onZoom)
	return v
}

// Transform returns the current transform.
func (v *Viewer) Transform() Transform {
	return v.transform
}

// Record returns the current or most recent gesture record.
func (v *Viewer) Record() *MotionRecord {
	return v.sampler.Record()
}

// Animator returns the viewer's animator.
func (v *Viewer) Animator() *Animator {
	return v.animator
}

// Receiver returns the viewer's zoom receiver with its cached ratios.
func (v *Viewer) Receiver() *ZoomReceiver {
	return v.receiver
}

// Attached reports whether Attach has been called without a matching Detach.
func (v *Viewer) Attached() bool {
	return v.attached
}

// Initialized reports whether fit/centre has been applied since the last
// attach.
func (v *Viewer) Initialized() bool {
	return v.initialized
}

// Bounds returns the constraint for the current scale and layout.
func (v *Viewer) Bounds() Bounds {
	return Bounds{
		Enabled:  v.cfg.InBounds,
		Viewport: v.layout.ViewportRect().Size(),
		Content:  v.transform.ContentSize(v.layout.ContentSize()),
		Inset:    v.cfg.Inset,
	}
}

// Attach starts listening for zoom events and runs the initial fit/centre.
// Attaching twice is a no-op.
func (v *Viewer) Attach() {
	if v.attached {
		return
	}
	v.attached = true
	v.initialized = false
	v.receiver.Listen(v.bus)
	v.initialize()
}

// Detach stops listening, cancels any gesture or animation and drops a
// pending layout retry. The transform keeps its last value.
func (v *Viewer) Detach() {
	if !v.attached {
		return
	}
	v.attached = false
	v.receiver.Close()
	v.animator.Cancel()
	v.sampler.Cancel()
	v.retry.reset()
}

// Resize re-runs fit/centre after the viewport changed size. While a layout
// retry is pending the call is absorbed by it.
func (v *Viewer) Resize() {
	if !v.attached {
		return
	}
	v.initialize()
}

// SetDisabled turns all interaction and initialization off or back on.
// Disabling cancels any running gesture or animation.
func (v *Viewer) SetDisabled(disabled bool) {
	v.cfg.Disabled = disabled
	if disabled {
		v.animator.Cancel()
		v.sampler.Cancel()
		return
	}
	if v.attached && !v.initialized {
		v.initialize()
	}
}

// SetTransform replaces the transform immediately, cancelling any animation.
func (v *Viewer) SetTransform(t Transform) {
	v.animator.Cancel()
	v.animator.Set(t)
}

// Update advances pending layout retries and the animator. Call once per
// frame with the frame duration in seconds.
func (v *Viewer) Update(dt float32) {
	if !v.attached {
		return
	}
	if v.retry.update(time.Duration(float64(dt) * float64(time.Second))) {
		v.initialize()
	}
	v.animator.Update(dt)
	if v.debug {
		v.debugLog()
	}
}

// ScreenToContent converts a screen point into content coordinates.
func (v *Viewer) ScreenToContent(p Vec2) Vec2 {
	vp := v.layout.ViewportRect()
	return v.transform.Invert(p.Sub(Vec2{vp.X, vp.Y}))
}

// --- Gesture handling ---

// OnStart implements MotionHandler. Any running animation or throw is
// cancelled before the new gesture is recorded.
func (v *Viewer) OnStart(s Sample) {
	if v.cfg.Disabled || !v.attached {
		return
	}
	v.animator.Cancel()
	v.sampler.OnStart(s)
}

// OnMove implements MotionHandler.
func (v *Viewer) OnMove(s Sample) {
	if v.cfg.Disabled || !v.attached {
		return
	}
	v.sampler.OnMove(s)
}

// OnEnd implements MotionHandler.
func (v *Viewer) OnEnd(s Sample) {
	if v.cfg.Disabled || !v.attached {
		return
	}
	v.sampler.OnEnd(s)
}

// StopsPropagation reports whether pointer events handled by the viewer
// should not reach later handlers.
func (v *Viewer) StopsPropagation() bool {
	return !v.cfg.PropagateSwipe
}

func (v *Viewer) gestureStart(*MotionRecord) {
	v.panOrigin = v.transform.Translation
}

func (v *Viewer) gestureMove(rec *MotionRecord) {
	v.animator.SetTranslation(v.panOrigin.Add(rec.Distance))
}

func (v *Viewer) gestureEnd(rec *MotionRecord) {
	pos := v.transform.Translation
	if res := v.Bounds().Resolve(pos, 1); res.Clamped {
		v.settleTo(res.Position)
		return
	}

	along := math.Abs(v.cfg.Axis.component(rec.Distance))
	if along <= v.cfg.Threshold || rec.Force == 0 {
		v.settled(v.transform)
		return
	}

	v.log.Debug("throw",
		zap.Float64("force", rec.Force),
		zap.Float64("angle", rec.ReleaseAngle))
	th := Throw{Force: rec.Force, Angle: rec.ReleaseAngle}
	v.animator.Throw(th, func(p Vec2) bool {
		return !v.Bounds().InBounds(p)
	}, v.settle)
}

// settle animates back inside the bounds if t is out of them.
func (v *Viewer) settle(t Transform) {
	if res := v.Bounds().Resolve(t.Translation, 1); res.Clamped {
		v.settleTo(res.Position)
		return
	}
	v.settled(t)
}

func (v *Viewer) settleTo(p Vec2) {
	v.animator.Animate(TranslateTo(p), v.settled)
}

func (v *Viewer) settled(t Transform) {
	v.log.Debug("settled",
		zap.Float64("x", t.Translation.X),
		zap.Float64("y", t.Translation.Y),
		zap.Float64("scale", t.Scale))
	if v.OnSettle != nil {
		v.OnSettle(t)
	}
}

// --- Zoom ---

func (v *Viewer) onZoom(e ZoomEvent) {
	v.Zoom(e.Delta())
}

// Zoom changes the scale by delta, keeping the viewport centre fixed, and
// animates to the bounds-corrected result. The scale never drops below the
// configured minimum.
func (v *Viewer) Zoom(delta float64) {
	if v.cfg.Disabled || !v.attached || delta == 0 {
		return
	}
	from := v.animator.Destination()
	if from.Scale <= 0 {
		return
	}
	next := math.Max(from.Scale+delta, v.cfg.MinZoomRatio)
	ratio := next / from.Scale

	vp := v.layout.ViewportRect()
	center := Vec2{vp.Width / 2, vp.Height / 2}
	candidate := zoomAnchored(from.Translation, center, ratio)

	// Mid-drag the zoom lands at once and the pan continues from the
	// anchored position. Bounds are enforced on release.
	if v.sampler.Active() {
		v.animator.Cancel()
		v.animator.Set(Transform{Translation: candidate, Scale: next})
		v.panOrigin = candidate.Sub(v.sampler.Record().Distance)
		return
	}

	b := v.Bounds()
	b.Content = from.ContentSize(v.layout.ContentSize())
	res := b.Resolve(candidate, ratio)

	v.animator.Animate(TransformTo(Transform{Translation: res.Position, Scale: next}), v.settled)
}

// --- Initialization ---

// initialize applies fit-on-init and centre-on-init, retrying while the
// content has no measured size.
func (v *Viewer) initialize() {
	if v.cfg.Disabled || (!v.cfg.FitOnInit && !v.cfg.CenterOnInit) {
		return
	}
	if v.retry.pending {
		return
	}

	vp := v.layout.ViewportRect()
	content := v.layout.ContentSize()
	if vp.Empty() || content.X <= 0 || content.Y <= 0 {
		if v.retry.schedule() {
			v.log.Debug("layout not ready, retrying",
				zap.Int("attempt", v.retry.attempts),
				zap.Duration("interval", v.retry.interval))
		} else if v.retry.exhausted() {
			v.log.Debug("layout never became ready, giving up",
				zap.Int("attempts", v.retry.attempts))
		}
		return
	}
	v.retry.reset()

	t := v.transform
	if v.cfg.FitOnInit {
		t.Scale = fitScale(content, vp.Size())
	}
	t.Scale = v.animator.clampScale(t.Scale)
	if v.cfg.CenterOnInit {
		t.Translation = centerTranslation(content, vp.Size(), t.Scale)
	}
	v.animator.AnimateTo(TransformTo(t), 0, nil)
	v.initialized = true

	v.log.Debug("initialized",
		zap.Float64("scale", t.Scale),
		zap.Float64("x", t.Translation.X),
		zap.Float64("y", t.Translation.Y))
}
