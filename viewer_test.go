package panzoom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// plainConfig returns a config without fit/centre so the viewer starts at the
// identity transform.
func plainConfig() Config {
	cfg := DefaultConfig()
	cfg.FitOnInit = false
	cfg.CenterOnInit = false
	return cfg
}

// newTestViewer attaches a viewer over an 800x600 content in a 400x300
// viewport.
func newTestViewer(t *testing.T, cfg Config) (*Viewer, *ZoomBus, *StaticLayout) {
	t.Helper()
	layout := &StaticLayout{
		Viewport: Rect{Width: 400, Height: 300},
		Content:  Vec2{800, 600},
	}
	bus := NewZoomBus()
	v := NewViewer(layout, bus, cfg)
	v.Attach()
	return v, bus, layout
}

func observed(cfg Config) (Config, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg.Logger = zap.New(core)
	return cfg, logs
}

// drag presses at from, moves by step n times every 10ms, and releases at the
// last position.
func drag(v *Viewer, from, step Vec2, n int) {
	v.OnStart(at(from.X, from.Y, 0))
	p := from
	for i := 1; i <= n; i++ {
		p = p.Add(step)
		v.OnMove(at(p.X, p.Y, i*10))
	}
	v.OnEnd(at(p.X, p.Y, n*10))
}

func runUntilIdle(v *Viewer) int {
	ticks := 0
	for v.Animator().Active() && ticks < 1000 {
		v.Update(1.0 / 60)
		ticks++
	}
	return ticks
}

func TestViewerFitAndCenterOnAttach(t *testing.T) {
	layout := &StaticLayout{
		Viewport: Rect{Width: 400, Height: 300},
		Content:  Vec2{500, 100},
	}
	v := NewViewer(layout, nil, DefaultConfig())
	v.Attach()

	require.True(t, v.Initialized())
	tr := v.Transform()
	// Content is relatively wider: width-based fit 400/500.
	assertNear(t, "scale", tr.Scale, 0.8)
	// Scaled content is 400x80, centred vertically.
	assertVec(t, "translation", tr.Translation, Vec2{0, 110}, 1e-9)
	assert.False(t, v.Animator().Active(), "init is applied without animation")
}

func TestViewerFitRespectsMinScale(t *testing.T) {
	layout := &StaticLayout{
		Viewport: Rect{Width: 400, Height: 300},
		Content:  Vec2{1600, 600},
	}
	v := NewViewer(layout, nil, DefaultConfig())
	v.Attach()

	tr := v.Transform()
	// The fit would be 0.25; the floor wins and the 800x300 result is centred.
	assertNear(t, "scale", tr.Scale, 0.5)
	assertVec(t, "translation", tr.Translation, Vec2{-200, 0}, epsilon)
	assert.False(t, v.Animator().Active(), "init is applied without animation")
}

func TestViewerCenterWithoutFit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FitOnInit = false
	v, _, _ := newTestViewer(t, cfg)

	tr := v.Transform()
	assertNear(t, "scale", tr.Scale, 1)
	assertVec(t, "translation", tr.Translation, Vec2{-200, -150}, epsilon)
}

func TestViewerResizeRefits(t *testing.T) {
	v, _, layout := newTestViewer(t, DefaultConfig())
	assertNear(t, "scale", v.Transform().Scale, 0.5)

	layout.Viewport = Rect{Width: 800, Height: 600}
	v.Resize()
	assertNear(t, "scale after resize", v.Transform().Scale, 1)
}

func TestViewerRetriesUntilLaidOut(t *testing.T) {
	cfg, logs := observed(DefaultConfig())
	layout := &StaticLayout{Content: Vec2{800, 600}}
	v := NewViewer(layout, nil, cfg)
	v.Attach()
	require.False(t, v.Initialized())

	v.Update(0.1)
	assert.Equal(t, 1, logs.FilterMessage("layout not ready, retrying").Len())

	layout.Viewport = Rect{Width: 400, Height: 300}
	v.Update(0.1)
	assert.True(t, v.Initialized())
	assertNear(t, "scale", v.Transform().Scale, 0.5)
	assert.Equal(t, 1, logs.FilterMessage("initialized").Len())
}

func TestViewerGivesUpAfterRetryBudget(t *testing.T) {
	cfg, logs := observed(DefaultConfig())
	layout := &StaticLayout{Viewport: Rect{Width: 400, Height: 300}}
	v := NewViewer(layout, nil, cfg)
	v.Attach()

	for i := 0; i < 60; i++ {
		v.Update(0.2)
	}
	assert.Equal(t, defaultRetryAttempts, logs.FilterMessage("layout not ready, retrying").Len())
	assert.Equal(t, 1, logs.FilterMessage("layout never became ready, giving up").Len())
	assert.False(t, v.Initialized())

	// A later resize with real geometry still initializes.
	layout.Content = Vec2{800, 600}
	v.Resize()
	assert.True(t, v.Initialized())
}

func TestViewerResizeDuringPendingRetry(t *testing.T) {
	layout := &StaticLayout{}
	v := NewViewer(layout, nil, DefaultConfig())
	v.Attach()
	require.True(t, v.retry.pending)

	v.Resize()
	v.Resize()
	assert.Equal(t, 1, v.retry.attempts, "resize must not schedule a second retry")

	layout.Viewport = Rect{Width: 400, Height: 300}
	layout.Content = Vec2{800, 600}
	v.Update(0.2)
	assert.True(t, v.Initialized())
	assert.Equal(t, 0, v.retry.attempts)
}

func TestViewerPanFollowsPointer(t *testing.T) {
	v, _, _ := newTestViewer(t, plainConfig())

	v.OnStart(at(200, 150, 0))
	v.OnMove(at(150, 120, 16))
	assertVec(t, "mid-gesture", v.Transform().Translation, Vec2{-50, -30}, epsilon)

	v.OnMove(at(100, 100, 32))
	assertVec(t, "mid-gesture", v.Transform().Translation, Vec2{-100, -50}, epsilon)
}

func TestViewerShortReleaseHasNoMomentum(t *testing.T) {
	v, _, _ := newTestViewer(t, plainConfig())
	var settled []Transform
	v.OnSettle = func(tr Transform) { settled = append(settled, tr) }

	v.OnStart(at(200, 150, 0))
	v.OnMove(at(180, 150, 16)) // fast but only 20px along the axis
	v.OnEnd(at(180, 150, 32))

	assert.False(t, v.Animator().Active())
	require.Len(t, settled, 1)
	assertVec(t, "settled", settled[0].Translation, Vec2{-20, 0}, epsilon)
}

func TestViewerSlowReleaseHasNoMomentum(t *testing.T) {
	v, _, _ := newTestViewer(t, plainConfig())
	v.OnStart(at(200, 150, 0))
	v.OnMove(at(100, 150, 50))
	v.OnEnd(at(100, 150, 500)) // held still before release

	assert.False(t, v.Animator().Active())
	assertVec(t, "translation", v.Transform().Translation, Vec2{-100, 0}, epsilon)
}

func TestViewerThrowContinuesWithMomentum(t *testing.T) {
	v, _, _ := newTestViewer(t, plainConfig())
	settledCount := 0
	v.OnSettle = func(Transform) { settledCount++ }

	drag(v, Vec2{200, 150}, Vec2{-20, 0}, 5)
	require.True(t, v.Animator().Active(), "fast release should throw")
	assert.Equal(t, maxThrowForce, v.Record().Force)
	assert.Equal(t, 180.0, v.Record().ReleaseAngle)

	v.Update(1.0 / 60)
	assertVec(t, "first momentum step", v.Transform().Translation, Vec2{-121, 0}, 1e-9)

	runUntilIdle(v)
	x := v.Transform().Translation.X
	// The throw stops before leaving the bounds (-400 is the far edge).
	assert.GreaterOrEqual(t, x, -400.0)
	assert.Less(t, x, -350.0)
	assert.Equal(t, 0.0, v.Transform().Translation.Y)
	assert.Equal(t, 1, settledCount)
}

func TestViewerOutOfBoundsReleaseSettles(t *testing.T) {
	v, _, _ := newTestViewer(t, plainConfig())
	var settled *Transform
	v.OnSettle = func(tr Transform) { settled = &tr }

	v.OnStart(at(100, 100, 0))
	v.OnMove(at(150, 100, 200))
	// Unbounded while the pointer is down.
	assertVec(t, "mid-gesture", v.Transform().Translation, Vec2{50, 0}, epsilon)
	v.OnEnd(at(150, 100, 400))

	require.True(t, v.Animator().Active(), "settle should animate")
	v.Update(0.2)
	require.NotNil(t, settled)
	assertVec(t, "settled", v.Transform().Translation, Vec2{0, 0}, epsilon)
}

func TestViewerNewGestureCancelsMomentum(t *testing.T) {
	v, _, _ := newTestViewer(t, plainConfig())
	drag(v, Vec2{200, 150}, Vec2{-20, 0}, 5)
	v.Update(1.0 / 60)
	require.Greater(t, v.Animator().Force(), 0.0)

	held := v.Transform().Translation
	v.OnStart(at(300, 150, 1000))
	assert.False(t, v.Animator().Active())
	assert.Zero(t, v.Animator().Force())

	v.Update(1.0 / 60)
	assertVec(t, "translation", v.Transform().Translation, held, epsilon)
}

func TestViewerZoomKeepsCenterFixed(t *testing.T) {
	v, bus, _ := newTestViewer(t, plainConfig())
	c := NewZoomController(bus, DefaultConfig())

	before := v.ScreenToContent(Vec2{200, 150})
	c.ZoomIn()
	runUntilIdle(v)

	tr := v.Transform()
	assertNear(t, "scale", tr.Scale, 1.5)
	assertVec(t, "translation", tr.Translation, Vec2{-100, -75}, epsilon)
	assertVec(t, "content under centre", v.ScreenToContent(Vec2{200, 150}), before, 1e-9)
	assert.Equal(t, 1.5, v.Receiver().ZoomRatio)
}

func TestViewerZoomDuringAnimationKeepsFullDelta(t *testing.T) {
	v, bus, _ := newTestViewer(t, plainConfig())
	c := NewZoomController(bus, DefaultConfig())

	c.ZoomIn()
	v.Update(0.05)
	c.ZoomIn()
	runUntilIdle(v)

	assertNear(t, "scale", v.Transform().Scale, 2)
}

func TestViewerZoomOutFloorsAndClamps(t *testing.T) {
	v, bus, _ := newTestViewer(t, plainConfig())
	c := NewZoomController(bus, DefaultConfig())

	c.ZoomOut()
	c.ZoomOut()
	runUntilIdle(v)

	tr := v.Transform()
	assertNear(t, "scale", tr.Scale, 0.5)
	// 400x300 content in a 400x300 viewport must sit flush.
	assertVec(t, "translation", tr.Translation, Vec2{0, 0}, epsilon)

	v.Zoom(-10)
	runUntilIdle(v)
	assert.GreaterOrEqual(t, v.Transform().Scale, 0.5)
}

func TestViewerInstantAnimation(t *testing.T) {
	cfg := plainConfig()
	cfg.AnimationDuration = -1
	v, _, _ := newTestViewer(t, cfg)

	v.Zoom(1)
	assert.False(t, v.Animator().Active())
	assertNear(t, "scale", v.Transform().Scale, 2)
}

func TestViewerDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = true
	v, bus, _ := newTestViewer(t, cfg)

	assert.False(t, v.Initialized())
	v.OnStart(at(0, 0, 0))
	v.OnMove(at(100, 0, 10))
	v.OnEnd(at(100, 0, 20))
	NewZoomController(bus, DefaultConfig()).ZoomIn()
	v.Update(1)

	assert.Equal(t, IdentityTransform(), v.Transform())

	v.SetDisabled(false)
	assert.True(t, v.Initialized(), "enabling an attached viewer runs the initial fit")
	// 800x600 fitted into 400x300.
	assertNear(t, "scale", v.Transform().Scale, 0.5)
}

func TestViewerEnableBeforeAttachWaitsForAttach(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = true
	layout := &StaticLayout{Viewport: Rect{Width: 400, Height: 300}, Content: Vec2{800, 600}}
	v := NewViewer(layout, nil, cfg)

	v.SetDisabled(false)
	assert.False(t, v.Initialized())
	v.Attach()
	assert.True(t, v.Initialized())
}

func TestViewerZoomDuringDrag(t *testing.T) {
	v, _, _ := newTestViewer(t, plainConfig())

	v.OnStart(at(100, 100, 0))
	v.OnMove(at(90, 100, 10))
	v.Zoom(1)

	// Applied at once, anchored at the viewport centre.
	assert.False(t, v.Animator().Active())
	tr := v.Transform()
	assertNear(t, "scale", tr.Scale, 2)
	assertVec(t, "translation", tr.Translation, Vec2{-220, -150}, epsilon)

	v.Update(0.1)
	v.OnMove(at(80, 100, 20))
	assertVec(t, "translation after move", v.Transform().Translation, Vec2{-230, -150}, epsilon)
	assertNear(t, "scale after move", v.Transform().Scale, 2)
}

func TestViewerDetachUnsubscribes(t *testing.T) {
	v, bus, _ := newTestViewer(t, plainConfig())
	require.Equal(t, 1, bus.Len())

	v.Attach()
	assert.Equal(t, 1, bus.Len(), "attach twice must not double-subscribe")

	v.Detach()
	assert.Equal(t, 0, bus.Len())
	assert.False(t, v.Attached())

	NewZoomController(bus, DefaultConfig()).ZoomIn()
	v.Update(1)
	assertNear(t, "scale", v.Transform().Scale, 1)

	v.Attach()
	assert.Equal(t, 1, bus.Len())
}

func TestViewerStopsPropagation(t *testing.T) {
	cfg := plainConfig()
	v, _, _ := newTestViewer(t, cfg)
	assert.False(t, v.StopsPropagation())

	cfg.PropagateSwipe = false
	v2, _, _ := newTestViewer(t, cfg)
	assert.True(t, v2.StopsPropagation())
}

func TestViewerScreenToContent(t *testing.T) {
	layout := &StaticLayout{Viewport: Rect{X: 10, Y: 20, Width: 400, Height: 300}, Content: Vec2{800, 600}}
	v := NewViewer(layout, nil, plainConfig())
	v.SetTransform(Transform{Translation: Vec2{5, 5}, Scale: 2})

	got := v.ScreenToContent(Vec2{10 + 5 + 40, 20 + 5 + 80})
	assertVec(t, "content", got, Vec2{20, 40}, epsilon)
}

func TestViewerDebugMode(t *testing.T) {
	cfg, logs := observed(plainConfig())
	v, _, _ := newTestViewer(t, cfg)

	v.Update(1.0 / 60)
	assert.Zero(t, logs.FilterMessage("frame").Len(), "debug mode is off by default")

	v.SetDebugMode(true)
	v.Update(1.0 / 60)
	assert.Zero(t, logs.FilterMessage("frame").Len(), "idle frames are not logged")

	v.Zoom(0.5)
	v.Update(1.0 / 60)
	entries := logs.FilterMessage("frame").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap(), "scale")
}
