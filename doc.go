// Package panzoom implements pan and zoom interaction for content shown
// inside a bounded viewport, for [Ebitengine] games and tools.
//
// The package is a small real-time control loop: a [Sampler] records the
// trajectory of a pointer gesture, [EstimateThrow] turns the tail of that
// trajectory into a release force and angle, [Bounds] keeps the content
// inside the viewport, and an [Animator] moves the [Transform] immediately,
// by linear interpolation (via [gween]), or by decaying throw momentum.
// Programmatic zoom travels over a [ZoomBus] from a [ZoomController] to any
// number of viewers.
//
// # Quick start
//
// [Viewer] ties the pieces together. Feed it pointer input from a
// [PointerSource] and call Update and Draw from the game loop:
//
//	layout := &panzoom.StaticLayout{
//		Viewport: panzoom.Rect{Width: 640, Height: 480},
//		Content:  panzoom.Vec2{X: 1920, Y: 1080},
//	}
//	bus := panzoom.NewZoomBus()
//	viewer := panzoom.NewViewer(layout, bus, panzoom.DefaultConfig())
//	viewer.Attach()
//
//	zoom := panzoom.NewZoomController(bus, panzoom.DefaultConfig())
//	input := panzoom.NewPointerSource(viewer)
//	input.OnWheel(func(dy float64, now time.Time) { zoom.Wheel(dy, now) })
//
//	func (g *Game) Update() error {
//		g.input.Update()
//		g.viewer.Update(1.0 / float32(ebiten.TPS()))
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.viewer.Draw(screen, g.picture)
//	}
//
// # Threading
//
// Everything runs on the game loop goroutine. Nothing in the package
// locks; starting a gesture cancels any running animation synchronously.
//
// # ECS
//
// The ecs sub-module forwards zoom events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package panzoom
