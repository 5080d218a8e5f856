package panzoom

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a gesture script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "drag": true,
	"wheel": true, "zoomIn": true, "zoomOut": true, "resetZoom": true,
	"wait": true, "screenshot": true,
}

// ScriptRunner replays a gesture script frame by frame through a
// PointerSource's injection queue and a ZoomController.
//
//	{"steps": [
//	  {"action": "drag", "fromX": 400, "fromY": 300, "toX": 200, "toY": 300, "frames": 6},
//	  {"action": "wait", "frames": 30},
//	  {"action": "zoomIn"},
//	  {"action": "screenshot", "label": "zoomed"}
//	]}
type ScriptRunner struct {
	shots     *Screenshotter
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScreenshotter routes "screenshot" steps to s. Without one they are
// skipped.
func (r *ScriptRunner) SetScreenshotter(s *Screenshotter) {
	r.shots = s
}

// Done reports whether all steps have been executed and their injected
// events consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it before src.Update.
// zoom may be nil when the script has no zoom steps.
func (r *ScriptRunner) Step(src *PointerSource, zoom *ZoomController) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if src.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		src.InjectPress(st.X, st.Y)
	case "move":
		src.InjectMove(st.X, st.Y)
	case "release":
		src.InjectRelease(st.X, st.Y)
	case "drag":
		src.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		src.InjectWheel(st.DeltaY)
	case "zoomIn":
		if zoom != nil {
			zoom.ZoomIn()
		}
	case "zoomOut":
		if zoom != nil {
			zoom.ZoomOut()
		}
	case "resetZoom":
		if zoom != nil {
			zoom.Reset()
		}
	case "screenshot":
		if r.shots != nil {
			r.shots.Queue(st.Label)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && src.Pending() == 0 {
		r.done = true
	}
}
