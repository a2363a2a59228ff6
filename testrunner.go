package panzoom

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	ID       int32   `json:"id,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromSpan float64 `json:"fromSpan,omitempty"`
	ToSpan   float64 `json:"toSpan,omitempty"`
	H        float64 `json:"h,omitempty"`
	V        float64 `json:"v,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// gestureScriptFile is the top-level JSON structure for a gesture script.
type gestureScriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"down": true, "move": true, "up": true, "tap": true, "drag": true,
	"pinch": true, "scroll": true, "wait": true,
}

// GestureScript sequences injected input across frames for automated
// testing and replay. Attach to a TouchBridge via SetScript.
type GestureScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadGestureScript parses a JSON gesture script of the form
//
//	{"steps": [{"action": "pinch", "x": 200, "y": 300, "fromSpan": 100, "toSpan": 40, "frames": 10}]}
//
// Supported actions are down, move, up, tap, drag, pinch, scroll and wait.
func LoadGestureScript(jsonData []byte) (*GestureScript, error) {
	var script gestureScriptFile
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &GestureScript{steps: script.Steps}, nil
}

// SetScript attaches a GestureScript to the bridge. The script advances at
// the start of every Update. Pass nil to detach.
func (b *TouchBridge) SetScript(script *GestureScript) {
	b.script = script
}

// Done reports whether all steps in the script have been executed.
func (r *GestureScript) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *GestureScript) step(b *TouchBridge) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(b.injectQueue) > 0 {
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
	case "down":
		b.InjectDown(st.ID, st.X, st.Y)
	case "move":
		b.InjectMove(st.ID, st.X, st.Y)
	case "up":
		b.InjectUp(st.ID, st.X, st.Y)
	case "tap":
		b.InjectTap(st.ID, st.X, st.Y)
	case "drag":
		b.InjectDrag(st.ID, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		b.InjectPinch(st.X, st.Y, st.FromSpan, st.ToSpan, st.Frames)
	case "scroll":
		b.InjectScroll(st.X, st.Y, st.H, st.V)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(b.injectQueue) == 0 {
		r.done = true
	}
}
