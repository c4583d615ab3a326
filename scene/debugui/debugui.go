// Package debugui provides Dear ImGui panels for inspecting a running scene.
// The panels are components on a dedicated debug actor, so they draw during
// the update phase; the ImGui frame must be open while the registry updates.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/input"
)

// PanelOrder runs the panels after gameplay components.
const PanelOrder = 1000

// Spawn creates the debug actor with the actor browser, actor inspector and
// frame statistics panels.
func Spawn(r *scene.Registry) *scene.Actor {
	a := scene.NewActor(r, nil)
	browser := NewActorBrowserComponent(a, 100)
	NewActorInspectorComponent(a, browser)
	NewFrameStatsComponent(a, 120)
	return a
}

// CaptureFilter hides keyboard input from the scene while ImGui wants it,
// for example while a text field has focus.
type CaptureFilter struct {
	input.Source
}

func (f CaptureFilter) Snapshot() input.State {
	if imgui.CurrentIO().WantCaptureKeyboard() {
		return input.NewSnapshot()
	}
	return f.Source.Snapshot()
}
