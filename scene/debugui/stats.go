package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/actorstage/scene"
)

type FrameStatsComponent struct {
	scene.ComponentBase

	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewFrameStatsComponent(owner *scene.Actor, historyFrames int) *FrameStatsComponent {
	fs := &FrameStatsComponent{
		ComponentBase: scene.NewComponentBase(owner, PanelOrder),
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
	owner.AddComponent(fs)
	return fs
}

// Record adds one frame's delta time, in seconds, to the history.
func (fs *FrameStatsComponent) Record(dt float64) {
	fs.frameHistory[fs.frameIndex] = float32(dt * 1000)
	fs.frameIndex = (fs.frameIndex + 1) % fs.historyFrames
}

// Average returns the mean recorded frame time in milliseconds.
func (fs *FrameStatsComponent) Average() float32 {
	var sum float32
	for _, ft := range fs.frameHistory {
		sum += ft
	}
	return sum / float32(fs.historyFrames)
}

func (fs *FrameStatsComponent) Update(dt float64) {
	owner := fs.Owner()
	if owner == nil || owner.Registry() == nil {
		return
	}
	fs.Record(dt)

	if !imgui.BeginV("Frame Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := owner.Registry().Stats()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Actors: %d active, %d pending", stats.ActiveActors, stats.PendingActors))
	imgui.Text(fmt.Sprintf("Merged: %d  Swept: %d", stats.Merged, stats.Swept))
	imgui.Text(fmt.Sprintf("Failures: %d  Clamped: %d", stats.Failures, stats.Clamped))

	avg := fs.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &fs.frameHistory[0], int32(len(fs.frameHistory)))

	if imgui.TreeNodeStr("Phases") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PhaseTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Phase")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, phase := range stats.Phases {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(phase.Name)
				imgui.TableNextColumn()
				imgui.Text(phase.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(phase.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(phase.LastDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
