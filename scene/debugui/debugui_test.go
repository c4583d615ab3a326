package debugui_test

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/behavior"
	"github.com/plus3/actorstage/scene/debugui"
	"github.com/plus3/actorstage/scene/input"
	"github.com/plus3/actorstage/scene/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *scene.Registry {
	return scene.NewRegistry(render.New(nil, render.DefaultConfig(), nil), &input.Static{})
}

func TestActorRows(t *testing.T) {
	r := newRegistry()
	a := scene.NewActor(r, nil)
	a.SetPosition(mgl32.Vec3{3, 0, 4})
	behavior.NewMoveComponent(a)
	b := scene.NewActor(r, nil)
	b.SetState(scene.StatePaused)

	rows := debugui.ActorRows(r.Actors())

	require.Len(t, rows, 2)
	assert.Equal(t, debugui.ActorRow{
		ID:             a.Id(),
		State:          scene.StateActive,
		Position:       mgl32.Vec3{3, 0, 4},
		ComponentCount: 1,
	}, rows[0])
	assert.Equal(t, scene.StatePaused, rows[1].State)

	t.Run("sort", func(t *testing.T) {
		sorted := append([]debugui.ActorRow(nil), rows...)
		debugui.SortRows(sorted, 2, false)
		assert.Equal(t, a.Id(), sorted[0].ID)

		debugui.SortRows(sorted, 0, false)
		assert.Equal(t, b.Id(), sorted[0].ID)

		debugui.SortRows(sorted, 1, true)
		assert.Equal(t, a.Id(), sorted[0].ID)
	})

	t.Run("filter", func(t *testing.T) {
		assert.Len(t, debugui.FilterRows(rows, ""), 2)
		assert.Equal(t, []debugui.ActorRow{rows[1]}, debugui.FilterRows(rows, "PAUSED"))
		assert.Empty(t, debugui.FilterRows(rows, "dead"))
	})
}

func TestReflectionCache(t *testing.T) {
	rc := debugui.NewReflectionCache()
	fields := rc.GetFields(reflect.TypeOf(behavior.MoveComponent{}))

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"RotationSpeed", "ForwardSpeed"}, names)

	again := rc.GetFields(reflect.TypeOf(behavior.MoveComponent{}))
	assert.Equal(t, fields, again)

	assert.Empty(t, rc.GetFields(reflect.TypeOf(0)))
}

func TestFrameStatsHistory(t *testing.T) {
	r := newRegistry()
	fs := debugui.NewFrameStatsComponent(scene.NewActor(r, nil), 4)

	fs.Record(0.010)
	fs.Record(0.030)

	assert.InDelta(t, 10, fs.Average(), 1e-4)
}
