package scene_test

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene"
)

type nudge struct {
	scene.ComponentBase
}

func (n *nudge) Update(dt float64) {
	a := n.Owner()
	a.SetPosition(a.Position().Add(mgl32.Vec3{float32(dt), 0, 0}))
}

func BenchmarkNewActor(b *testing.B) {
	r, _, _ := newTestRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scene.NewActor(r, nil)
	}
}

func BenchmarkAddComponent(b *testing.B) {
	r, _, _ := newTestRegistry()
	a := scene.NewActor(r, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.AddComponent(&nudge{scene.NewComponentBase(a, i%8)})
		if i%64 == 63 {
			a = scene.NewActor(r, nil)
		}
	}
}

func BenchmarkComputeWorldTransform(b *testing.B) {
	r, _, _ := newTestRegistry()
	a := scene.NewActor(r, nil)
	a.SetScale(2)
	a.SetRotation(mgl32.QuatRotate(1, mgl32.Vec3{0, 0, 1}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.SetPosition(mgl32.Vec3{float32(i), 0, 0})
		a.ComputeWorldTransform()
	}
}

func BenchmarkProcessUpdate(b *testing.B) {
	clock := scene.NewManualClock(time.Unix(0, 0))
	r, _, _ := newTestRegistry(scene.WithClock(clock))
	if err := r.Initialize(); err != nil {
		b.Fatal(err)
	}
	for range 1000 {
		a := scene.NewActor(r, nil)
		a.AddComponent(&nudge{scene.NewComponentBase(a, 0)})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		clock.Advance(16 * time.Millisecond)
		r.ProcessUpdate()
	}
}

func BenchmarkChurn(b *testing.B) {
	clock := scene.NewManualClock(time.Unix(0, 0))
	r, _, _ := newTestRegistry(scene.WithClock(clock))
	if err := r.Initialize(); err != nil {
		b.Fatal(err)
	}
	scene.NewActor(r, &hookBehavior{update: func(a *scene.Actor, dt float64) {
		for range 10 {
			scene.NewActor(r, nil).SetState(scene.StateDead)
		}
	}})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		clock.Advance(16 * time.Millisecond)
		r.ProcessUpdate()
	}
}
