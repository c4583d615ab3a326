package main

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/asset"
	"github.com/plus3/actorstage/scene/input"
	"github.com/plus3/actorstage/scene/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type emptyLoader struct{}

func (emptyLoader) LoadMesh(path string) (*asset.Mesh, error) {
	return asset.DefaultMesh(), nil
}

func (emptyLoader) LoadTexture(path string) (*asset.Texture, error) {
	return asset.DefaultTexture(), nil
}

func TestStatsFinalize(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var s Stats
		s.Finalize()
		assert.Zero(t, s.Avg)
	})

	t.Run("Samples", func(t *testing.T) {
		s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
		s.Finalize()
		assert.Equal(t, time.Millisecond, s.Min)
		assert.Equal(t, 3*time.Millisecond, s.Max)
		assert.Equal(t, 2*time.Millisecond, s.Avg)
	})
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration: time.Second,
		Actors:   10,
		Churn:    2,
		Frame: scene.FrameStats{
			Frames: 42,
			Merged: 7,
			Swept:  5,
			Phases: []scene.PhaseStats{{Name: "update", AvgDuration: time.Millisecond}},
		},
		GCPauseMetrics: true,
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Total Frames:** 42")
	assert.Contains(t, out, "**Merged From Pending:** 7")
	assert.Contains(t, out, "**Swept Dead:** 5")
	assert.Contains(t, out, "**update phase:** avg 1ms")
	assert.Contains(t, out, "## GC Pause Durations")
}

func TestSpawnerChurn(t *testing.T) {
	renderer := render.New(emptyLoader{}, render.DefaultConfig(), zap.NewNop())
	clock := scene.NewManualClock(time.Unix(0, 0))
	registry := scene.NewRegistry(renderer, &input.Static{}, scene.WithClock(clock))
	require.NoError(t, registry.Initialize())

	scene.NewActor(registry, &Spawner{Rate: 3, Lifetime: 0.1, rng: rand.New(rand.NewPCG(1, 2))})

	clock.Advance(10 * time.Millisecond)
	registry.RunFrame()
	assert.Len(t, registry.Actors(), 4)
	assert.Empty(t, registry.Pending())
	assert.EqualValues(t, 3, registry.Stats().Merged)
	assert.Len(t, renderer.Drawables(), 3)

	for range 10 {
		clock.Advance(50 * time.Millisecond)
		registry.RunFrame()
	}
	assert.Positive(t, registry.Stats().Swept)

	registry.Shutdown()
	assert.Empty(t, registry.Actors())
	assert.Empty(t, renderer.Drawables())
}
