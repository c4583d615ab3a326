package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"
	"github.com/plus3/actorstage/internal/config"
	"github.com/plus3/actorstage/internal/logging"
	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/asset"
	"github.com/plus3/actorstage/scene/behavior"
	"github.com/plus3/actorstage/scene/input"
	"github.com/plus3/actorstage/scene/render"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "Path to a TOML config file.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	actorCount := flag.Int("actors", 5000, "The initial number of actors to create.")
	churn := flag.Int("churn", 50, "Actors spawned during each update pass.")
	lifetime := flag.Float64("lifetime", 2, "Mean lifetime in seconds of churned actors.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile.")
	profilePath := flag.String("profile-path", ".", "Directory for profile output.")
	paced := flag.Bool("paced", false, "Pace frames at the configured frame delay instead of running flat out.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(config.Path(*cfgPath))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profilePath), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profilePath), profile.Quiet).Stop()
	case "":
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	log.Info("starting scene stress test",
		zap.Int("actors", *actorCount),
		zap.Int("churn", *churn),
		zap.Duration("duration", *duration))

	renderer := render.New(asset.NewFileLoader(os.DirFS(cfg.Assets.Root)), renderConfig(cfg), log)
	registry := scene.NewRegistry(renderer, &input.Static{},
		scene.WithLogger(log),
		scene.WithMaxDeltaTime(cfg.Frame.MaxDeltaTime),
		scene.WithFrameDelay(cfg.Frame.Delay))
	if err := registry.Initialize(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer registry.Shutdown()

	rng := rand.New(rand.NewPCG(1, 2))
	for range *actorCount {
		spawnActor(registry, rng, 0)
	}
	scene.NewActor(registry, &Spawner{Rate: *churn, Lifetime: *lifetime, rng: rng})
	log.Info("population complete", zap.Int("active", len(registry.Actors())))

	report := &Report{
		Duration:       *duration,
		Actors:         *actorCount,
		Churn:          *churn,
		Paced:          *paced,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if *paced {
		registry.Run(ctx)
	} else {
	Loop:
		for registry.Running() {
			select {
			case <-ctx.Done():
				break Loop
			default:
				frameStart := time.Now()
				registry.RunFrame()
				report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Frame = *registry.Stats()
	report.FinalActors = len(registry.Actors())
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("frames", report.Frame.Frames))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

func renderConfig(cfg *config.Config) render.Config {
	rc := render.DefaultConfig()
	rc.Width, rc.Height = cfg.Window.Width, cfg.Window.Height
	rc.FovY = cfg.Render.FovY
	rc.Near, rc.Far = cfg.Render.Near, cfg.Render.Far
	rc.Ambient = cfg.Render.Ambient
	return rc
}

// spawnActor creates a moving cube somewhere in front of the default camera.
// A positive lifetime makes it die after roughly that many seconds.
func spawnActor(r *scene.Registry, rng *rand.Rand, lifetime float64) *scene.Actor {
	a := scene.NewActor(r, nil)
	a.SetPosition(mgl32.Vec3{
		200 + rng.Float32()*800,
		rng.Float32()*600 - 300,
		rng.Float32()*400 - 200,
	})
	a.SetScale(5 + rng.Float32()*20)

	move := behavior.NewMoveComponent(a)
	move.RotationSpeed = rng.Float32()*4 - 2
	move.AddForce(mgl32.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, 0}.Mul(100))

	mesh := behavior.NewMeshComponent(a, r.Renderer())
	mesh.SetMesh(r.Renderer().Mesh("cube.yaml"))

	if lifetime > 0 {
		behavior.NewLifetimeComponent(a, lifetime*(0.5+rng.Float64()))
	}
	return a
}

// Spawner creates Rate short-lived actors on every update. They are
// registered mid-update, so each frame exercises the pending merge, and
// their lifetimes feed the dead sweep.
type Spawner struct {
	scene.BaseBehavior
	Rate     int
	Lifetime float64
	rng      *rand.Rand
}

func (s *Spawner) UpdateActor(a *scene.Actor, dt float64) {
	r := a.Registry()
	if r == nil {
		return
	}
	for range s.Rate {
		spawnActor(r, s.rng, s.Lifetime)
	}
}
