// Command scene-demo opens a window onto a scene described by a YAML layout.
// W and S move the camera, A and D turn it, Escape quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/actorstage/internal/config"
	"github.com/plus3/actorstage/internal/layout"
	"github.com/plus3/actorstage/internal/logging"
	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/asset"
	"github.com/plus3/actorstage/scene/debugui"
	debugui_ebiten "github.com/plus3/actorstage/scene/debugui/ebiten"
	"github.com/plus3/actorstage/scene/input"
	"github.com/plus3/actorstage/scene/input/ebiteninput"
	"github.com/plus3/actorstage/scene/render"
	"github.com/plus3/actorstage/scene/render/ebitenrender"
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
	overlay := flag.Bool("overlay", false, "Show the debug overlay regardless of config.")
	flag.Parse()

	cfg, err := config.Load(config.Path(*cfgPath))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg.Debug.Overlay = cfg.Debug.Overlay || *overlay

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	game := &Game{log: log, surface: ebitenrender.NewSurface()}
	game.surface.Wireframe = cfg.Render.Wireframe

	var source input.Source = ebiteninput.NewSource()
	if cfg.Debug.Overlay {
		game.imgui = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		source = debugui.CaptureFilter{Source: source}
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowClosingHandled(true)
	if cfg.Frame.TPS > 0 {
		ebiten.SetTPS(cfg.Frame.TPS)
	}

	game.renderer = render.New(asset.NewFileLoader(os.DirFS(cfg.Assets.Root)), renderConfig(cfg), log)
	game.registry = scene.NewRegistry(game.renderer, source,
		scene.WithLogger(log),
		scene.WithMaxDeltaTime(cfg.Frame.MaxDeltaTime))
	if err := game.registry.Initialize(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer game.shutdown()

	data, err := os.ReadFile(filepath.Join(cfg.Assets.Root, cfg.Assets.Scene))
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	loaded, err := layout.Load(game.registry, data)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	if cfg.Debug.Overlay {
		debugui.Spawn(game.registry)
	}
	log.Info("scene loaded",
		zap.String("scene", cfg.Assets.Scene),
		zap.Int("actors", len(loaded.Actors)),
		zap.Bool("camera", loaded.Camera != nil))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
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

// Game drives the registry from ebiten's loop: input and update on each tick,
// output on each draw.
type Game struct {
	log      *zap.Logger
	registry *scene.Registry
	renderer *render.Renderer
	surface  *ebitenrender.Surface
	imgui    *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	step := func() {
		g.registry.ProcessInput()
		g.registry.ProcessUpdate()
	}
	if g.imgui != nil {
		g.imgui.Frame(step)
	} else {
		step()
	}

	if !g.registry.Running() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.renderer.SetSurface(g.surface)
	g.registry.ProcessOutput()

	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) shutdown() {
	g.registry.Shutdown()
	g.surface.Dispose()
	g.log.Info("demo exited")
}
