// Package render implements scene.Renderer: memoized resource lookup, the
// drawable list and a software projection of mesh triangles onto a Surface.
package render

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/asset"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var ErrInvalidProjection = eris.New("invalid projection")

type Config struct {
	Width    int
	Height   int
	FovY     float32 // degrees
	Near     float32
	Far      float32
	Ambient  float32
	LightDir mgl32.Vec3
}

func DefaultConfig() Config {
	return Config{
		Width:    1024,
		Height:   768,
		FovY:     70,
		Near:     10,
		Far:      10000,
		Ambient:  0.2,
		LightDir: mgl32.Vec3{0, -0.7, -0.7},
	}
}

// ScreenVertex is a projected vertex in surface pixels.
type ScreenVertex struct {
	X, Y  float32
	U, V  float32
	Shade float32
}

// Face is one projected triangle. Depth is the mean normalized device depth;
// larger is further away.
type Face struct {
	Vertices [3]ScreenVertex
	Depth    float32
	Texture  *asset.Texture
}

// Surface receives the frame's faces sorted back to front.
type Surface interface {
	Size() (width, height int)
	Present(faces []Face)
}

type Stats struct {
	Drawables int
	Drawn     int
	Faces     int
	Clipped   int
}

type Renderer struct {
	loader asset.Loader
	log    *zap.Logger
	cfg    Config

	textures map[string]*asset.Texture
	meshes   map[string]*asset.Mesh

	defaultTexture *asset.Texture
	defaultMesh    *asset.Mesh

	drawables []scene.Drawable
	view      mgl32.Mat4
	proj      mgl32.Mat4

	surface Surface
	faces   []Face
	live    map[*scene.Actor]struct{}
	stats   Stats
}

func New(loader asset.Loader, cfg Config, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		loader:         loader,
		log:            log,
		cfg:            cfg,
		textures:       make(map[string]*asset.Texture),
		meshes:         make(map[string]*asset.Mesh),
		defaultTexture: asset.DefaultTexture(),
		defaultMesh:    asset.DefaultMesh(),
		view:           mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}),
		live:           make(map[*scene.Actor]struct{}),
	}
}

// Initialize validates the projection and builds the projection matrix.
func (r *Renderer) Initialize() error {
	c := r.cfg
	if c.FovY <= 0 || c.FovY >= 180 {
		return eris.Wrapf(ErrInvalidProjection, "fov %v", c.FovY)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return eris.Wrapf(ErrInvalidProjection, "near %v far %v", c.Near, c.Far)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return eris.Wrapf(ErrInvalidProjection, "size %dx%d", c.Width, c.Height)
	}
	r.Resize(c.Width, c.Height)
	r.log.Info("renderer initialized",
		zap.Int("width", c.Width),
		zap.Int("height", c.Height),
		zap.Float32("fov", c.FovY))
	return nil
}

// Resize rebuilds the projection for a new surface size.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.cfg.Width, r.cfg.Height = width, height
	aspect := float32(width) / float32(height)
	r.proj = mgl32.Perspective(mgl32.DegToRad(r.cfg.FovY), aspect, r.cfg.Near, r.cfg.Far)
}

// SetSurface sets where faces are presented. A nil surface renders headless.
func (r *Renderer) SetSurface(s Surface) {
	r.surface = s
	if s != nil {
		w, h := s.Size()
		if w > 0 && h > 0 && (w != r.cfg.Width || h != r.cfg.Height) {
			r.Resize(w, h)
		}
	}
}

// Texture returns the texture at path, loading it on first use. A texture
// that fails to load is replaced by the default texture for good.
func (r *Renderer) Texture(path string) *asset.Texture {
	if tex, ok := r.textures[path]; ok {
		return tex
	}

	tex, err := r.loader.LoadTexture(path)
	if err != nil {
		r.log.Warn("texture fallback", zap.String("path", path), zap.Error(err))
		tex = r.defaultTexture
	}
	r.textures[path] = tex
	return tex
}

// Mesh returns the mesh at path with its textures resolved, loading it on
// first use. A mesh that fails to load is replaced by the default mesh.
func (r *Renderer) Mesh(path string) *asset.Mesh {
	if mesh, ok := r.meshes[path]; ok {
		return mesh
	}

	mesh, err := r.loader.LoadMesh(path)
	if err != nil {
		r.log.Warn("mesh fallback", zap.String("path", path), zap.Error(err))
		mesh = r.defaultMesh
	}
	if len(mesh.Textures) == 0 {
		for _, p := range mesh.TexturePaths {
			mesh.Textures = append(mesh.Textures, r.Texture(p))
		}
	}
	r.meshes[path] = mesh
	return mesh
}

func (r *Renderer) AddDrawable(d scene.Drawable) {
	r.drawables = append(r.drawables, d)
}

func (r *Renderer) RemoveDrawable(d scene.Drawable) {
	if i := slices.Index(r.drawables, d); i >= 0 {
		r.drawables = slices.Delete(r.drawables, i, i+1)
	}
}

func (r *Renderer) Drawables() []scene.Drawable {
	return slices.Clone(r.drawables)
}

func (r *Renderer) SetViewMatrix(view mgl32.Mat4) {
	r.view = view
}

func (r *Renderer) ViewMatrix() mgl32.Mat4 {
	return r.view
}

func (r *Renderer) ProjectionMatrix() mgl32.Mat4 {
	return r.proj
}

// Draw projects every drawable owned by one of actors and presents the
// result. Drawables whose owner is not among actors are skipped.
func (r *Renderer) Draw(actors []*scene.Actor) {
	clear(r.live)
	for _, a := range actors {
		r.live[a] = struct{}{}
	}

	r.faces = r.faces[:0]
	r.stats = Stats{Drawables: len(r.drawables)}

	ctx := &drawContext{renderer: r, viewProj: r.proj.Mul4(r.view), world: mgl32.Ident4()}
	for _, d := range r.drawables {
		if _, ok := r.live[d.Owner()]; !ok {
			continue
		}
		d.Draw(ctx)
		r.stats.Drawn++
	}

	slices.SortStableFunc(r.faces, func(a, b Face) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	r.stats.Faces = len(r.faces)

	if r.surface != nil {
		r.surface.Present(r.faces)
	}
}

// Faces returns the faces produced by the last Draw, back to front.
func (r *Renderer) Faces() []Face {
	return r.faces
}

func (r *Renderer) Stats() Stats {
	return r.stats
}

// Shutdown drops every cached resource and drawable.
func (r *Renderer) Shutdown() {
	clear(r.textures)
	clear(r.meshes)
	r.drawables = nil
	r.faces = nil
	r.surface = nil
	r.log.Info("renderer shut down")
}
