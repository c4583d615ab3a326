package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene/asset"
)

// Renderer resolves resources and draws the active actors. Texture and Mesh
// memoize by path and fall back to a default resource when loading fails, so
// they never return nil.
type Renderer interface {
	Texture(path string) *asset.Texture
	Mesh(path string) *asset.Mesh
	AddDrawable(d Drawable)
	RemoveDrawable(d Drawable)
	SetViewMatrix(view mgl32.Mat4)
	Draw(actors []*Actor)
	Shutdown()
}

// Initializer is implemented by renderers that need setup before the first
// frame. Registry.Initialize calls it.
type Initializer interface {
	Initialize() error
}

// RenderContext is handed to Drawable.Draw.
type RenderContext interface {
	SetWorldTransform(world mgl32.Mat4)
	DrawMesh(mesh *asset.Mesh, tex *asset.Texture)
}
