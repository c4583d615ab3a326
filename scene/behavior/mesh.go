package behavior

import (
	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/asset"
)

const MeshOrder = 100

// MeshComponent draws a mesh with its owner's world transform. It adds itself
// to the renderer's drawables on creation and removes itself when destroyed.
type MeshComponent struct {
	scene.ComponentBase

	renderer     scene.Renderer
	mesh         *asset.Mesh
	textureIndex int
}

func NewMeshComponent(owner *scene.Actor, renderer scene.Renderer) *MeshComponent {
	m := &MeshComponent{
		ComponentBase: scene.NewComponentBase(owner, MeshOrder),
		renderer:      renderer,
	}
	owner.AddComponent(m)
	renderer.AddDrawable(m)
	return m
}

func (m *MeshComponent) Mesh() *asset.Mesh {
	return m.mesh
}

func (m *MeshComponent) SetMesh(mesh *asset.Mesh) {
	m.mesh = mesh
}

func (m *MeshComponent) TextureIndex() int {
	return m.textureIndex
}

func (m *MeshComponent) SetTextureIndex(i int) {
	m.textureIndex = i
}

// Draw skips silently when no mesh is set or the owner is gone.
func (m *MeshComponent) Draw(ctx scene.RenderContext) {
	a := m.Owner()
	if m.mesh == nil || a == nil {
		return
	}
	ctx.SetWorldTransform(a.WorldTransform())
	ctx.DrawMesh(m.mesh, m.mesh.Texture(m.textureIndex))
}

func (m *MeshComponent) OnDestroy() {
	m.renderer.RemoveDrawable(m)
}
