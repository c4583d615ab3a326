package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene/asset"
)

type drawContext struct {
	renderer *Renderer
	viewProj mgl32.Mat4
	world    mgl32.Mat4
}

func (c *drawContext) SetWorldTransform(world mgl32.Mat4) {
	c.world = world
}

// DrawMesh projects mesh with the current world transform. Triangles with a
// vertex behind the near plane or outside the depth range are clipped whole.
func (c *drawContext) DrawMesh(mesh *asset.Mesh, tex *asset.Texture) {
	if mesh == nil {
		return
	}
	r := c.renderer
	mvp := c.viewProj.Mul4(c.world)
	normalMat := c.world.Mat3()
	light := r.cfg.LightDir.Normalize().Mul(-1)
	w, h := float32(r.cfg.Width), float32(r.cfg.Height)

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		var face Face
		face.Texture = tex
		visible := true

		for k := range 3 {
			v := mesh.Vertices[mesh.Indices[i+k]]
			clip := mvp.Mul4x1(v.Position.Vec4(1))
			if clip.W() <= 0 {
				visible = false
				break
			}
			ndc := clip.Vec3().Mul(1 / clip.W())
			if ndc.Z() < -1 || ndc.Z() > 1 {
				visible = false
				break
			}

			n := normalMat.Mul3x1(v.Normal)
			diffuse := float32(0)
			if n.Len() > 0 {
				diffuse = max(n.Normalize().Dot(light), 0)
			}
			shade := min(r.cfg.Ambient+diffuse, 1)

			face.Vertices[k] = ScreenVertex{
				X:     (ndc.X() + 1) / 2 * w,
				Y:     (1 - ndc.Y()) / 2 * h,
				U:     v.UV.X(),
				V:     v.UV.Y(),
				Shade: shade,
			}
			face.Depth += ndc.Z() / 3
		}

		if !visible {
			r.stats.Clipped++
			continue
		}
		r.faces = append(r.faces, face)
	}
}
