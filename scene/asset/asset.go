// Package asset holds decoded resource handles and the Loader collaborator
// that produces them.
package asset

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one mesh vertex: object-space position, normal and texture coordinates.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Mesh is a triangle list. Textures is filled in by whoever resolves
// TexturePaths, normally the renderer's cache.
type Mesh struct {
	Name         string
	Vertices     []Vertex
	Indices      []uint16
	TexturePaths []string
	Textures     []*Texture
	ShaderName   string
	Radius       float32
	SpecPower    float32
}

// Texture returns the texture at index, or nil when out of range.
func (m *Mesh) Texture(index int) *Texture {
	if index < 0 || index >= len(m.Textures) {
		return nil
	}
	return m.Textures[index]
}

// Triangles returns the number of triangles in the index list.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

type Texture struct {
	Path   string
	Image  image.Image
	Width  int
	Height int
}

func newTexture(path string, img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{
		Path:   path,
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}

// Loader decodes resources by path.
type Loader interface {
	LoadMesh(path string) (*Mesh, error)
	LoadTexture(path string) (*Texture, error)
}

// DefaultTexture is a 1x1 white texture used when a texture cannot be loaded.
func DefaultTexture() *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	return newTexture("", img)
}

// DefaultMesh is a unit cube centred on the origin, used when a mesh cannot be loaded.
func DefaultMesh() *Mesh {
	faces := [6][3]mgl32.Vec3{
		// normal, u axis, v axis
		{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
		{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	mesh := &Mesh{
		Name:       "default",
		Vertices:   make([]Vertex, 0, 24),
		Indices:    make([]uint16, 0, 36),
		ShaderName: "BasicMesh",
		SpecPower:  100,
	}
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		base := uint16(len(mesh.Vertices))
		for _, c := range corners {
			pos := n.Add(u.Mul(c[0])).Add(v.Mul(c[1])).Mul(0.5)
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				Normal:   n,
				UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	mesh.Radius = boundingRadius(mesh.Vertices)
	return mesh
}

func boundingRadius(vertices []Vertex) float32 {
	var radius float32
	for _, v := range vertices {
		if l := v.Position.Len(); l > radius {
			radius = l
		}
	}
	return radius
}
