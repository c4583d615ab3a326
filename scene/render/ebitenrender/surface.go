// Package ebitenrender presents projected faces on an Ebiten image.
package ebitenrender

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/actorstage/scene/asset"
	"github.com/plus3/actorstage/scene/render"
)

const maxBatchVertices = math.MaxUint16 - 2

// Surface implements render.Surface. Faces are batched into DrawTriangles
// calls per run of equal texture, or stroked as lines in wireframe mode.
type Surface struct {
	Wireframe bool
	LineColor color.RGBA

	target   *ebiten.Image
	images   map[*asset.Texture]*ebiten.Image
	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewSurface() *Surface {
	return &Surface{
		LineColor: color.RGBA{R: 220, G: 220, B: 215, A: 255},
		images:    make(map[*asset.Texture]*ebiten.Image),
	}
}

// SetTarget sets the image the next Present draws into, normally the screen
// passed to ebiten.Game.Draw.
func (s *Surface) SetTarget(target *ebiten.Image) {
	s.target = target
}

func (s *Surface) Size() (int, int) {
	if s.target == nil {
		return 0, 0
	}
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Present(faces []render.Face) {
	if s.target == nil {
		return
	}
	if s.Wireframe {
		s.stroke(faces)
		return
	}

	var current *asset.Texture
	for _, f := range faces {
		if f.Texture != current || len(s.vertices)+3 > maxBatchVertices {
			s.flush(current)
			current = f.Texture
		}
		s.vertices, s.indices = AppendFace(s.vertices, s.indices, f)
	}
	s.flush(current)
}

func (s *Surface) flush(tex *asset.Texture) {
	if len(s.vertices) == 0 {
		return
	}
	s.target.DrawTriangles(s.vertices, s.indices, s.image(tex), &ebiten.DrawTrianglesOptions{})
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

func (s *Surface) stroke(faces []render.Face) {
	for _, f := range faces {
		shade := f.Vertices[0].Shade
		c := color.RGBA{
			R: uint8(float32(s.LineColor.R) * shade),
			G: uint8(float32(s.LineColor.G) * shade),
			B: uint8(float32(s.LineColor.B) * shade),
			A: s.LineColor.A,
		}
		for k := range 3 {
			a, b := f.Vertices[k], f.Vertices[(k+1)%3]
			vector.StrokeLine(s.target, a.X, a.Y, b.X, b.Y, 1, c, true)
		}
	}
}

func (s *Surface) image(tex *asset.Texture) *ebiten.Image {
	if tex == nil {
		if s.white == nil {
			s.white = ebiten.NewImage(1, 1)
			s.white.Fill(color.White)
		}
		return s.white
	}
	if img, ok := s.images[tex]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(tex.Image)
	s.images[tex] = img
	return img
}

// Dispose releases every uploaded texture.
func (s *Surface) Dispose() {
	for tex, img := range s.images {
		img.Deallocate()
		delete(s.images, tex)
	}
	if s.white != nil {
		s.white.Deallocate()
		s.white = nil
	}
}

// AppendFace appends the Ebiten vertices and indices for f. Texture
// coordinates are scaled to the face texture's pixel size, or to a 1x1 image
// when the face is untextured.
func AppendFace(vertices []ebiten.Vertex, indices []uint16, f render.Face) ([]ebiten.Vertex, []uint16) {
	w, h := float32(1), float32(1)
	if f.Texture != nil {
		w, h = float32(f.Texture.Width), float32(f.Texture.Height)
	}

	base := uint16(len(vertices))
	for _, v := range f.Vertices {
		vertices = append(vertices, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   v.U * w,
			SrcY:   v.V * h,
			ColorR: v.Shade,
			ColorG: v.Shade,
			ColorB: v.Shade,
			ColorA: 1,
		})
	}
	indices = append(indices, base, base+1, base+2)
	return vertices, indices
}
