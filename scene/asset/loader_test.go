package asset_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene/asset"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleMesh = `
shader: BasicMesh
textures: [tri.png]
specular_power: 50
vertices:
  - [0, 0, 0, 0, 0, 1, 0, 0]
  - [2, 0, 0, 0, 0, 1, 1, 0]
  - [0, 2, 0, 0, 0, 1, 0, 1]
indices:
  - [0, 1, 2]
`

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeMesh(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		mesh, err := asset.DecodeMesh([]byte(triangleMesh))
		require.NoError(t, err)

		assert.Equal(t, "BasicMesh", mesh.ShaderName)
		assert.Equal(t, []string{"tri.png"}, mesh.TexturePaths)
		assert.Equal(t, float32(50), mesh.SpecPower)
		assert.Len(t, mesh.Vertices, 3)
		assert.Equal(t, []uint16{0, 1, 2}, mesh.Indices)
		assert.Equal(t, 1, mesh.Triangles())
		assert.Equal(t, mgl32.Vec3{2, 0, 0}, mesh.Vertices[1].Position)
		assert.Equal(t, mgl32.Vec2{0, 1}, mesh.Vertices[2].UV)
		assert.InDelta(t, 2.0, mesh.Radius, 1e-6)
	})

	t.Run("short vertex row", func(t *testing.T) {
		_, err := asset.DecodeMesh([]byte("vertices:\n  - [0, 0, 0]\n"))
		require.Error(t, err)
		assert.True(t, eris.Is(err, asset.ErrInvalidMesh))
	})

	t.Run("index out of range", func(t *testing.T) {
		data := "vertices:\n  - [0, 0, 0, 0, 0, 1, 0, 0]\nindices:\n  - [0, 0, 3]\n"
		_, err := asset.DecodeMesh([]byte(data))
		assert.True(t, eris.Is(err, asset.ErrInvalidMesh))
	})

	t.Run("no vertices", func(t *testing.T) {
		_, err := asset.DecodeMesh([]byte("shader: x\n"))
		assert.True(t, eris.Is(err, asset.ErrInvalidMesh))
	})

	t.Run("default specular power", func(t *testing.T) {
		mesh, err := asset.DecodeMesh([]byte("vertices:\n  - [0, 0, 0, 0, 0, 1, 0, 0]\n"))
		require.NoError(t, err)
		assert.Equal(t, float32(100), mesh.SpecPower)
	})
}

func TestFileLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"meshes/tri.yaml": {Data: []byte(triangleMesh)},
		"tri.png":         {Data: encodePNG(t)},
		"broken.png":      {Data: []byte("not a png")},
	}
	loader := asset.NewFileLoader(fsys)

	mesh, err := loader.LoadMesh("meshes/tri.yaml")
	require.NoError(t, err)
	assert.Equal(t, "meshes/tri.yaml", mesh.Name)

	tex, err := loader.LoadTexture("tri.png")
	require.NoError(t, err)
	assert.Equal(t, 4, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, "tri.png", tex.Path)

	_, err = loader.LoadMesh("missing.yaml")
	assert.Error(t, err)

	_, err = loader.LoadTexture("broken.png")
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	mesh := asset.DefaultMesh()
	assert.Len(t, mesh.Vertices, 24)
	assert.Equal(t, 12, mesh.Triangles())
	assert.InDelta(t, 0.866, mesh.Radius, 1e-3)

	tex := asset.DefaultTexture()
	assert.Equal(t, 1, tex.Width)
	r, g, b, a := tex.Image.At(0, 0).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0xffff, 0xffff, 0xffff}, [4]uint32{r, g, b, a})

	assert.Nil(t, mesh.Texture(0))
}
