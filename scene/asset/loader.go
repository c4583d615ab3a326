package asset

import (
	"bytes"
	"image"
	_ "image/png"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

var ErrInvalidMesh = eris.New("invalid mesh descriptor")

// meshFile is the YAML mesh descriptor. Each vertex row is
// [x, y, z, nx, ny, nz, u, v].
type meshFile struct {
	Shader        string      `yaml:"shader"`
	Textures      []string    `yaml:"textures"`
	SpecularPower float32     `yaml:"specular_power"`
	Vertices      [][]float32 `yaml:"vertices"`
	Indices       [][3]uint16 `yaml:"indices"`
}

// FileLoader reads mesh descriptors and PNG textures from a file system.
type FileLoader struct {
	fsys fs.FS
}

func NewFileLoader(fsys fs.FS) *FileLoader {
	return &FileLoader{fsys: fsys}
}

func (l *FileLoader) LoadMesh(path string) (*Mesh, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, eris.Wrapf(err, "read mesh %s", path)
	}
	mesh, err := DecodeMesh(data)
	if err != nil {
		return nil, eris.Wrapf(err, "decode mesh %s", path)
	}
	mesh.Name = path
	return mesh, nil
}

func (l *FileLoader) LoadTexture(path string) (*Texture, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, eris.Wrapf(err, "read texture %s", path)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrapf(err, "decode texture %s", path)
	}
	return newTexture(path, img), nil
}

// DecodeMesh parses a YAML mesh descriptor.
func DecodeMesh(data []byte) (*Mesh, error) {
	var file meshFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "parse yaml")
	}
	if len(file.Vertices) == 0 {
		return nil, eris.Wrap(ErrInvalidMesh, "no vertices")
	}

	mesh := &Mesh{
		Vertices:     make([]Vertex, 0, len(file.Vertices)),
		Indices:      make([]uint16, 0, len(file.Indices)*3),
		TexturePaths: file.Textures,
		ShaderName:   file.Shader,
		SpecPower:    file.SpecularPower,
	}
	if mesh.SpecPower == 0 {
		mesh.SpecPower = 100
	}

	for i, row := range file.Vertices {
		if len(row) != 8 {
			return nil, eris.Wrapf(ErrInvalidMesh, "vertex %d has %d values, want 8", i, len(row))
		}
		mesh.Vertices = append(mesh.Vertices, Vertex{
			Position: mgl32.Vec3{row[0], row[1], row[2]},
			Normal:   mgl32.Vec3{row[3], row[4], row[5]},
			UV:       mgl32.Vec2{row[6], row[7]},
		})
	}

	for i, tri := range file.Indices {
		for _, idx := range tri {
			if int(idx) >= len(mesh.Vertices) {
				return nil, eris.Wrapf(ErrInvalidMesh, "triangle %d references vertex %d", i, idx)
			}
		}
		mesh.Indices = append(mesh.Indices, tri[0], tri[1], tri[2])
	}

	mesh.Radius = boundingRadius(mesh.Vertices)
	return mesh, nil
}
