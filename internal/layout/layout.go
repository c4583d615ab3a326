// Package layout builds actors from a YAML scene description.
package layout

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/behavior"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

var ErrInvalidLayout = eris.New("invalid layout")

type File struct {
	Camera *CameraSpec `yaml:"camera"`
	Actors []ActorSpec `yaml:"actors"`
}

type CameraSpec struct {
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"` // degrees about +Z
}

type ActorSpec struct {
	Name         string         `yaml:"name"`
	Position     [3]float32     `yaml:"position"`
	Scale        *float32       `yaml:"scale"`
	Rotations    []RotationSpec `yaml:"rotations"`
	Mesh         string         `yaml:"mesh"`
	TextureIndex int            `yaml:"texture_index"`
	Move         *MoveSpec      `yaml:"move"`
	Lifetime     float64        `yaml:"lifetime"`
	State        string         `yaml:"state"`
}

// RotationSpec is one axis-angle step. Steps apply in list order.
type RotationSpec struct {
	Axis    [3]float32 `yaml:"axis"`
	Degrees float32    `yaml:"degrees"`
}

type MoveSpec struct {
	RotationSpeed float32    `yaml:"rotation_speed"`
	ForwardSpeed  float32    `yaml:"forward_speed"`
	Mass          float32    `yaml:"mass"`
	Velocity      [3]float32 `yaml:"velocity"`
}

// Scene is the result of Load.
type Scene struct {
	Actors []*scene.Actor
	Named  map[string]*scene.Actor
	Camera *behavior.Camera
}

// Parse decodes and validates a layout without creating anything.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "parse layout")
	}

	for i, spec := range f.Actors {
		if spec.Scale != nil && *spec.Scale <= 0 {
			return nil, eris.Wrapf(ErrInvalidLayout, "actor %d: scale must be positive", i)
		}
		for j, rot := range spec.Rotations {
			if mgl32.Vec3(rot.Axis).Len() == 0 {
				return nil, eris.Wrapf(ErrInvalidLayout, "actor %d rotation %d: zero axis", i, j)
			}
		}
		if _, err := parseState(spec.State); err != nil {
			return nil, eris.Wrapf(err, "actor %d", i)
		}
	}
	return &f, nil
}

// Load parses data and creates its actors in r.
func Load(r *scene.Registry, data []byte) (*Scene, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	s := &Scene{Named: make(map[string]*scene.Actor)}
	if f.Camera != nil {
		a, cam := behavior.NewCamera(r)
		a.SetPosition(f.Camera.Position)
		a.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(f.Camera.Yaw), mgl32.Vec3{0, 0, 1}))
		s.Camera = cam
		s.Actors = append(s.Actors, a)
	}

	for _, spec := range f.Actors {
		a := build(r, spec)
		s.Actors = append(s.Actors, a)
		if spec.Name != "" {
			s.Named[spec.Name] = a
		}
	}
	return s, nil
}

func build(r *scene.Registry, spec ActorSpec) *scene.Actor {
	a := scene.NewActor(r, nil)
	a.SetPosition(spec.Position)
	if spec.Scale != nil {
		a.SetScale(*spec.Scale)
	}
	a.SetRotation(Rotation(spec.Rotations))

	if spec.Mesh != "" {
		mc := behavior.NewMeshComponent(a, r.Renderer())
		mc.SetMesh(r.Renderer().Mesh(spec.Mesh))
		mc.SetTextureIndex(spec.TextureIndex)
	}

	if spec.Move != nil {
		m := behavior.NewMoveComponent(a)
		m.RotationSpeed = spec.Move.RotationSpeed
		m.ForwardSpeed = spec.Move.ForwardSpeed
		if spec.Move.Mass > 0 {
			m.SetMass(spec.Move.Mass)
		}
		m.SetVelocity(spec.Move.Velocity)
	}

	if spec.Lifetime > 0 {
		behavior.NewLifetimeComponent(a, spec.Lifetime)
	}

	state, _ := parseState(spec.State)
	a.SetState(state)
	return a
}

// Rotation composes the steps so that the first step is applied first.
func Rotation(steps []RotationSpec) mgl32.Quat {
	q := mgl32.QuatIdent()
	for _, step := range steps {
		axis := mgl32.Vec3(step.Axis).Normalize()
		q = mgl32.QuatRotate(mgl32.DegToRad(step.Degrees), axis).Mul(q)
	}
	return q.Normalize()
}

func parseState(s string) (scene.State, error) {
	switch s {
	case "", "active":
		return scene.StateActive, nil
	case "paused":
		return scene.StatePaused, nil
	default:
		return 0, eris.Wrapf(ErrInvalidLayout, "unknown state %q", s)
	}
}
