package behavior

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/input"
)

const (
	// CameraTurnSpeed is the A/D turn rate in rad/s.
	CameraTurnSpeed = 2 * math.Pi
	CameraMoveSpeed = 200
	cameraLookAhead = 100
)

// Camera publishes its actor's position and heading as the renderer's view.
// A and D turn it, W and S move it along its heading.
type Camera struct {
	renderer scene.Renderer
	move     *MoveComponent
}

// NewCamera creates a camera actor registered with r.
func NewCamera(r *scene.Registry) (*scene.Actor, *Camera) {
	c := &Camera{renderer: r.Renderer()}
	a := scene.NewActor(r, c)
	c.move = NewMoveComponent(a)
	return a, c
}

func (c *Camera) Move() *MoveComponent {
	return c.move
}

func (c *Camera) InputActor(a *scene.Actor, in input.State) {
	var turn, speed float32
	if in.Pressed(input.KeyA) {
		turn -= CameraTurnSpeed
	}
	if in.Pressed(input.KeyD) {
		turn += CameraTurnSpeed
	}
	if in.Pressed(input.KeyW) {
		speed += CameraMoveSpeed
	}
	if in.Pressed(input.KeyS) {
		speed -= CameraMoveSpeed
	}
	c.move.RotationSpeed = turn
	c.move.ForwardSpeed = speed
}

func (c *Camera) UpdateActor(a *scene.Actor, dt float64) {
	pos := a.Position()
	target := pos.Add(a.Forward().Mul(cameraLookAhead))
	c.renderer.SetViewMatrix(mgl32.LookAtV(pos, target, mgl32.Vec3{0, 0, 1}))
}
