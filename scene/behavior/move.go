// Package behavior provides reusable components and actor types.
package behavior

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene"
)

const MoveOrder = 10

// MoveComponent turns its owner about +Z at RotationSpeed and moves it with
// velocity-Verlet integration of the forces added since the previous update.
// ForwardSpeed additionally carries the owner along its forward axis.
type MoveComponent struct {
	scene.ComponentBase

	RotationSpeed float32 // rad/s
	ForwardSpeed  float32

	mass     float32
	forces   mgl32.Vec3
	velocity mgl32.Vec3
}

func NewMoveComponent(owner *scene.Actor) *MoveComponent {
	return NewMoveComponentOrder(owner, MoveOrder)
}

func NewMoveComponentOrder(owner *scene.Actor, order int) *MoveComponent {
	m := &MoveComponent{
		ComponentBase: scene.NewComponentBase(owner, order),
		mass:          1,
	}
	owner.AddComponent(m)
	return m
}

func (m *MoveComponent) Update(dt float64) {
	a := m.Owner()
	if a == nil {
		return
	}
	step := float32(dt)

	if !nearZero(m.RotationSpeed) {
		inc := mgl32.QuatRotate(m.RotationSpeed*step, mgl32.Vec3{0, 0, 1})
		a.SetRotation(inc.Mul(a.Rotation()).Normalize())
	}

	accel := m.forces.Mul(1 / m.mass)
	m.forces = mgl32.Vec3{}
	old := m.velocity
	m.velocity = m.velocity.Add(accel.Mul(step))
	delta := old.Add(m.velocity).Mul(0.5 * step)

	if !nearZero(m.ForwardSpeed) {
		delta = delta.Add(a.Forward().Mul(m.ForwardSpeed * step))
	}
	if delta != (mgl32.Vec3{}) {
		a.SetPosition(a.Position().Add(delta))
	}
}

// AddForce accumulates a force for the next update only.
func (m *MoveComponent) AddForce(f mgl32.Vec3) {
	m.forces = m.forces.Add(f)
}

func (m *MoveComponent) Velocity() mgl32.Vec3 {
	return m.velocity
}

func (m *MoveComponent) SetVelocity(v mgl32.Vec3) {
	m.velocity = v
}

func (m *MoveComponent) Mass() float32 {
	return m.mass
}

// SetMass ignores non-positive masses.
func (m *MoveComponent) SetMass(mass float32) {
	if mass > 0 {
		m.mass = mass
	}
}

func nearZero(v float32) bool {
	return mgl32.Abs(v) <= 0.001
}
