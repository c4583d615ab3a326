package scene

import (
	"slices"
	"weak"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene/input"
	"github.com/rotisserie/eris"
)

// State controls whether an actor takes part in the frame.
type State uint8

const (
	StateActive State = iota + 1
	StatePaused
	StateDead
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "Active"
	case StatePaused:
		return "Paused"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// ActorId identifies an actor within its registry. Zero is never issued.
type ActorId uint64

// ForwardAxis is the canonical forward axis in object space.
var ForwardAxis = mgl32.Vec3{1, 0, 0}

// Actor is a scene entity: a local transform, a lazily computed world
// transform and an ordered list of components.
type Actor struct {
	id       ActorId
	registry weak.Pointer[Registry]
	behavior ActorBehavior
	state    State
	deleted  bool

	position mgl32.Vec3
	scale    float32
	rotation mgl32.Quat

	worldTransform mgl32.Mat4
	transformDirty bool

	// never modified in place, so a range over it survives additions and
	// removals made by the components being visited
	components []Component
}

// NewActor creates an Active actor at the origin and registers it with r.
// A nil behavior means the actor has no type-specific hooks.
func NewActor(r *Registry, behavior ActorBehavior) *Actor {
	if behavior == nil {
		behavior = BaseBehavior{}
	}

	a := &Actor{
		id:             r.nextId(),
		registry:       weak.Make(r),
		behavior:       behavior,
		state:          StateActive,
		scale:          1,
		rotation:       mgl32.QuatIdent(),
		worldTransform: mgl32.Ident4(),
		transformDirty: true,
	}
	r.RegisterActor(a)
	return a
}

func (a *Actor) Id() ActorId {
	return a.id
}

// Registry returns the registry the actor was created with, or nil if it no
// longer exists.
func (a *Actor) Registry() *Registry {
	return a.registry.Value()
}

func (a *Actor) Behavior() ActorBehavior {
	return a.behavior
}

func (a *Actor) State() State {
	return a.state
}

func (a *Actor) SetState(s State) {
	a.state = s
}

func (a *Actor) Position() mgl32.Vec3 {
	return a.position
}

func (a *Actor) SetPosition(p mgl32.Vec3) {
	a.position = p
	a.transformDirty = true
}

func (a *Actor) Scale() float32 {
	return a.scale
}

func (a *Actor) SetScale(s float32) {
	a.scale = s
	a.transformDirty = true
}

func (a *Actor) Rotation() mgl32.Quat {
	return a.rotation
}

func (a *Actor) SetRotation(q mgl32.Quat) {
	a.rotation = q
	a.transformDirty = true
}

// WorldTransform returns the cached world transform. It is only current when
// TransformDirty reports false.
func (a *Actor) WorldTransform() mgl32.Mat4 {
	return a.worldTransform
}

func (a *Actor) TransformDirty() bool {
	return a.transformDirty
}

// Forward returns the canonical forward axis rotated by the actor's rotation.
func (a *Actor) Forward() mgl32.Vec3 {
	return a.rotation.Rotate(ForwardAxis)
}

// ComputeWorldTransform rebuilds the world transform if the local transform
// changed since the last call, then notifies every TransformObserver in
// component order. The result scales in object space, then rotates, then
// translates.
func (a *Actor) ComputeWorldTransform() {
	if !a.transformDirty {
		return
	}
	// cleared first so observers that call back in see a clean actor
	a.transformDirty = false

	s := a.scale
	a.worldTransform = mgl32.Translate3D(a.position.X(), a.position.Y(), a.position.Z()).
		Mul4(a.rotation.Mat4()).
		Mul4(mgl32.Scale3D(s, s, s))

	for _, c := range a.components {
		if o, ok := c.(TransformObserver); ok {
			o.OnWorldTransformChanged()
		}
	}
}

// Components returns a copy of the components in update order.
func (a *Actor) Components() []Component {
	return slices.Clone(a.components)
}

// AddComponent inserts c before the first component with a strictly greater
// update order.
func (a *Actor) AddComponent(c Component) {
	order := c.UpdateOrder()
	i := slices.IndexFunc(a.components, func(existing Component) bool {
		return existing.UpdateOrder() > order
	})
	if i < 0 {
		i = len(a.components)
	}

	next := make([]Component, 0, len(a.components)+1)
	next = append(next, a.components[:i]...)
	next = append(next, c)
	next = append(next, a.components[i:]...)
	a.components = next
}

// RemoveComponent removes c by identity.
func (a *Actor) RemoveComponent(c Component) error {
	i := slices.Index(a.components, c)
	if i < 0 {
		return eris.Wrapf(ErrComponentNotFound, "actor %d", a.id)
	}
	a.components = append(a.components[:i:i], a.components[i+1:]...)
	return nil
}

// DestroyComponent removes c and runs its OnDestroy hook.
func (a *Actor) DestroyComponent(c Component) error {
	if err := a.RemoveComponent(c); err != nil {
		return err
	}
	if d, ok := c.(Destroyer); ok {
		d.OnDestroy()
	}
	return nil
}

// Update runs one frame for an Active actor: components first, then the
// behavior hook. The world transform is recomputed before and after so that
// it reflects any change the hook made.
func (a *Actor) Update(dt float64) {
	if a.state != StateActive {
		return
	}

	a.ComputeWorldTransform()
	for _, c := range a.components {
		if u, ok := c.(Updater); ok {
			u.Update(dt)
		}
	}
	a.behavior.UpdateActor(a, dt)
	a.ComputeWorldTransform()
}

// Input dispatches the frame's input to an Active actor's components, then to
// its behavior.
func (a *Actor) Input(in input.State) {
	if a.state != StateActive {
		return
	}

	for _, c := range a.components {
		if h, ok := c.(InputHandler); ok {
			h.HandleInput(in)
		}
	}
	a.behavior.InputActor(a, in)
}

// Delete unregisters the actor and destroys its components. Called while the
// registry is updating, it marks the actor Dead instead and the registry
// deletes it once the update pass is over.
func (a *Actor) Delete() {
	if a.deleted {
		return
	}

	r := a.Registry()
	if r != nil && r.updating && r.isActive(a) {
		a.state = StateDead
		return
	}

	a.deleted = true
	a.state = StateDead
	if r != nil {
		r.UnregisterActor(a)
	}

	for _, c := range slices.Clone(a.components) {
		// components may already have been removed by an earlier OnDestroy
		_ = a.DestroyComponent(c)
	}
}

// Deleted reports whether Delete has completed for this actor.
func (a *Actor) Deleted() bool {
	return a.deleted
}
