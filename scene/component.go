package scene

import (
	"weak"

	"github.com/plus3/actorstage/scene/input"
)

// Component is a behavior unit bound to exactly one Actor. Components run in
// ascending UpdateOrder; the order must not change after the component is
// added to its owner.
//
// A component opts into per-frame work by implementing any subset of
// Updater, InputHandler, TransformObserver, Drawable and Destroyer.
type Component interface {
	UpdateOrder() int
	Owner() *Actor
}

// Updater advances component state by dt seconds.
type Updater interface {
	Update(dt float64)
}

// InputHandler reacts to the frame's input snapshot. It must not register or
// unregister actors.
type InputHandler interface {
	HandleInput(in input.State)
}

// TransformObserver is notified after its owner's world transform changes.
type TransformObserver interface {
	OnWorldTransformChanged()
}

// Drawable components are drawn by the Renderer during the output phase.
type Drawable interface {
	Component
	Draw(ctx RenderContext)
}

// Destroyer is called once when the component is destroyed, after it has been
// removed from its owner.
type Destroyer interface {
	OnDestroy()
}

// ComponentBase implements Component and is meant to be embedded.
type ComponentBase struct {
	owner       weak.Pointer[Actor]
	updateOrder int
}

func NewComponentBase(owner *Actor, updateOrder int) ComponentBase {
	return ComponentBase{
		owner:       weak.Make(owner),
		updateOrder: updateOrder,
	}
}

func (c *ComponentBase) UpdateOrder() int {
	return c.updateOrder
}

// Owner returns the owning actor, or nil once the actor has been collected.
func (c *ComponentBase) Owner() *Actor {
	return c.owner.Value()
}

// ActorBehavior customizes an actor type. Both hooks run after the actor's
// components.
type ActorBehavior interface {
	UpdateActor(a *Actor, dt float64)
	InputActor(a *Actor, in input.State)
}

// BaseBehavior is an ActorBehavior that does nothing.
type BaseBehavior struct{}

func (BaseBehavior) UpdateActor(*Actor, float64) {}
func (BaseBehavior) InputActor(*Actor, input.State) {}
