package behavior

import "github.com/plus3/actorstage/scene"

// LifetimeComponent marks its owner Dead once Limit seconds of update time
// have passed.
type LifetimeComponent struct {
	scene.ComponentBase
	Limit   float64
	elapsed float64
}

func NewLifetimeComponent(owner *scene.Actor, limit float64) *LifetimeComponent {
	l := &LifetimeComponent{
		ComponentBase: scene.NewComponentBase(owner, 0),
		Limit:         limit,
	}
	owner.AddComponent(l)
	return l
}

func (l *LifetimeComponent) Update(dt float64) {
	l.elapsed += dt
	if l.elapsed >= l.Limit {
		if a := l.Owner(); a != nil {
			a.SetState(scene.StateDead)
		}
	}
}

func (l *LifetimeComponent) Remaining() float64 {
	return max(l.Limit-l.elapsed, 0)
}
