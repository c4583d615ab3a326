package scene

import (
	"context"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/actorstage/scene/input"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Registry owns the live actors and drives the frame: input, then update,
// then output. It is not safe for concurrent use; every method must be called
// from the goroutine running the frame loop.
type Registry struct {
	renderer Renderer
	input    input.Source
	clock    Clock
	log      *zap.Logger

	// active is replaced rather than modified in place while a phase is
	// iterating it
	active  []*Actor
	pending []*Actor
	arena   *intmap.Map[ActorId, *Actor]
	lastId  ActorId

	updating  bool
	iterating bool
	running   bool

	maxDelta   time.Duration
	frameDelay time.Duration
	lastTick   time.Time

	stats frameStatsInternal
}

// NewRegistry creates a registry drawing through renderer and reading input
// from source.
func NewRegistry(renderer Renderer, source input.Source, opts ...Option) *Registry {
	r := &Registry{
		renderer:   renderer,
		input:      source,
		clock:      SystemClock{},
		log:        zap.NewNop(),
		active:     make([]*Actor, 0, 64),
		arena:      intmap.New[ActorId, *Actor](64),
		maxDelta:   DefaultMaxDeltaTime,
		frameDelay: DefaultFrameDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize prepares the registry for its first frame. An error means no
// frame may be run.
func (r *Registry) Initialize() error {
	if r.renderer == nil {
		return ErrNoRenderer
	}
	if r.input == nil {
		return ErrNoInput
	}
	if init, ok := r.renderer.(Initializer); ok {
		if err := init.Initialize(); err != nil {
			return eris.Wrap(err, "initialize renderer")
		}
	}

	r.lastTick = r.clock.Now()
	r.running = true
	r.log.Info("registry initialized",
		zap.Duration("max_delta", r.maxDelta),
		zap.Duration("frame_delay", r.frameDelay))
	return nil
}

func (r *Registry) nextId() ActorId {
	r.lastId++
	return r.lastId
}

// RegisterActor adds a to the active actors, or to the pending actors while
// an update pass is running.
func (r *Registry) RegisterActor(a *Actor) {
	r.arena.Put(a.id, a)
	if r.updating {
		r.pending = append(r.pending, a)
		return
	}
	r.active = append(r.active, a)
}

// UnregisterActor removes a from whichever of the pending or active actors
// holds it. Unregistering an unknown actor does nothing.
func (r *Registry) UnregisterActor(a *Actor) {
	if i := slices.Index(r.pending, a); i >= 0 {
		r.pending = slices.Delete(r.pending, i, i+1)
		r.arena.Del(a.id)
		return
	}

	i := slices.Index(r.active, a)
	if i < 0 {
		return
	}
	if r.iterating {
		r.active = append(r.active[:i:i], r.active[i+1:]...)
	} else {
		r.active = slices.Delete(r.active, i, i+1)
	}
	r.arena.Del(a.id)
}

func (r *Registry) isActive(a *Actor) bool {
	return slices.Contains(r.active, a)
}

// Actor looks up a registered actor by id.
func (r *Registry) Actor(id ActorId) (*Actor, error) {
	a, ok := r.arena.Get(id)
	if !ok {
		return nil, eris.Wrapf(ErrActorNotFound, "actor %d", id)
	}
	return a, nil
}

// DeleteActor deletes the registered actor with the given id.
func (r *Registry) DeleteActor(id ActorId) error {
	a, err := r.Actor(id)
	if err != nil {
		return err
	}
	a.Delete()
	return nil
}

// Actors returns a copy of the active actors in registration order.
func (r *Registry) Actors() []*Actor {
	return slices.Clone(r.active)
}

// Pending returns a copy of the actors waiting to join the active set.
func (r *Registry) Pending() []*Actor {
	return slices.Clone(r.pending)
}

func (r *Registry) Renderer() Renderer {
	return r.renderer
}

func (r *Registry) Logger() *zap.Logger {
	return r.log
}

func (r *Registry) Running() bool {
	return r.running
}

// Stop makes Run return after the current frame.
func (r *Registry) Stop() {
	r.running = false
}

// ProcessInput polls for termination and hands the input snapshot to every
// Active actor.
func (r *Registry) ProcessInput() {
	start := time.Now()
	defer func() { r.stats.phases[phaseInput].record(time.Since(start)) }()

	if r.input.Poll() {
		r.log.Info("termination requested")
		r.running = false
	}
	state := r.input.Snapshot()

	r.iterating = true
	for _, a := range r.active {
		if a.state != StateActive {
			continue
		}
		r.guard(phaseInput, a, func() { a.Input(state) })
	}
	r.iterating = false
}

// ProcessUpdate advances every Active actor by the elapsed time since the
// previous update, clamped to the maximum delta. Actors registered during the
// pass join the active set afterwards, and actors left Dead are deleted.
func (r *Registry) ProcessUpdate() {
	start := time.Now()
	defer func() { r.stats.phases[phaseUpdate].record(time.Since(start)) }()

	dt := r.tick()

	r.updating = true
	r.iterating = true
	for _, a := range r.active {
		if a.state != StateActive {
			continue
		}
		r.guard(phaseUpdate, a, func() { a.Update(dt) })
	}
	r.iterating = false
	r.updating = false

	r.mergePending()
	r.sweepDead()
	r.stats.frames++
}

func (r *Registry) tick() float64 {
	now := r.clock.Now()
	elapsed := now.Sub(r.lastTick)
	r.lastTick = now

	if elapsed > r.maxDelta {
		elapsed = r.maxDelta
		r.stats.clamped++
	}
	elapsed = max(elapsed, 0)

	dt := elapsed.Seconds()
	r.stats.lastDelta = dt
	return dt
}

func (r *Registry) mergePending() {
	if len(r.pending) == 0 {
		return
	}

	merged := len(r.pending)
	for _, a := range r.pending {
		a.ComputeWorldTransform()
	}
	r.active = append(r.active, r.pending...)
	clear(r.pending)
	r.pending = r.pending[:0]

	r.stats.merged += int64(merged)
	r.log.Debug("merged pending actors", zap.Int("count", merged))
}

func (r *Registry) sweepDead() {
	var dead []*Actor
	for _, a := range r.active {
		if a.state == StateDead {
			dead = append(dead, a)
		}
	}
	if len(dead) == 0 {
		return
	}

	for _, a := range dead {
		a.Delete()
	}

	r.stats.swept += int64(len(dead))
	r.log.Debug("swept dead actors", zap.Int("count", len(dead)))
}

// ProcessOutput hands the active actors to the renderer.
func (r *Registry) ProcessOutput() {
	start := time.Now()
	r.renderer.Draw(r.active)
	r.stats.phases[phaseOutput].record(time.Since(start))
}

// RunFrame runs the input, update and output phases once.
func (r *Registry) RunFrame() {
	r.ProcessInput()
	r.ProcessUpdate()
	r.ProcessOutput()
}

// Run executes frames at the configured frame delay until the registry stops
// or the context is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.frameDelay)
	defer ticker.Stop()

	for r.running {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RunFrame()
		}
	}
}

// Shutdown deletes every actor, newest first, and releases the renderer.
func (r *Registry) Shutdown() {
	r.running = false

	actors := append(slices.Clone(r.active), r.pending...)
	for _, a := range slices.Backward(actors) {
		a.Delete()
	}

	if r.renderer != nil {
		r.renderer.Shutdown()
	}
	r.log.Info("registry shut down", zap.Int64("frames", r.stats.frames))
}

// guard runs fn for a, recovering and logging any panic it raises.
func (r *Registry) guard(phase int, a *Actor, fn func()) {
	defer func() {
		if v := recover(); v != nil {
			r.stats.failures++
			r.log.Warn("actor failed",
				zap.String("phase", phaseNames[phase]),
				zap.Uint64("actor", uint64(a.id)),
				zap.Any("panic", v))
		}
	}()
	fn()
}
