package scene_test

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene"
	"github.com/plus3/actorstage/scene/asset"
	"github.com/plus3/actorstage/scene/input"
)

type recordingRenderer struct {
	drawables []scene.Drawable
	frames    [][]scene.ActorId
	view      mgl32.Mat4
	initErr   error
	shutdown  int
}

func (r *recordingRenderer) Initialize() error {
	return r.initErr
}

func (r *recordingRenderer) Texture(string) *asset.Texture {
	return asset.DefaultTexture()
}

func (r *recordingRenderer) Mesh(string) *asset.Mesh {
	return asset.DefaultMesh()
}

func (r *recordingRenderer) AddDrawable(d scene.Drawable) {
	r.drawables = append(r.drawables, d)
}

func (r *recordingRenderer) RemoveDrawable(d scene.Drawable) {
	for i, existing := range r.drawables {
		if existing == d {
			r.drawables = append(r.drawables[:i], r.drawables[i+1:]...)
			return
		}
	}
}

func (r *recordingRenderer) SetViewMatrix(view mgl32.Mat4) {
	r.view = view
}

func (r *recordingRenderer) Draw(actors []*scene.Actor) {
	ids := make([]scene.ActorId, len(actors))
	for i, a := range actors {
		ids[i] = a.Id()
	}
	r.frames = append(r.frames, ids)
}

func (r *recordingRenderer) Shutdown() {
	r.shutdown++
}

// probe records every call it receives into a shared log.
type probe struct {
	scene.ComponentBase
	name      string
	log       *[]string
	dts       []float64
	notified  int
	destroyed int
	onUpdate  func()
}

func newProbe(owner *scene.Actor, name string, order int, log *[]string) *probe {
	p := &probe{
		ComponentBase: scene.NewComponentBase(owner, order),
		name:          name,
		log:           log,
	}
	owner.AddComponent(p)
	return p
}

func (p *probe) Update(dt float64) {
	p.dts = append(p.dts, dt)
	if p.log != nil {
		*p.log = append(*p.log, "update:"+p.name)
	}
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

func (p *probe) HandleInput(in input.State) {
	if p.log != nil && in.Pressed(input.KeySpace) {
		*p.log = append(*p.log, "input:"+p.name)
	}
}

func (p *probe) OnWorldTransformChanged() {
	p.notified++
	if p.log != nil {
		*p.log = append(*p.log, "transform:"+p.name)
	}
}

func (p *probe) OnDestroy() {
	p.destroyed++
}

// hookBehavior runs arbitrary functions from the actor hooks.
type hookBehavior struct {
	update func(a *scene.Actor, dt float64)
	input  func(a *scene.Actor, in input.State)
}

func (b *hookBehavior) UpdateActor(a *scene.Actor, dt float64) {
	if b.update != nil {
		b.update(a, dt)
	}
}

func (b *hookBehavior) InputActor(a *scene.Actor, in input.State) {
	if b.input != nil {
		b.input(a, in)
	}
}

func newTestRegistry(opts ...scene.Option) (*scene.Registry, *recordingRenderer, *input.Static) {
	renderer := &recordingRenderer{}
	source := &input.Static{}
	return scene.NewRegistry(renderer, source, opts...), renderer, source
}
