package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/actorstage/scene"
)

// ActorInspectorComponent shows and edits the actor selected in a browser:
// its state, local transform and the exported fields of its components.
type ActorInspectorComponent struct {
	scene.ComponentBase
	browser *ActorBrowserComponent
}

func NewActorInspectorComponent(owner *scene.Actor, browser *ActorBrowserComponent) *ActorInspectorComponent {
	ci := &ActorInspectorComponent{
		ComponentBase: scene.NewComponentBase(owner, PanelOrder),
		browser:       browser,
	}
	owner.AddComponent(ci)
	return ci
}

func (ci *ActorInspectorComponent) Update(float64) {
	owner := ci.Owner()
	if owner == nil || owner.Registry() == nil {
		return
	}

	if !imgui.BeginV("Actor Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	id := ci.browser.Selected()
	if id == 0 {
		imgui.Text("No actor selected")
		imgui.End()
		return
	}

	a, err := owner.Registry().Actor(id)
	if err != nil {
		imgui.Text(fmt.Sprintf("Actor %d not found", id))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Actor ID: %d", a.Id()))
	imgui.Text(fmt.Sprintf("State: %s", a.State()))
	if a.State() == scene.StateActive {
		if imgui.Button("Pause") {
			a.SetState(scene.StatePaused)
		}
	} else if imgui.Button("Resume") {
		a.SetState(scene.StateActive)
	}
	imgui.SameLine()
	if imgui.Button("Kill") {
		a.SetState(scene.StateDead)
	}
	imgui.Separator()

	pos := a.Position()
	x, y, z := pos.X(), pos.Y(), pos.Z()
	changed := inputFloat("X", &x)
	changed = inputFloat("Y", &y) || changed
	changed = inputFloat("Z", &z) || changed
	if changed {
		a.SetPosition(mgl32.Vec3{x, y, z})
	}

	scale := a.Scale()
	if inputFloat("Scale", &scale) && scale > 0 {
		a.SetScale(scale)
	}
	fwd := a.Forward()
	imgui.Text(fmt.Sprintf("Forward: %.2f, %.2f, %.2f", fwd.X(), fwd.Y(), fwd.Z()))
	imgui.Separator()

	for i, c := range a.Components() {
		compType := reflect.TypeOf(c)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}
		label := fmt.Sprintf("%s (order %d)##%d", compType.Name(), c.UpdateOrder(), i)
		if imgui.TreeNodeStr(label) {
			renderComponent(c)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func inputFloat(name string, v *float32) bool {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
	return imgui.InputFloat(fmt.Sprintf("##%s", name), v)
}

func renderComponent(c scene.Component) {
	val := reflect.ValueOf(c)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", c))
		return
	}

	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Name, fieldVal)
	}
}

// renderField edits fieldVal in place when it is settable.
func renderField(name string, val reflect.Value) {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		if inputFloat(name, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
