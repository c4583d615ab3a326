// Package ebiteninput adapts Ebiten's keyboard and window state to input.Source.
package ebiteninput

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/actorstage/scene/input"
)

var keyTable = map[ebiten.Key]input.Key{
	ebiten.KeyA:            input.KeyA,
	ebiten.KeyB:            input.KeyB,
	ebiten.KeyC:            input.KeyC,
	ebiten.KeyD:            input.KeyD,
	ebiten.KeyE:            input.KeyE,
	ebiten.KeyF:            input.KeyF,
	ebiten.KeyG:            input.KeyG,
	ebiten.KeyH:            input.KeyH,
	ebiten.KeyI:            input.KeyI,
	ebiten.KeyJ:            input.KeyJ,
	ebiten.KeyK:            input.KeyK,
	ebiten.KeyL:            input.KeyL,
	ebiten.KeyM:            input.KeyM,
	ebiten.KeyN:            input.KeyN,
	ebiten.KeyO:            input.KeyO,
	ebiten.KeyP:            input.KeyP,
	ebiten.KeyQ:            input.KeyQ,
	ebiten.KeyR:            input.KeyR,
	ebiten.KeyS:            input.KeyS,
	ebiten.KeyT:            input.KeyT,
	ebiten.KeyU:            input.KeyU,
	ebiten.KeyV:            input.KeyV,
	ebiten.KeyW:            input.KeyW,
	ebiten.KeyX:            input.KeyX,
	ebiten.KeyY:            input.KeyY,
	ebiten.KeyZ:            input.KeyZ,
	ebiten.KeyArrowUp:      input.KeyUp,
	ebiten.KeyArrowDown:    input.KeyDown,
	ebiten.KeyArrowLeft:    input.KeyLeft,
	ebiten.KeyArrowRight:   input.KeyRight,
	ebiten.KeySpace:        input.KeySpace,
	ebiten.KeyEnter:        input.KeyEnter,
	ebiten.KeyEscape:       input.KeyEscape,
	ebiten.KeyTab:          input.KeyTab,
	ebiten.KeyShiftLeft:    input.KeyShift,
	ebiten.KeyShiftRight:   input.KeyShift,
	ebiten.KeyControlLeft:  input.KeyControl,
	ebiten.KeyControlRight: input.KeyControl,
}

// Translate maps an Ebiten key to its logical key, or input.KeyUnknown.
func Translate(k ebiten.Key) input.Key {
	if key, ok := keyTable[k]; ok {
		return key
	}
	return input.KeyUnknown
}

// Source reads the keyboard once per frame. Closing the window or pressing
// Escape requests termination; the window closing handler must be enabled
// with ebiten.SetWindowClosingHandled for the former to be observed.
type Source struct {
	pressed []ebiten.Key
	keys    []input.Key
}

func NewSource() *Source {
	return &Source{}
}

func (s *Source) Poll() bool {
	return ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape)
}

func (s *Source) Snapshot() input.State {
	s.pressed = inpututil.AppendPressedKeys(s.pressed[:0])
	s.keys = s.keys[:0]
	for _, k := range s.pressed {
		if key := Translate(k); key != input.KeyUnknown {
			s.keys = append(s.keys, key)
		}
	}
	return input.NewSnapshot(s.keys...)
}
