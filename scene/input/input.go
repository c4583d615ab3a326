// Package input defines the per-frame input snapshot consumed by actors and
// components, and the Source collaborator that produces it.
package input

import "slices"

// Key is a logical key. Backends translate their native key codes into Keys.
type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyShift
	KeyControl
)

var keyNames = [...]string{
	KeyUnknown: "Unknown",
	KeyA:       "A",
	KeyB:       "B",
	KeyC:       "C",
	KeyD:       "D",
	KeyE:       "E",
	KeyF:       "F",
	KeyG:       "G",
	KeyH:       "H",
	KeyI:       "I",
	KeyJ:       "J",
	KeyK:       "K",
	KeyL:       "L",
	KeyM:       "M",
	KeyN:       "N",
	KeyO:       "O",
	KeyP:       "P",
	KeyQ:       "Q",
	KeyR:       "R",
	KeyS:       "S",
	KeyT:       "T",
	KeyU:       "U",
	KeyV:       "V",
	KeyW:       "W",
	KeyX:       "X",
	KeyY:       "Y",
	KeyZ:       "Z",
	KeyUp:      "Up",
	KeyDown:    "Down",
	KeyLeft:    "Left",
	KeyRight:   "Right",
	KeySpace:   "Space",
	KeyEnter:   "Enter",
	KeyEscape:  "Escape",
	KeyTab:     "Tab",
	KeyShift:   "Shift",
	KeyControl: "Control",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "Unknown"
	}
	return keyNames[k]
}

// State is a read-only view of the input for one frame.
type State interface {
	Pressed(k Key) bool
}

// Snapshot is an immutable State holding the set of keys held down when it
// was taken.
type Snapshot struct {
	keys []Key
}

// NewSnapshot copies keys into a new Snapshot.
func NewSnapshot(keys ...Key) Snapshot {
	cp := slices.Clone(keys)
	slices.Sort(cp)
	return Snapshot{keys: slices.Compact(cp)}
}

func (s Snapshot) Pressed(k Key) bool {
	_, found := slices.BinarySearch(s.keys, k)
	return found
}

// Keys returns a copy of the pressed keys in ascending order.
func (s Snapshot) Keys() []Key {
	return slices.Clone(s.keys)
}

// Source produces input for the frame loop. Poll is called once per frame
// before Snapshot and reports whether termination was requested.
type Source interface {
	Poll() bool
	Snapshot() State
}

// Static is a Source with fixed contents, used for headless runs.
type Static struct {
	Keys []Key
	Quit bool
}

func (s *Static) Poll() bool {
	return s.Quit
}

func (s *Static) Snapshot() State {
	return NewSnapshot(s.Keys...)
}
