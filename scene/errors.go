package scene

import "github.com/rotisserie/eris"

var (
	ErrComponentNotFound = eris.New("component not found")
	ErrActorNotFound     = eris.New("actor not found")
	ErrNoRenderer        = eris.New("registry has no renderer")
	ErrNoInput           = eris.New("registry has no input source")
)
