package engine

import "fmt"

// State is the lifecycle position of an Engine.
type State int32

const (
	// Unloaded is the state of a new Engine.
	Unloaded State = iota
	// Loading is held while a catalog is read and validated.
	Loading
	// Ready means a validated catalog is serving lookups.
	Ready
	// Failed means the first load failed. Load may be called again.
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}
