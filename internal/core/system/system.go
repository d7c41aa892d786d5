package system

import (
	"strconv"
	"time"
)

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain last tick's events
	PhasePreUpdate               // 1: prepare per-tick state
	PhaseUpdate                  // 2: simulation logic
	PhasePostUpdate              // 3: regen, derived state
	PhaseCleanup                 // 4: flush entity set deltas
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "Input"
	case PhasePreUpdate:
		return "PreUpdate"
	case PhaseUpdate:
		return "Update"
	case PhasePostUpdate:
		return "PostUpdate"
	case PhaseCleanup:
		return "Cleanup"
	default:
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Subsystem is the contract for update routines driven uniformly by a Runner.
//
// Cleanup runs after every subsystem's Update in the same tick and must not
// depend on the state of other subsystems. Destroy tears the subsystem down.
type Subsystem interface {
	Phase() Phase
	Update(dt time.Duration)
	Cleanup()
	Destroy()
}

// Base gives a subsystem no-op Cleanup and Destroy methods.
type Base struct{}

func (Base) Cleanup() {}
func (Base) Destroy() {}
