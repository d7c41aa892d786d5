package system

import (
	"sort"
	"time"
)

// Runner executes subsystems in phase order each tick.
type Runner struct {
	systems  []Subsystem
	sorted   bool
	shutdown bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]Subsystem, 0, 16),
	}
}

// Register appends s. Within a phase, subsystems keep registration order.
func (r *Runner) Register(s Subsystem) {
	if s == nil {
		return
	}
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every Update in phase order, then every Cleanup in the same order.
func (r *Runner) Tick(dt time.Duration) {
	if r.shutdown {
		return
	}
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
	for _, s := range r.systems {
		s.Cleanup()
	}
}

// TickPhase runs Update for the subsystems of a single phase only.
// Cleanup is not invoked.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	if r.shutdown {
		return
	}
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Systems returns the registered subsystems in execution order.
func (r *Runner) Systems() []Subsystem {
	r.ensureSorted()
	out := make([]Subsystem, len(r.systems))
	copy(out, r.systems)
	return out
}

// Shutdown destroys every subsystem in reverse execution order. Later calls
// and ticks are no-ops.
func (r *Runner) Shutdown() {
	if r.shutdown {
		return
	}
	r.shutdown = true
	r.ensureSorted()
	for i := len(r.systems) - 1; i >= 0; i-- {
		r.systems[i].Destroy()
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
