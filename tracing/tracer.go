// Package tracing turns component hooks into consumable event streams.
//
// Components announce what happens to them through hook positions;
// CollectTrace adapts those announcements into calls on a Tracer. The
// package ships two tracers, one writing log lines and one recording
// into a database, and any Tracer implementation can be attached the
// same way.
package tracing

import (
	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/stats"
)

// A Tracer consumes the events a simulation emits.
type Tracer interface {
	TickDone(evt sched.TickEvent)
	Dispatched(evt sched.DispatchEvent)
	Preempted(evt sched.PreemptEvent)
	Completed(rec stats.CompletionRecord)
	Evicted(info paging.EvictionInfo)
	Deallocated(info paging.DeallocationInfo)
}
