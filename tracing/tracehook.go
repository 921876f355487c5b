package tracing

import (
	"fmt"
	"reflect"

	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/sim"
	"github.com/oslab-sim/ossim/stats"
)

// NamedHookable is a simulation domain traces can be collected from.
type NamedHookable interface {
	sim.Named
	sim.Hookable

	NumHooks() int
	Hooks() []sim.Hook
}

// CollectTrace lets the tracer collect events from a domain. Attaching
// the same tracer to the same domain twice is a programming error.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	for _, hook := range domain.Hooks() {
		h, ok := hook.(*traceHook)
		if ok && h.t == tracer {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	domain.AcceptHook(&traceHook{t: tracer})
}

// A traceHook forwards hook invocations to a tracer.
type traceHook struct {
	t Tracer
}

func (h *traceHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sched.HookPosTick:
		h.t.TickDone(ctx.Item.(sched.TickEvent))
	case sched.HookPosDispatch:
		h.t.Dispatched(ctx.Item.(sched.DispatchEvent))
	case sched.HookPosPreempt:
		h.t.Preempted(ctx.Item.(sched.PreemptEvent))
	case sched.HookPosComplete:
		h.t.Completed(ctx.Item.(stats.CompletionRecord))
	case paging.HookPosEviction:
		h.t.Evicted(ctx.Item.(paging.EvictionInfo))
	case paging.HookPosDeallocation:
		h.t.Deallocated(ctx.Item.(paging.DeallocationInfo))
	}
}
