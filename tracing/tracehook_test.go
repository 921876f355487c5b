package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/mem/replacement"
	"github.com/oslab-sim/ossim/proc"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/stats"
)

// recordingTracer counts what reaches it.
type recordingTracer struct {
	ticks         []sched.TickEvent
	dispatches    int
	preempts      int
	completions   []stats.CompletionRecord
	evictions     []paging.EvictionInfo
	deallocations []paging.DeallocationInfo
}

func (t *recordingTracer) TickDone(evt sched.TickEvent) {
	t.ticks = append(t.ticks, evt)
}

func (t *recordingTracer) Dispatched(_ sched.DispatchEvent) {
	t.dispatches++
}

func (t *recordingTracer) Preempted(_ sched.PreemptEvent) {
	t.preempts++
}

func (t *recordingTracer) Completed(rec stats.CompletionRecord) {
	t.completions = append(t.completions, rec)
}

func (t *recordingTracer) Evicted(info paging.EvictionInfo) {
	t.evictions = append(t.evictions, info)
}

func (t *recordingTracer) Deallocated(info paging.DeallocationInfo) {
	t.deallocations = append(t.deallocations, info)
}

var _ = Describe("CollectTrace", func() {
	var (
		factory      proc.Factory
		pagingEngine *paging.Comp
		scheduler    *sched.Comp
		tracer       *recordingTracer
	)

	BeforeEach(func() {
		factory = proc.MakeFactory()
		pagingEngine = paging.MakeBuilder().
			WithTotalFrames(1).
			WithReplacementPolicy(replacement.FIFO).
			Build("Paging")
		scheduler = sched.MakeBuilder().
			WithMemorySystem(pagingEngine).
			Build("Sched")
		tracer = &recordingTracer{}

		CollectTrace(scheduler, tracer)
		CollectTrace(pagingEngine, tracer)
	})

	It("should deliver scheduler and memory events to the tracer", func() {
		p, err := factory.NewWithPageRefs("a", 3, 16, []uint64{0, 1, 1})
		Expect(err).To(Succeed())

		scheduler.Add(p)
		Expect(scheduler.Run()).To(Succeed())

		Expect(tracer.ticks).To(HaveLen(3))
		Expect(tracer.dispatches).To(Equal(1))
		Expect(tracer.preempts).To(BeZero())
		Expect(tracer.completions).To(HaveLen(1))

		Expect(tracer.evictions).To(HaveLen(1))
		Expect(tracer.evictions[0].PageNum).To(Equal(uint64(0)))

		Expect(tracer.deallocations).To(HaveLen(1))
		Expect(tracer.deallocations[0].Frames).To(HaveLen(1))
	})

	It("should refuse to attach the same tracer twice", func() {
		Expect(func() {
			CollectTrace(scheduler, tracer)
		}).To(Panic())
	})

	It("should allow different tracers on one domain", func() {
		other := &recordingTracer{}

		Expect(func() {
			CollectTrace(scheduler, other)
		}).NotTo(Panic())
	})
})
