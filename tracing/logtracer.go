package tracing

import (
	"fmt"
	"log"

	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/stats"
)

// A LogTracer writes every event as one line on a logger.
type LogTracer struct {
	*log.Logger
}

// NewLogTracer returns a LogTracer that writes into the given logger.
func NewLogTracer(logger *log.Logger) *LogTracer {
	return &LogTracer{Logger: logger}
}

func (t *LogTracer) TickDone(evt sched.TickEvent) {
	if evt.Idle() {
		t.Printf("%d, idle", evt.Time)
		return
	}

	line := fmt.Sprintf("%d, %s", evt.Time, evt.PID)

	if evt.Instruction != "" {
		line += ", " + evt.Instruction
	}

	if evt.Access != nil {
		a := evt.Access
		line += fmt.Sprintf(", %s, page %d, %s, frame %d",
			vm.FormatAddress(a.VAddr), a.PageNum, a.Status, a.Frame)
	}

	line += fmt.Sprintf(", remaining %d", evt.Remaining)

	t.Print(line)
}

func (t *LogTracer) Dispatched(evt sched.DispatchEvent) {
	t.Printf("%d, dispatch %s (%s)", evt.Time, evt.PID, evt.ProcessName)
}

func (t *LogTracer) Preempted(evt sched.PreemptEvent) {
	t.Printf("%d, preempt %s, remaining %d",
		evt.Time, evt.PID, evt.Remaining)
}

func (t *LogTracer) Completed(rec stats.CompletionRecord) {
	t.Printf("%d, complete %s, turnaround %d, waiting %d",
		rec.Completion, rec.PID, rec.Turnaround, rec.Waiting)
}

func (t *LogTracer) Evicted(info paging.EvictionInfo) {
	t.Printf("evict %s page %d from frame %d",
		info.PID, info.PageNum, info.Frame)
}

func (t *LogTracer) Deallocated(info paging.DeallocationInfo) {
	t.Printf("free %s, frames %v", info.PID, info.Frames)
}
