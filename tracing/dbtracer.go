package tracing

import (
	"sync"

	"github.com/oslab-sim/ossim/datarecording"
	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/sim"
	"github.com/oslab-sim/ossim/stats"
)

type tickTableEntry struct {
	Tick        int64
	PID         string
	Process     string
	Instruction string
	Remaining   int
	Status      string
	VAddr       string
	Page        int64
	Frame       int
}

type completionTableEntry struct {
	PID        string
	Process    string
	Completion int64
	Turnaround int64
	Waiting    int64
	Hits       uint64
	Faults     uint64
}

type evictionTableEntry struct {
	Tick  int64
	PID   string
	Page  uint64
	Frame int
}

type deallocationTableEntry struct {
	Tick  int64
	PID   string
	Frame int
}

// A DBTracer records simulation events into a DataRecorder backend, one
// table per event family. Evictions fire mid-tick and are stamped with
// the clock at that moment, one less than the Tick column of the row
// describing the surrounding tick; deallocations fire at completion and
// carry the completing tick.
type DBTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder
}

// NewDBTracer creates a DBTracer and its tables on the backend.
func NewDBTracer(
	timeTeller sim.TimeTeller,
	backend datarecording.DataRecorder,
) *DBTracer {
	t := &DBTracer{
		timeTeller: timeTeller,
		backend:    backend,
	}

	t.backend.CreateTable("ticks", tickTableEntry{})
	t.backend.CreateTable("completions", completionTableEntry{})
	t.backend.CreateTable("evictions", evictionTableEntry{})
	t.backend.CreateTable("deallocations", deallocationTableEntry{})

	return t
}

func (t *DBTracer) TickDone(evt sched.TickEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row := tickTableEntry{
		Tick:        int64(evt.Time),
		PID:         string(evt.PID),
		Process:     evt.ProcessName,
		Instruction: evt.Instruction,
		Remaining:   evt.Remaining,
		Page:        -1,
		Frame:       int(vm.InvalidFrame),
	}

	if evt.Access != nil {
		a := evt.Access
		row.Status = a.Status.String()
		row.VAddr = vm.FormatAddress(a.VAddr)
		row.Page = int64(a.PageNum)
		row.Frame = int(a.Frame)
	}

	t.backend.InsertData("ticks", row)
}

// Dispatched does nothing; dispatches reconstruct from the tick table.
func (t *DBTracer) Dispatched(_ sched.DispatchEvent) {
}

// Preempted does nothing; preemptions reconstruct from the tick table.
func (t *DBTracer) Preempted(_ sched.PreemptEvent) {
}

func (t *DBTracer) Completed(rec stats.CompletionRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData("completions", completionTableEntry{
		PID:        string(rec.PID),
		Process:    rec.Name,
		Completion: int64(rec.Completion),
		Turnaround: int64(rec.Turnaround),
		Waiting:    int64(rec.Waiting),
		Hits:       rec.Hits,
		Faults:     rec.Faults,
	})
}

func (t *DBTracer) Evicted(info paging.EvictionInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData("evictions", evictionTableEntry{
		Tick:  int64(t.timeTeller.CurrentTime()),
		PID:   string(info.PID),
		Page:  info.PageNum,
		Frame: int(info.Frame),
	})
}

func (t *DBTracer) Deallocated(info paging.DeallocationInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := int64(t.timeTeller.CurrentTime())
	for _, frame := range info.Frames {
		t.backend.InsertData("deallocations", deallocationTableEntry{
			Tick:  now,
			PID:   string(info.PID),
			Frame: int(frame),
		})
	}
}
