package stats

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oslab-sim/ossim/mem/vm"
)

var _ = Describe("Run", func() {
	var run *Run

	BeforeEach(func() {
		run = NewRun()
	})

	It("should start empty", func() {
		Expect(run.Completed()).To(Equal(0))
		Expect(run.Records()).To(BeEmpty())
		Expect(run.AverageTurnaround()).To(Equal(0.0))
		Expect(run.AverageWaiting()).To(Equal(0.0))
		Expect(run.OverallHitRatio()).To(Equal(0.0))
		Expect(run.ContextSwitches()).To(Equal(0))
	})

	It("should average turnaround and waiting over completions", func() {
		run.RecordCompletion(CompletionRecord{
			PID: "P0", Completion: 3, Turnaround: 3, Waiting: 0,
		})
		run.RecordCompletion(CompletionRecord{
			PID: "P1", Completion: 7, Turnaround: 7, Waiting: 3,
		})
		run.RecordCompletion(CompletionRecord{
			PID: "P2", Completion: 9, Turnaround: 9, Waiting: 7,
		})

		Expect(run.Completed()).To(Equal(3))
		Expect(run.AverageTurnaround()).
			To(BeNumerically("~", 19.0/3.0, 1e-9))
		Expect(run.AverageWaiting()).
			To(BeNumerically("~", 10.0/3.0, 1e-9))
	})

	It("should keep completions in completion order", func() {
		run.RecordCompletion(CompletionRecord{PID: "P1", Name: "b"})
		run.RecordCompletion(CompletionRecord{PID: "P0", Name: "a"})

		recs := run.Records()
		Expect(recs).To(HaveLen(2))
		Expect(recs[0].PID).To(Equal(vm.PID("P1")))
		Expect(recs[1].PID).To(Equal(vm.PID("P0")))
	})

	It("should pool hits and faults across processes", func() {
		run.RecordCompletion(CompletionRecord{PID: "P0", Hits: 2, Faults: 3})
		run.RecordCompletion(CompletionRecord{PID: "P1", Hits: 4, Faults: 1})

		Expect(run.OverallHitRatio()).
			To(BeNumerically("~", 6.0/10.0, 1e-9))
	})

	It("should count context switches", func() {
		run.RecordContextSwitch()
		run.RecordContextSwitch()

		Expect(run.ContextSwitches()).To(Equal(2))
	})

	It("should not share its record slice with callers", func() {
		run.RecordCompletion(CompletionRecord{PID: "P0"})

		recs := run.Records()
		recs[0].PID = "P9"

		Expect(run.Records()[0].PID).To(Equal(vm.PID("P0")))
	})

	It("should be empty again after a reset", func() {
		run.RecordCompletion(CompletionRecord{
			PID: "P0", Turnaround: 5, Waiting: 2, Hits: 1, Faults: 1,
		})
		run.RecordContextSwitch()

		run.Reset()

		Expect(run.Completed()).To(Equal(0))
		Expect(run.AverageTurnaround()).To(Equal(0.0))
		Expect(run.OverallHitRatio()).To(Equal(0.0))
		Expect(run.ContextSwitches()).To(Equal(0))
	})
})
