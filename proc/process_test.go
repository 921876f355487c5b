package proc

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Process", func() {
	var (
		factory Factory
		process *Process
	)

	BeforeEach(func() {
		factory = MakeFactory()
		var err error
		process, err = factory.NewWithPageRefs("subject", 3, 8, []uint64{0, 1, 0})
		Expect(err).ToNot(HaveOccurred())
	})

	It("should start ready with a full burst", func() {
		Expect(process.State()).To(Equal(Ready))
		Expect(process.Remaining()).To(Equal(3))
		Expect(process.Executed()).To(Equal(0))
	})

	It("should consume references in order", func() {
		addr, err := process.NextReference()
		Expect(err).ToNot(HaveOccurred())
		Expect(addr).To(Equal(uint64(0)))

		addr, err = process.NextReference()
		Expect(err).ToNot(HaveOccurred())
		Expect(addr).To(Equal(uint64(4096)))

		Expect(process.RefsRemaining()).To(Equal(1))
	})

	It("should fail without side effects when references run out", func() {
		for i := 0; i < 3; i++ {
			_, err := process.NextReference()
			Expect(err).ToNot(HaveOccurred())
		}

		_, err := process.NextReference()
		Expect(err).To(MatchError(ErrNoMoreReferences))

		_, err = process.NextReference()
		Expect(err).To(MatchError(ErrNoMoreReferences))
		Expect(process.RefsRemaining()).To(Equal(0))
	})

	It("should never drive the remaining burst below zero", func() {
		for i := 0; i < 5; i++ {
			process.ExecuteOneUnit()
		}

		Expect(process.Remaining()).To(Equal(0))
		Expect(process.Executed()).To(Equal(3))
	})

	It("should translate without touching any page", func() {
		pageNum, offset := process.Translate(0x1A34)

		Expect(pageNum).To(Equal(uint64(1)))
		Expect(offset).To(Equal(uint64(0xA34)))
		Expect(process.PageTable().Pages()).To(BeEmpty())
	})

	It("should tally hits and faults separately", func() {
		process.RecordFault()
		process.RecordHit()
		process.RecordHit()

		Expect(process.Hits()).To(Equal(uint64(2)))
		Expect(process.Faults()).To(Equal(uint64(1)))
		Expect(process.HitRatio()).To(BeNumerically("~", 2.0/3.0))
	})

	It("should report a zero hit ratio before any access", func() {
		Expect(process.HitRatio()).To(BeZero())
	})

	It("should restore itself for a new run", func() {
		process.SetState(Running)
		process.ExecuteOneUnit()
		_, _ = process.NextReference()
		process.RecordFault()
		process.Arrival = 5
		process.Completion = 9

		process.ResetForNewRun()

		Expect(process.State()).To(Equal(Ready))
		Expect(process.Remaining()).To(Equal(3))
		Expect(process.RefsRemaining()).To(Equal(3))
		Expect(process.Faults()).To(BeZero())
		Expect(process.Arrival).To(BeZero())
		Expect(process.Completion).To(BeZero())
	})
})
