package replacement

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/sim"
)

var _ = Describe("ParseKind", func() {
	It("should accept the policy names case-insensitively", func() {
		Expect(ParseKind("FIFO")).To(Equal(FIFO))
		Expect(ParseKind("fifo")).To(Equal(FIFO))
		Expect(ParseKind(" LRU ")).To(Equal(LRU))
		Expect(ParseKind("lru")).To(Equal(LRU))
	})

	It("should reject unknown policy names", func() {
		_, err := ParseKind("CLOCK")

		var configErr *sim.ConfigError
		Expect(err).To(HaveOccurred())
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Value).To(Equal("CLOCK"))
	})
})

var _ = Describe("FIFO policy", func() {
	var policy Policy

	BeforeEach(func() {
		policy = NewFIFO()
	})

	It("should evict frames in load order", func() {
		policy.Loaded(0)
		policy.Loaded(1)
		policy.Loaded(2)

		victim, ok := policy.SelectVictim()
		Expect(ok).To(BeTrue())
		Expect(victim).To(Equal(vm.FrameID(0)))

		victim, _ = policy.SelectVictim()
		Expect(victim).To(Equal(vm.FrameID(1)))
	})

	It("should not let hits change the eviction order", func() {
		policy.Loaded(0)
		policy.Loaded(1)

		policy.Touched(0)
		policy.Touched(0)

		victim, _ := policy.SelectVictim()
		Expect(victim).To(Equal(vm.FrameID(0)))
	})

	It("should skip forgotten frames", func() {
		policy.Loaded(0)
		policy.Loaded(1)

		policy.Forget(0)

		victim, _ := policy.SelectVictim()
		Expect(victim).To(Equal(vm.FrameID(1)))
		Expect(policy.Len()).To(Equal(0))
	})

	It("should report when it has no victim to offer", func() {
		_, ok := policy.SelectVictim()
		Expect(ok).To(BeFalse())
	})

	It("should panic on a duplicated load", func() {
		policy.Loaded(0)

		Expect(func() { policy.Loaded(0) }).To(Panic())
	})

	It("should allow reloading after an eviction", func() {
		policy.Loaded(0)
		policy.SelectVictim()

		Expect(func() { policy.Loaded(0) }).NotTo(Panic())
		Expect(policy.Len()).To(Equal(1))
	})
})

var _ = Describe("LRU policy", func() {
	var policy Policy

	BeforeEach(func() {
		policy = NewLRU()
	})

	It("should evict the least recently used frame", func() {
		policy.Loaded(0)
		policy.Loaded(1)
		policy.Loaded(2)

		policy.Touched(0)

		victim, ok := policy.SelectVictim()
		Expect(ok).To(BeTrue())
		Expect(victim).To(Equal(vm.FrameID(1)))
	})

	It("should treat a load as a use", func() {
		policy.Loaded(0)
		policy.Loaded(1)

		victim, _ := policy.SelectVictim()
		Expect(victim).To(Equal(vm.FrameID(0)))
	})

	It("should refresh recency on every touch", func() {
		policy.Loaded(0)
		policy.Loaded(1)
		policy.Loaded(2)

		policy.Touched(0)
		policy.Touched(1)

		victim, _ := policy.SelectVictim()
		Expect(victim).To(Equal(vm.FrameID(2)))
	})

	It("should skip forgotten frames", func() {
		policy.Loaded(0)
		policy.Loaded(1)

		policy.Forget(0)

		victim, _ := policy.SelectVictim()
		Expect(victim).To(Equal(vm.FrameID(1)))
	})

	It("should tolerate forgetting an untracked frame", func() {
		Expect(func() { policy.Forget(9) }).NotTo(Panic())
	})

	It("should panic when touching an untracked frame", func() {
		Expect(func() { policy.Touched(3) }).To(Panic())
	})

	It("should report when it has no victim to offer", func() {
		_, ok := policy.SelectVictim()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("New", func() {
	It("should build the policy that matches the kind", func() {
		Expect(New(FIFO).Len()).To(Equal(0))
		Expect(New(LRU).Len()).To(Equal(0))
	})
})
