package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller", func() {
	var c *Controller

	BeforeEach(func() {
		c = NewController()
	})

	It("should let a free-running loop tick", func() {
		Expect(c.AllowTick()).To(BeTrue())
		Expect(c.AllowTick()).To(BeTrue())
	})

	It("should stop the loop", func() {
		c.Stop()
		Expect(c.AllowTick()).To(BeFalse())
	})

	It("should resume when pause and continue are both queued", func() {
		c.Pause()
		c.Continue()
		Expect(c.AllowTick()).To(BeTrue())
	})

	It("should hold a paused loop until continued", func() {
		c.Pause()

		allowed := make(chan bool)
		go func() {
			allowed <- c.AllowTick()
		}()

		Consistently(allowed).ShouldNot(Receive())

		c.Continue()

		var ok bool
		Eventually(allowed).Should(Receive(&ok))
		Expect(ok).To(BeTrue())
	})

	It("should grant exactly one tick per step while paused", func() {
		c.Pause()
		c.Step()
		Expect(c.AllowTick()).To(BeTrue())

		allowed := make(chan bool)
		go func() {
			allowed <- c.AllowTick()
		}()

		Consistently(allowed).ShouldNot(Receive())

		c.Step()

		var ok bool
		Eventually(allowed).Should(Receive(&ok))
		Expect(ok).To(BeTrue())
	})

	It("should stop a paused loop", func() {
		c.Pause()

		allowed := make(chan bool)
		go func() {
			allowed <- c.AllowTick()
		}()

		c.Stop()

		var ok bool
		Eventually(allowed).Should(Receive(&ok))
		Expect(ok).To(BeFalse())
	})
})
