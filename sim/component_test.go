package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ComponentBase", func() {
	var component *ComponentBase

	BeforeEach(func() {
		component = NewComponentBase("test_comp")
	})

	It("should set and get name", func() {
		Expect(component.Name()).To(Equal("test_comp"))
	})

	It("should accept hooks through the embedded base", func() {
		hook := &recordingHook{}

		component.AcceptHook(hook)
		component.InvokeHook(HookCtx{Domain: component})

		Expect(component.NumHooks()).To(Equal(1))
		Expect(hook.ctxs).To(HaveLen(1))
		Expect(hook.ctxs[0].Domain).To(BeIdenticalTo(component))
	})
})
