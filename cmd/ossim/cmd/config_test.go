package cmd

import (
	"errors"

	"github.com/oslab-sim/ossim/sim"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func expectConfigError(err error) {
	var configErr *sim.ConfigError
	ExpectWithOffset(1, err).To(HaveOccurred())
	ExpectWithOffset(1, errors.As(err, &configErr)).To(BeTrue())
}

var _ = Describe("Workload configuration", func() {
	Describe("process specs", func() {
		It("should parse name:burst:sizeKB", func() {
			spec, err := parseProcSpec("editor:12:16")

			Expect(err).To(BeNil())
			Expect(spec.name).To(Equal("editor"))
			Expect(spec.burst).To(Equal(12))
			Expect(spec.sizeKB).To(Equal(16))
		})

		It("should reject a malformed spec", func() {
			_, err := parseProcSpec("editor:12")

			expectConfigError(err)
		})

		It("should reject an empty name", func() {
			_, err := parseProcSpec(":12:16")

			expectConfigError(err)
		})

		It("should reject a burst outside 1..30", func() {
			_, err := parseProcSpec("editor:0:16")
			expectConfigError(err)

			_, err = parseProcSpec("editor:31:16")
			expectConfigError(err)
		})

		It("should reject a non-numeric burst", func() {
			_, err := parseProcSpec("editor:fast:16")

			expectConfigError(err)
		})

		It("should reject a size outside 1..32 KB", func() {
			_, err := parseProcSpec("editor:12:0")
			expectConfigError(err)

			_, err = parseProcSpec("editor:12:33")
			expectConfigError(err)
		})
	})

	Describe("reference strings", func() {
		It("should parse a comma-separated list", func() {
			refs, err := parseRefs("0,1,2,0,3,1")

			Expect(err).To(BeNil())
			Expect(refs).To(Equal([]uint64{0, 1, 2, 0, 3, 1}))
		})

		It("should tolerate spaces", func() {
			refs, err := parseRefs("0, 1, 2")

			Expect(err).To(BeNil())
			Expect(refs).To(Equal([]uint64{0, 1, 2}))
		})

		It("should return nil for an empty string", func() {
			refs, err := parseRefs("")

			Expect(err).To(BeNil())
			Expect(refs).To(BeNil())
		})

		It("should reject non-numeric pages", func() {
			_, err := parseRefs("0,one,2")

			expectConfigError(err)
		})
	})

	Describe("range validation", func() {
		It("should bound the frame count to 4..32", func() {
			Expect(validateFrames(4)).To(Succeed())
			Expect(validateFrames(32)).To(Succeed())
			expectConfigError(validateFrames(3))
			expectConfigError(validateFrames(33))
		})

		It("should bound the time quantum to 1..10", func() {
			Expect(validateQuantum(1)).To(Succeed())
			Expect(validateQuantum(10)).To(Succeed())
			expectConfigError(validateQuantum(0))
			expectConfigError(validateQuantum(11))
		})

		It("should bound the page size to 512 B..64 KB", func() {
			Expect(validateLog2PageSize(9)).To(Succeed())
			Expect(validateLog2PageSize(16)).To(Succeed())
			expectConfigError(validateLog2PageSize(8))
			expectConfigError(validateLog2PageSize(17))
		})

		It("should bound the process count to 1..10", func() {
			Expect(validateProcCount(1)).To(Succeed())
			Expect(validateProcCount(10)).To(Succeed())
			expectConfigError(validateProcCount(0))
			expectConfigError(validateProcCount(11))
		})
	})
})
