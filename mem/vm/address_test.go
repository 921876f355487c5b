package vm

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Address arithmetic", func() {
	It("should split an address into page number and offset", func() {
		Expect(PageNumOf(0x1A34, 12)).To(Equal(uint64(1)))
		Expect(OffsetOf(0x1A34, 12)).To(Equal(uint64(0xA34)))
	})

	It("should place address zero in page zero", func() {
		Expect(PageNumOf(0, 12)).To(Equal(uint64(0)))
		Expect(OffsetOf(0, 12)).To(Equal(uint64(0)))
	})

	It("should combine a frame and an offset into a physical address", func() {
		Expect(PhysicalAddrOf(3, 0x2B, 12)).To(Equal(uint64(0x302B)))
	})

	It("should round the page count up", func() {
		Expect(NumPagesFor(0, 12)).To(Equal(uint64(0)))
		Expect(NumPagesFor(1, 12)).To(Equal(uint64(1)))
		Expect(NumPagesFor(4096, 12)).To(Equal(uint64(1)))
		Expect(NumPagesFor(4097, 12)).To(Equal(uint64(2)))
		Expect(NumPagesFor(8*1024, 12)).To(Equal(uint64(2)))
	})
})

var _ = Describe("ParseAddress", func() {
	It("should parse plain hexadecimal", func() {
		Expect(ParseAddress("1A34")).To(Equal(uint64(0x1A34)))
	})

	It("should parse a 0x prefix", func() {
		Expect(ParseAddress("0x1000")).To(Equal(uint64(0x1000)))
		Expect(ParseAddress("0X00ff")).To(Equal(uint64(0xFF)))
	})

	It("should tolerate surrounding spaces", func() {
		Expect(ParseAddress("  0x20 ")).To(Equal(uint64(0x20)))
	})

	DescribeTable("should reject malformed input",
		func(input string) {
			_, err := ParseAddress(input)

			var formatErr *AddressFormatError
			Expect(err).To(HaveOccurred())
			Expect(errors.As(err, &formatErr)).To(BeTrue())
			Expect(formatErr.Input).To(Equal(input))
		},
		Entry("empty string", ""),
		Entry("bare prefix", "0x"),
		Entry("non-hex characters", "0xZZTOP"),
		Entry("negative number", "-1F"),
		Entry("inner spaces", "1F 2A"),
	)
})

var _ = Describe("FormatAddress", func() {
	It("should pad short addresses to four digits", func() {
		Expect(FormatAddress(0x2B)).To(Equal("0x002B"))
	})

	It("should keep long addresses intact", func() {
		Expect(FormatAddress(0x12345)).To(Equal("0x12345"))
	})
})
