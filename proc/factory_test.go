package proc

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/sim"
)

var _ = Describe("Factory", func() {
	var factory Factory

	BeforeEach(func() {
		factory = MakeFactory()
	})

	It("should assign sequential process IDs", func() {
		p0, err0 := factory.New("loader", 3, 4)
		p1, err1 := factory.New("worker", 3, 4)

		Expect(err0).ToNot(HaveOccurred())
		Expect(err1).ToNot(HaveOccurred())
		Expect(p0.ID()).To(Equal(vm.PID("P0")))
		Expect(p1.ID()).To(Equal(vm.PID("P1")))
	})

	It("should derive the page count from the image size", func() {
		p, _ := factory.New("small", 1, 4)
		Expect(p.NumPages()).To(Equal(uint64(1)))

		p, _ = factory.New("medium", 1, 8)
		Expect(p.NumPages()).To(Equal(uint64(2)))

		p, _ = factory.New("odd", 1, 5)
		Expect(p.NumPages()).To(Equal(uint64(2)))
	})

	It("should synthesize one reference per burst unit", func() {
		p, _ := factory.New("walker", 17, 8)

		Expect(p.RefsRemaining()).To(Equal(17))
	})

	It("should keep synthetic references inside the image", func() {
		p, _ := factory.New("walker", 200, 8)

		for i := 0; i < 200; i++ {
			addr, err := p.NextReference()
			Expect(err).ToNot(HaveOccurred())

			pageNum, _ := p.Translate(addr)
			Expect(pageNum).To(BeNumerically("<", p.NumPages()))
		}
	})

	It("should synthesize the same sequence from the same seed", func() {
		fa := MakeFactory().WithSeed(42)
		fb := MakeFactory().WithSeed(42)

		pa, _ := fa.New("twin", 30, 16)
		pb, _ := fb.New("twin", 30, 16)

		for i := 0; i < 30; i++ {
			addrA, _ := pa.NextReference()
			addrB, _ := pb.NextReference()
			Expect(addrA).To(Equal(addrB))
		}
	})

	It("should reject a non-positive burst", func() {
		_, err := factory.New("bad", 0, 4)

		var configErr *sim.ConfigError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Param).To(Equal("burst"))
	})

	It("should reject a non-positive size", func() {
		_, err := factory.New("bad", 3, 0)

		var configErr *sim.ConfigError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Param).To(Equal("process size"))
	})

	It("should place explicit page references at offset zero", func() {
		p, err := factory.NewWithPageRefs("listed", 3, 16, []uint64{0, 3, 1})

		Expect(err).ToNot(HaveOccurred())

		addr, _ := p.NextReference()
		Expect(addr).To(Equal(uint64(0)))

		addr, _ = p.NextReference()
		Expect(addr).To(Equal(uint64(3 * 4096)))
	})

	It("should reject a page reference outside the image", func() {
		_, err := factory.NewWithPageRefs("listed", 2, 4, []uint64{0, 1})

		var configErr *sim.ConfigError
		Expect(errors.As(err, &configErr)).To(BeTrue())
	})

	It("should reject an address reference outside the image", func() {
		_, err := factory.NewWithAddrRefs("listed", 1, 4, []uint64{0x1000})

		var configErr *sim.ConfigError
		Expect(errors.As(err, &configErr)).To(BeTrue())
	})

	It("should size the burst by the instruction count", func() {
		p, err := factory.NewFromInstructions("scripted", 4, []string{
			"initialize registers",
			"load input",
			"transform",
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(p.BurstTotal()).To(Equal(3))
		Expect(p.InstructionAt(0)).To(Equal("initialize registers"))
		Expect(p.InstructionAt(2)).To(Equal("transform"))
		Expect(p.InstructionAt(3)).To(Equal(""))
	})

	It("should honor a custom page size", func() {
		small := MakeFactory().WithLog2PageSize(10)

		p, _ := small.New("fine", 1, 4)

		Expect(p.NumPages()).To(Equal(uint64(4)))
	})
})
