package vm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PageTable", func() {
	var table PageTable

	BeforeEach(func() {
		table = NewPageTable()
	})

	It("should find an inserted page", func() {
		page := Page{PID: "P0", PageNum: 3, Frame: 7, Valid: true}
		table.Insert(page)

		found, ok := table.Find(3)

		Expect(ok).To(BeTrue())
		Expect(found).To(Equal(page))
	})

	It("should not find a page that was never inserted", func() {
		_, ok := table.Find(99)

		Expect(ok).To(BeFalse())
	})

	It("should update an existing page in place", func() {
		table.Insert(Page{PID: "P0", PageNum: 3, Frame: 7, Valid: true})

		table.Update(Page{PID: "P0", PageNum: 3, Frame: InvalidFrame, Valid: false})

		found, ok := table.Find(3)
		Expect(ok).To(BeTrue())
		Expect(found.Valid).To(BeFalse())
		Expect(found.Frame).To(Equal(InvalidFrame))
	})

	It("should panic when inserting a duplicated page", func() {
		table.Insert(Page{PageNum: 3})

		Expect(func() {
			table.Insert(Page{PageNum: 3})
		}).To(Panic())
	})

	It("should panic when updating an absent page", func() {
		Expect(func() {
			table.Update(Page{PageNum: 3})
		}).To(Panic())
	})

	It("should list pages in insertion order", func() {
		table.Insert(Page{PageNum: 2, Frame: 0, Valid: true})
		table.Insert(Page{PageNum: 0, Frame: 1, Valid: true})
		table.Insert(Page{PageNum: 5, Frame: 2, Valid: true})

		pages := table.Pages()

		Expect(pages).To(HaveLen(3))
		Expect(pages[0].PageNum).To(Equal(uint64(2)))
		Expect(pages[1].PageNum).To(Equal(uint64(0)))
		Expect(pages[2].PageNum).To(Equal(uint64(5)))
	})

	It("should be empty after a clear", func() {
		table.Insert(Page{PageNum: 1})
		table.Insert(Page{PageNum: 2})

		table.Clear()

		Expect(table.Pages()).To(BeEmpty())
		_, ok := table.Find(1)
		Expect(ok).To(BeFalse())
	})
})
