package vm

import (
	"container/list"
	"sync"
)

// A PageTable holds the pages of one process.
type PageTable interface {
	// Insert puts a new page into the table. The page must not exist yet.
	Insert(page Page)

	// Update changes the fields of an existing page. The PageNum field is
	// used to locate the page to update.
	Update(page Page)

	// Find returns the page with the given page number. The bool return
	// value indicates if the page is found or not.
	Find(pageNum uint64) (Page, bool)

	// Pages returns all the pages in the table, in insertion order.
	Pages() []Page

	// Clear removes all the pages from the table.
	Clear()
}

// NewPageTable creates a new PageTable.
func NewPageTable() PageTable {
	return &pageTableImpl{
		entries:      list.New(),
		entriesTable: make(map[uint64]*list.Element),
	}
}

type pageTableImpl struct {
	sync.Mutex
	entries      *list.List
	entriesTable map[uint64]*list.Element
}

func (t *pageTableImpl) Insert(page Page) {
	t.Lock()
	defer t.Unlock()

	t.pageMustNotExist(page.PageNum)

	elem := t.entries.PushBack(page)
	t.entriesTable[page.PageNum] = elem
}

func (t *pageTableImpl) Update(page Page) {
	t.Lock()
	defer t.Unlock()

	t.pageMustExist(page.PageNum)

	elem := t.entriesTable[page.PageNum]
	elem.Value = page
}

func (t *pageTableImpl) Find(pageNum uint64) (Page, bool) {
	t.Lock()
	defer t.Unlock()

	elem, found := t.entriesTable[pageNum]
	if found {
		return elem.Value.(Page), true
	}

	return Page{}, false
}

func (t *pageTableImpl) Pages() []Page {
	t.Lock()
	defer t.Unlock()

	pages := make([]Page, 0, t.entries.Len())
	for elem := t.entries.Front(); elem != nil; elem = elem.Next() {
		pages = append(pages, elem.Value.(Page))
	}

	return pages
}

func (t *pageTableImpl) Clear() {
	t.Lock()
	defer t.Unlock()

	t.entries.Init()
	t.entriesTable = make(map[uint64]*list.Element)
}

func (t *pageTableImpl) pageMustExist(pageNum uint64) {
	_, found := t.entriesTable[pageNum]
	if !found {
		panic("page does not exist")
	}
}

func (t *pageTableImpl) pageMustNotExist(pageNum uint64) {
	_, found := t.entriesTable[pageNum]
	if found {
		panic("page already exists")
	}
}
