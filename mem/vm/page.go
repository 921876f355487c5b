// Package vm provides the vocabulary of demand-paged virtual memory:
// process IDs, frame IDs, page-table entries, and address arithmetic.
package vm

// PID stands for Process ID.
type PID string

// A FrameID is the index of a physical frame.
type FrameID int

// InvalidFrame marks a page-table entry that is not backed by a frame.
const InvalidFrame FrameID = -1

// A Page is an entry in a page table, maintaining the information about how
// to translate a virtual page into a physical frame.
type Page struct {
	PID     PID
	PageNum uint64
	Frame   FrameID
	Valid   bool
}
