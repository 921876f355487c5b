package sched

import "github.com/oslab-sim/ossim/proc"

// A readyQueue holds runnable processes in arrival order.
type readyQueue struct {
	elements []*proc.Process
}

func (q *readyQueue) Push(p *proc.Process) {
	q.elements = append(q.elements, p)
}

// Pop removes and returns the process at the head of the queue, or nil
// when the queue is empty.
func (q *readyQueue) Pop() *proc.Process {
	if len(q.elements) == 0 {
		return nil
	}

	p := q.elements[0]
	q.elements = q.elements[1:]

	return p
}

func (q *readyQueue) Len() int {
	return len(q.elements)
}

// Processes returns the queued processes, head first.
func (q *readyQueue) Processes() []*proc.Process {
	return append([]*proc.Process(nil), q.elements...)
}

func (q *readyQueue) Clear() {
	q.elements = nil
}
