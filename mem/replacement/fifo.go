package replacement

import (
	"container/list"

	"github.com/oslab-sim/ossim/mem/vm"
)

// NewFIFO creates a policy that evicts the longest-resident frame, no
// matter how recently it was used.
func NewFIFO() Policy {
	return &fifoPolicy{
		queue: list.New(),
		elems: make(map[vm.FrameID]*list.Element),
	}
}

type fifoPolicy struct {
	queue *list.List
	elems map[vm.FrameID]*list.Element
}

func (p *fifoPolicy) Loaded(frame vm.FrameID) {
	if _, tracked := p.elems[frame]; tracked {
		panic("frame is already tracked")
	}

	p.elems[frame] = p.queue.PushBack(frame)
}

func (p *fifoPolicy) Touched(frame vm.FrameID) {
	// Residency order ignores use.
}

func (p *fifoPolicy) Forget(frame vm.FrameID) {
	elem, tracked := p.elems[frame]
	if !tracked {
		return
	}

	p.queue.Remove(elem)
	delete(p.elems, frame)
}

func (p *fifoPolicy) SelectVictim() (vm.FrameID, bool) {
	front := p.queue.Front()
	if front == nil {
		return vm.InvalidFrame, false
	}

	frame := front.Value.(vm.FrameID)
	p.queue.Remove(front)
	delete(p.elems, frame)

	return frame, true
}

func (p *fifoPolicy) Len() int {
	return p.queue.Len()
}
