package replacement

import (
	"container/list"

	"github.com/oslab-sim/ossim/mem/vm"
)

// NewLRU creates a policy that evicts the least recently used frame. Both
// loads and hits refresh a frame's recency.
func NewLRU() Policy {
	return &lruPolicy{
		queue: list.New(),
		elems: make(map[vm.FrameID]*list.Element),
	}
}

// The front of the queue is the coldest frame, the back the hottest.
type lruPolicy struct {
	queue *list.List
	elems map[vm.FrameID]*list.Element
}

func (p *lruPolicy) Loaded(frame vm.FrameID) {
	if _, tracked := p.elems[frame]; tracked {
		panic("frame is already tracked")
	}

	p.elems[frame] = p.queue.PushBack(frame)
}

func (p *lruPolicy) Touched(frame vm.FrameID) {
	elem, tracked := p.elems[frame]
	if !tracked {
		panic("touched a frame that is not tracked")
	}

	p.queue.MoveToBack(elem)
}

func (p *lruPolicy) Forget(frame vm.FrameID) {
	elem, tracked := p.elems[frame]
	if !tracked {
		return
	}

	p.queue.Remove(elem)
	delete(p.elems, frame)
}

func (p *lruPolicy) SelectVictim() (vm.FrameID, bool) {
	front := p.queue.Front()
	if front == nil {
		return vm.InvalidFrame, false
	}

	frame := front.Value.(vm.FrameID)
	p.queue.Remove(front)
	delete(p.elems, frame)

	return frame, true
}

func (p *lruPolicy) Len() int {
	return p.queue.Len()
}
