// Package physmem models a fixed pool of physical page frames.
package physmem

import (
	"sort"
	"sync"

	"github.com/oslab-sim/ossim/mem/vm"
)

// A Frame records who currently occupies a physical frame.
type Frame struct {
	Owner     vm.PID
	PageNum   uint64
	LoadOrder uint64
}

// Usage summarizes how full the frame pool is.
type Usage struct {
	TotalFrames int
	UsedFrames  int
	FreeFrames  int
	Utilization float64
}

// Memory is a fixed pool of physical frames. Free frames are handed out
// lowest index first, which keeps allocation order reproducible.
type Memory struct {
	sync.Mutex

	totalFrames int
	freeFrames  []vm.FrameID
	frames      map[vm.FrameID]Frame
	loads       uint64
}

// New creates a Memory with the given number of frames, all free.
func New(totalFrames int) *Memory {
	if totalFrames <= 0 {
		panic("total frame count must be positive")
	}

	m := &Memory{
		totalFrames: totalFrames,
		freeFrames:  make([]vm.FrameID, 0, totalFrames),
		frames:      make(map[vm.FrameID]Frame),
	}
	for i := 0; i < totalFrames; i++ {
		m.freeFrames = append(m.freeFrames, vm.FrameID(i))
	}

	return m
}

// Allocate hands the lowest free frame to the given page. The bool return
// value is false when every frame is occupied.
func (m *Memory) Allocate(owner vm.PID, pageNum uint64) (vm.FrameID, bool) {
	m.Lock()
	defer m.Unlock()

	if len(m.freeFrames) == 0 {
		return vm.InvalidFrame, false
	}

	frame := m.freeFrames[0]
	m.freeFrames = m.freeFrames[1:]
	m.loads++
	m.frames[frame] = Frame{Owner: owner, PageNum: pageNum, LoadOrder: m.loads}

	return frame, true
}

// Free returns a frame to the pool. It succeeds only if the frame is
// currently allocated to exactly the given owner and page. Double frees and
// frees on behalf of the wrong owner change nothing.
func (m *Memory) Free(frame vm.FrameID, owner vm.PID, pageNum uint64) bool {
	m.Lock()
	defer m.Unlock()

	info, allocated := m.frames[frame]
	if !allocated || info.Owner != owner || info.PageNum != pageNum {
		return false
	}

	delete(m.frames, frame)
	m.insertFree(frame)

	return true
}

// The free list stays sorted so that Allocate can always pick the lowest
// index.
func (m *Memory) insertFree(frame vm.FrameID) {
	at := sort.Search(len(m.freeFrames), func(i int) bool {
		return m.freeFrames[i] > frame
	})

	m.freeFrames = append(m.freeFrames, 0)
	copy(m.freeFrames[at+1:], m.freeFrames[at:])
	m.freeFrames[at] = frame
}

// FrameInfo reports who occupies the frame. The bool return value is false
// for free frames.
func (m *Memory) FrameInfo(frame vm.FrameID) (Frame, bool) {
	m.Lock()
	defer m.Unlock()

	info, allocated := m.frames[frame]
	return info, allocated
}

// FramesOf returns the frames held by one owner, in ascending order.
func (m *Memory) FramesOf(owner vm.PID) []vm.FrameID {
	m.Lock()
	defer m.Unlock()

	owned := make([]vm.FrameID, 0)
	for frame, info := range m.frames {
		if info.Owner == owner {
			owned = append(owned, frame)
		}
	}

	sort.Slice(owned, func(i, j int) bool { return owned[i] < owned[j] })

	return owned
}

// CanAllocate reports whether n more frames are available.
func (m *Memory) CanAllocate(n int) bool {
	m.Lock()
	defer m.Unlock()

	return len(m.freeFrames) >= n
}

// IsFull reports whether every frame is occupied.
func (m *Memory) IsFull() bool {
	m.Lock()
	defer m.Unlock()

	return len(m.freeFrames) == 0
}

// TotalFrames returns the size of the pool.
func (m *Memory) TotalFrames() int {
	return m.totalFrames
}

// Usage reports how the pool is being used.
func (m *Memory) Usage() Usage {
	m.Lock()
	defer m.Unlock()

	used := len(m.frames)
	u := Usage{
		TotalFrames: m.totalFrames,
		UsedFrames:  used,
		FreeFrames:  len(m.freeFrames),
	}
	u.Utilization = float64(used) / float64(m.totalFrames)

	return u
}
