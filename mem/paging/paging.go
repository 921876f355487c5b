// Package paging implements the demand-paging engine. It serves the memory
// accesses of processes against a fixed pool of physical frames, filling
// page tables on faults and pushing pages out through a replacement policy
// when the pool runs dry.
package paging

import (
	"log"

	"github.com/oslab-sim/ossim/mem/physmem"
	"github.com/oslab-sim/ossim/mem/replacement"
	"github.com/oslab-sim/ossim/mem/vm"
	"github.com/oslab-sim/ossim/proc"
	"github.com/oslab-sim/ossim/sim"
)

// AccessStatus tells how an access was served.
type AccessStatus int

// An access either hits a resident page or faults.
const (
	Hit AccessStatus = iota
	Fault
)

func (s AccessStatus) String() string {
	if s == Hit {
		return "Hit"
	}

	return "Fault"
}

// An EvictionInfo identifies the page that was pushed out to serve a fault.
type EvictionInfo struct {
	PID     vm.PID
	PageNum uint64
	Frame   vm.FrameID
}

// An AccessResult reports how one page access was served.
type AccessResult struct {
	PID     vm.PID
	PageNum uint64
	Status  AccessStatus
	Frame   vm.FrameID
	Evicted *EvictionInfo
}

// An AddressAccessResult reports how one virtual-address access was served,
// including the physical address the access resolved to.
type AddressAccessResult struct {
	AccessResult

	VAddr        uint64
	Offset       uint64
	PhysicalAddr uint64
}

// A DeallocationInfo lists the frames a finished process gave back.
type DeallocationInfo struct {
	PID    vm.PID
	Frames []vm.FrameID
}

// AccessStats summarizes the accesses served so far.
type AccessStats struct {
	Accesses uint64
	Hits     uint64
	Faults   uint64
	HitRatio float64
}

// A FrameDescriptor is one row of the frame-table view.
type FrameDescriptor struct {
	Frame   vm.FrameID
	Free    bool
	Owner   vm.PID
	PageNum uint64
}

// HookPosHit triggers when an access hits a resident page.
var HookPosHit = &sim.HookPos{Name: "PageHit"}

// HookPosFault triggers when an access faults, after the page is loaded.
var HookPosFault = &sim.HookPos{Name: "PageFault"}

// HookPosEviction triggers when serving a fault pushed a page out.
var HookPosEviction = &sim.HookPos{Name: "Eviction"}

// HookPosDeallocation triggers when a process gives its frames back.
var HookPosDeallocation = &sim.HookPos{Name: "Deallocation"}

// Comp is the paging engine.
type Comp struct {
	*sim.ComponentBase

	memory       *physmem.Memory
	policy       replacement.Policy
	kind         replacement.Kind
	log2PageSize uint64

	processes map[vm.PID]*proc.Process

	hits   uint64
	faults uint64
}

// Register makes the engine aware of a process, so that the process's page
// table can be found when one of its pages is chosen as a victim. Accessing
// registers implicitly; registering twice is harmless.
func (c *Comp) Register(p *proc.Process) {
	if _, known := c.processes[p.ID()]; known {
		return
	}

	c.processes[p.ID()] = p
}

// Access serves one reference to a page of the process. A resident page is
// a hit. A fault loads the page into a free frame, evicting a victim first
// when no frame is free.
func (c *Comp) Access(p *proc.Process, pageNum uint64) AccessResult {
	c.Register(p)

	result := AccessResult{PID: p.ID(), PageNum: pageNum}

	if page, found := p.PageTable().Find(pageNum); found && page.Valid {
		c.policy.Touched(page.Frame)
		c.hits++
		p.RecordHit()

		result.Status = Hit
		result.Frame = page.Frame
		c.InvokeHook(sim.HookCtx{Domain: c, Pos: HookPosHit, Item: result})

		return result
	}

	result.Status = Fault
	c.faults++
	p.RecordFault()

	frame, free := c.memory.Allocate(p.ID(), pageNum)
	if !free {
		evicted := c.evictOne()
		result.Evicted = &evicted

		frame, free = c.memory.Allocate(p.ID(), pageNum)
		if !free {
			log.Panic("no frame is free right after an eviction")
		}
	}

	c.fill(p, pageNum, frame)
	result.Frame = frame

	c.InvokeHook(sim.HookCtx{Domain: c, Pos: HookPosFault, Item: result})
	if result.Evicted != nil {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosEviction,
			Item:   *result.Evicted,
			Detail: result,
		})
	}

	return result
}

// AccessAddress serves one reference to a virtual address of the process
// and resolves the physical address it lands on.
func (c *Comp) AccessAddress(p *proc.Process, vAddr uint64) AddressAccessResult {
	pageNum := vm.PageNumOf(vAddr, c.log2PageSize)
	offset := vm.OffsetOf(vAddr, c.log2PageSize)

	result := AddressAccessResult{
		AccessResult: c.Access(p, pageNum),
		VAddr:        vAddr,
		Offset:       offset,
	}
	result.PhysicalAddr = vm.PhysicalAddrOf(result.Frame, offset, c.log2PageSize)

	return result
}

// AccessHexAddress parses an address written in hexadecimal and serves the
// access. A malformed string fails with a vm.AddressFormatError before any
// state changes.
func (c *Comp) AccessHexAddress(
	p *proc.Process,
	s string,
) (AddressAccessResult, error) {
	vAddr, err := vm.ParseAddress(s)
	if err != nil {
		return AddressAccessResult{}, err
	}

	return c.AccessAddress(p, vAddr), nil
}

// DeallocateProcess releases every frame the process holds and clears its
// page table. Deallocating twice, or deallocating a process that never
// touched memory, is a no-op.
func (c *Comp) DeallocateProcess(p *proc.Process) {
	released := make([]vm.FrameID, 0)

	for _, page := range p.PageTable().Pages() {
		if !page.Valid {
			continue
		}

		if !c.memory.Free(page.Frame, p.ID(), page.PageNum) {
			log.Panicf("cannot release frame %d of process %s",
				page.Frame, p.ID())
		}
		c.policy.Forget(page.Frame)
		released = append(released, page.Frame)
	}

	p.PageTable().Clear()

	if len(released) > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosDeallocation,
			Item:   DeallocationInfo{PID: p.ID(), Frames: released},
		})
	}
}

// The victim leaves its owner's page table, then its frame goes back to the
// pool. Every disagreement between the tables here is a corrupted engine,
// not a servable condition.
func (c *Comp) evictOne() EvictionInfo {
	victim, offered := c.policy.SelectVictim()
	if !offered {
		log.Panic("memory is full but the replacement policy offers no victim")
	}

	info, allocated := c.memory.FrameInfo(victim)
	if !allocated {
		log.Panicf("the replacement policy selected free frame %d", victim)
	}

	owner, registered := c.processes[info.Owner]
	if !registered {
		log.Panicf("frame %d belongs to unregistered process %s",
			victim, info.Owner)
	}

	page, found := owner.PageTable().Find(info.PageNum)
	if !found || !page.Valid || page.Frame != victim {
		log.Panicf("page table of %s and frame table disagree on frame %d",
			info.Owner, victim)
	}

	page.Valid = false
	page.Frame = vm.InvalidFrame
	owner.PageTable().Update(page)

	if !c.memory.Free(victim, info.Owner, info.PageNum) {
		log.Panicf("cannot free frame %d during eviction", victim)
	}

	return EvictionInfo{PID: info.Owner, PageNum: info.PageNum, Frame: victim}
}

func (c *Comp) fill(p *proc.Process, pageNum uint64, frame vm.FrameID) {
	entry := vm.Page{
		PID:     p.ID(),
		PageNum: pageNum,
		Frame:   frame,
		Valid:   true,
	}

	if _, found := p.PageTable().Find(pageNum); found {
		p.PageTable().Update(entry)
	} else {
		p.PageTable().Insert(entry)
	}

	c.policy.Loaded(frame)
}

// Usage reports how the frame pool is being used.
func (c *Comp) Usage() physmem.Usage {
	return c.memory.Usage()
}

// Stats summarizes the accesses served so far.
func (c *Comp) Stats() AccessStats {
	s := AccessStats{
		Accesses: c.hits + c.faults,
		Hits:     c.hits,
		Faults:   c.faults,
	}
	if s.Accesses > 0 {
		s.HitRatio = float64(s.Hits) / float64(s.Accesses)
	}

	return s
}

// ReplacementPolicy returns the kind of policy the engine evicts with.
func (c *Comp) ReplacementPolicy() replacement.Kind {
	return c.kind
}

// Log2PageSize returns the page size the engine translates with.
func (c *Comp) Log2PageSize() uint64 {
	return c.log2PageSize
}

// FrameTable renders the occupancy of every frame, in frame order.
func (c *Comp) FrameTable() []FrameDescriptor {
	descs := make([]FrameDescriptor, 0, c.memory.TotalFrames())

	for i := 0; i < c.memory.TotalFrames(); i++ {
		frame := vm.FrameID(i)
		info, allocated := c.memory.FrameInfo(frame)

		d := FrameDescriptor{Frame: frame, Free: !allocated}
		if allocated {
			d.Owner = info.Owner
			d.PageNum = info.PageNum
		}
		descs = append(descs, d)
	}

	return descs
}

// Reset prepares the engine for a fresh run: every frame free, the policy
// emptied, counters cleared, the registry forgotten. Processes register
// again on their first access.
func (c *Comp) Reset() {
	c.memory = physmem.New(c.memory.TotalFrames())
	c.policy = replacement.New(c.kind)
	c.processes = make(map[vm.PID]*proc.Process)
	c.hits = 0
	c.faults = 0
}
