package sim

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs. Generators are injected into the factories
// that need them, so a run owns its ID sequence and stays reproducible.
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

// NewSequentialIDGenerator returns a generator that yields "0", "1", "2",
// and so on. The sequence restarts with every generator, which keeps IDs
// deterministic within a run.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1) - 1
	return strconv.FormatUint(idNumber, 10)
}

// NewXIDGenerator returns a generator that yields globally unique IDs. The
// IDs generated are not deterministic across runs.
func NewXIDGenerator() IDGenerator {
	return xidGenerator{}
}

type xidGenerator struct{}

func (g xidGenerator) Generate() string {
	return xid.New().String()
}
