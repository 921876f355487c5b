package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultLog2PageSize is the default page size used across the simulator,
// as a power of two. 1 << 12 gives the classic 4 KiB page.
const DefaultLog2PageSize uint64 = 12

// DefaultPageSize is the default page size in bytes.
const DefaultPageSize uint64 = 1 << DefaultLog2PageSize

// PageNumOf returns the virtual page number that holds the address.
func PageNumOf(vAddr, log2PageSize uint64) uint64 {
	return vAddr >> log2PageSize
}

// OffsetOf returns the position of the address within its page.
func OffsetOf(vAddr, log2PageSize uint64) uint64 {
	return vAddr & ((1 << log2PageSize) - 1)
}

// PhysicalAddrOf combines a frame and an in-page offset into a physical
// address.
func PhysicalAddrOf(frame FrameID, offset, log2PageSize uint64) uint64 {
	return uint64(frame)<<log2PageSize | offset
}

// NumPagesFor returns how many pages are needed to hold an image of the
// given size, rounding up.
func NumPagesFor(sizeBytes, log2PageSize uint64) uint64 {
	pageSize := uint64(1) << log2PageSize
	return (sizeBytes + pageSize - 1) >> log2PageSize
}

// An AddressFormatError reports an address string that cannot be parsed.
// Nothing else happens to the simulation state when one is returned.
type AddressFormatError struct {
	Input string
}

func (e *AddressFormatError) Error() string {
	return fmt.Sprintf("malformed address %q", e.Input)
}

// ParseAddress parses a virtual address written in hexadecimal, with or
// without a 0x prefix.
func ParseAddress(s string) (uint64, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > 1 && (trimmed[:2] == "0x" || trimmed[:2] == "0X") {
		trimmed = trimmed[2:]
	}

	if trimmed == "" {
		return 0, &AddressFormatError{Input: s}
	}

	v, err := strconv.ParseUint(trimmed, 16, 64)
	if err != nil {
		return 0, &AddressFormatError{Input: s}
	}

	return v, nil
}

// FormatAddress renders an address the way traces print them, 0x followed
// by at least four upper-case hex digits.
func FormatAddress(addr uint64) string {
	return fmt.Sprintf("0x%04X", addr)
}
