package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckIndex reports an error when idx does not address an element of a
// table holding length entries.
func CheckIndex(idx uint32, length int) error {
	if uint64(idx) >= uint64(length) {
		return fmt.Errorf("bounds: index=%d >= len=%d", idx, length)
	}
	return nil
}

// CheckRange validates that the run [begin, begin+count) lies within a table
// holding length entries. Returns the end index if valid, or an error
// describing the specific failure (overflow or out of bounds).
func CheckRange(length int, begin uint32, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	end, ok := AddOverflowSafe(int(begin), count)
	if !ok {
		return 0, fmt.Errorf("overflow: begin=%d + count=%d", begin, count)
	}
	if end > length {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, length)
	}
	return end, nil
}
