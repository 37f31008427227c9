package native

import "fmt"

// fitsULong reports whether n is representable in an unsigned integer
// of the given bit width. The engine's length parameters are C unsigned
// long, which is 32 bits wide on Windows and 64 bits wide on the Unix
// targets we build for; narrowing a Go length without this check would
// silently truncate.
func fitsULong(n uint64, bits uint) bool {
	if bits >= 64 {
		return true
	}
	return n <= (uint64(1)<<bits)-1
}

// checkNativeLen validates that a buffer length can cross the boundary
// on the current target.
func checkNativeLen(n int) error {
	if n < 0 {
		return fmt.Errorf("native: negative length %d", n)
	}
	if !fitsULong(uint64(n), nativeULongBits) {
		return fmt.Errorf("native: length %d exceeds %d-bit unsigned long", n, nativeULongBits)
	}
	return nil
}
