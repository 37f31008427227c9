//go:build !windows

package native

// LP64 targets: C unsigned long matches the Go uint64 width.
const nativeULongBits = 64
