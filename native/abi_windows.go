//go:build windows

package native

// On Windows, C unsigned long is 32 bits regardless of architecture.
const nativeULongBits = 32
