//go:build !debug_carve

package carve

import "unsafe"

const (
	// DebugMargin is the number of bytes of guard data that pools place after each
	// allocation carved from their block
	DebugMargin int = 0
)

// ValidateMagicValue verifies that the easy-to-identify marker written by WriteMagicValue is still present.
// It returns true if the value is still present and false otherwise.
// This method no-ops unless the debug_carve build tag is present.
func ValidateMagicValue(data unsafe.Pointer, offset int) bool {
	return true
}

// WriteMagicValue writes an easy-to-identify marker across DebugMargin bytes at the provided pointer and offset.
// This method no-ops unless the debug_carve build tag is present.
func WriteMagicValue(data unsafe.Pointer, offset int) {
}

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_carve build tag is present
func DebugValidate(validatable Validatable) {
}

// DebugCheckPow2 will verify that the numerical value passed in is a non-zero power of two, and panics
// if it is not. This method no-ops unless the debug_carve build tag is present.
func DebugCheckPow2[T Number](value T, name string) {
}

// DebugAssert panics with the provided message if condition is false. This method no-ops unless the
// debug_carve build tag is present.
func DebugAssert(condition bool, message string) {
}
