//go:build !darwin

package hotkey

// IsAccessibilityEnabled reports whether the process may observe system-wide
// key events. Non-darwin platforms have no preflight; the hook itself fails
// if the capability is missing.
func IsAccessibilityEnabled(_ bool) bool {
	return true
}
