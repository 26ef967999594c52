//go:build darwin

package hotkey

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static int isProcessTrusted(int prompt) {
	if (!prompt) {
		return AXIsProcessTrusted() ? 1 : 0;
	}
	const void* keys[] = { kAXTrustedCheckOptionPrompt };
	const void* values[] = { kCFBooleanTrue };
	CFDictionaryRef options = CFDictionaryCreate(
		kCFAllocatorDefault, keys, values, 1,
		&kCFCopyStringDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
	int trusted = AXIsProcessTrustedWithOptions(options) ? 1 : 0;
	CFRelease(options);
	return trusted;
}
*/
import "C"

// IsAccessibilityEnabled reports whether the process may observe system-wide
// key events. With prompt set, the system permission dialog is shown when
// access is missing.
func IsAccessibilityEnabled(prompt bool) bool {
	p := 0
	if prompt {
		p = 1
	}
	return C.isProcessTrusted(C.int(p)) != 0
}
