//go:build darwin

package paste

/*
#cgo LDFLAGS: -framework Carbon -framework ApplicationServices
#include <Carbon/Carbon.h>
#include <ApplicationServices/ApplicationServices.h>

#define QWERTY_V_KEYCODE 9

// pasteKeycode resolves the keycode for 'v' in the current keyboard layout
// so Cmd+V works on Dvorak, Colemak, Cyrillic and friends. Falls back to
// the QWERTY code when the layout cannot be inspected.
static CGKeyCode pasteKeycode(void) {
	static CGKeyCode cached = 0xFFFF;
	if (cached != 0xFFFF) {
		return cached;
	}

	CGKeyCode resolved = QWERTY_V_KEYCODE;
	TISInputSourceRef source = TISCopyCurrentASCIICapableKeyboardLayoutInputSource();
	if (source != NULL) {
		CFDataRef layoutData = (CFDataRef)TISGetInputSourceProperty(source, kTISPropertyUnicodeKeyLayoutData);
		if (layoutData != NULL) {
			const UCKeyboardLayout* layout = (const UCKeyboardLayout*)CFDataGetBytePtr(layoutData);
			UInt32 kbdType = LMGetKbdType();
			for (CGKeyCode code = 0; code < 128; code++) {
				UInt32 deadKeys = 0;
				UniChar chars[4];
				UniCharCount length = 0;
				OSStatus status = UCKeyTranslate(layout, code, kUCKeyActionDisplay, 0, kbdType,
					kUCKeyTranslateNoDeadKeysBit, &deadKeys, 4, &length, chars);
				if (status == noErr && length == 1 && chars[0] == 'v') {
					resolved = code;
					break;
				}
			}
		}
		CFRelease(source);
	}

	cached = resolved;
	return cached;
}

static int postPasteKeystroke(void) {
	CGEventSourceRef source = CGEventSourceCreate(kCGEventSourceStateHIDSystemState);
	if (source == NULL) {
		return -1;
	}

	CGKeyCode v = pasteKeycode();
	CGEventRef down = CGEventCreateKeyboardEvent(source, v, true);
	CGEventRef up = CGEventCreateKeyboardEvent(source, v, false);
	if (down == NULL || up == NULL) {
		if (down != NULL) CFRelease(down);
		if (up != NULL) CFRelease(up);
		CFRelease(source);
		return -1;
	}

	CGEventSetFlags(down, kCGEventFlagMaskCommand);
	CGEventSetFlags(up, kCGEventFlagMaskCommand);
	CGEventPost(kCGHIDEventTap, down);
	CGEventPost(kCGHIDEventTap, up);

	CFRelease(down);
	CFRelease(up);
	CFRelease(source);
	return 0;
}
*/
import "C"

import "errors"

func sendPasteKeystroke() error {
	if C.postPasteKeystroke() != 0 {
		return errors.New("failed to post Cmd+V event")
	}
	return nil
}
