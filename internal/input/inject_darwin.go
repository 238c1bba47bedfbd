//go:build darwin

package input

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices -framework AppKit

#include <stdbool.h>
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>
#import <AppKit/AppKit.h>

// Check if we have accessibility permissions
static bool hasAccessibilityPermissions() {
    return AXIsProcessTrusted();
}

// Press and release a regular key
static bool pressKey(CGKeyCode keyCode) {
    CGEventRef down = CGEventCreateKeyboardEvent(NULL, keyCode, true);
    if (down == NULL) {
        return false;
    }
    CGEventRef up = CGEventCreateKeyboardEvent(NULL, keyCode, false);
    if (up == NULL) {
        CFRelease(down);
        return false;
    }
    CGEventPost(kCGHIDEventTap, down);
    CGEventPost(kCGHIDEventTap, up);
    CFRelease(down);
    CFRelease(up);
    return true;
}

// Media keys are NX_SYSDEFINED events (subtype 8), not CGKeyCodes
static bool postMediaEvent(int keyType, bool down) {
    NSInteger flags = down ? 0xa00 : 0xb00;
    NSInteger data1 = (keyType << 16) | ((down ? 0xa : 0xb) << 8);
    NSEvent *ev = [NSEvent otherEventWithType:NSEventTypeSystemDefined
                                     location:NSZeroPoint
                                modifierFlags:flags
                                    timestamp:0
                                 windowNumber:0
                                      context:nil
                                      subtype:8
                                        data1:data1
                                        data2:-1];
    if (ev == nil) {
        return false;
    }
    CGEventPost(kCGHIDEventTap, [ev CGEvent]);
    return true;
}

static bool pressMediaKey(int keyType) {
    bool ok;
    @autoreleasepool {
        ok = postMediaEvent(keyType, true) && postMediaEvent(keyType, false);
    }
    return ok;
}
*/
import "C"
import (
	"context"
	"fmt"
)

// macOS implementation of key injection using CoreGraphics

// Windows VK code to macOS CGKeyCode mapping
// Reference: https://docs.microsoft.com/en-us/windows/win32/inputdev/virtual-key-codes
// Reference: https://developer.apple.com/documentation/coregraphics/cgkeycode
var windowsToMacKeyMap = map[uint16]uint16{
	// Letters A-Z (Windows VK_A = 0x41, macOS kVK_ANSI_A = 0x00)
	0x41: 0x00, 0x42: 0x0B, 0x43: 0x08, 0x44: 0x02, 0x45: 0x0E, 0x46: 0x03,
	0x47: 0x05, 0x48: 0x04, 0x49: 0x22, 0x4A: 0x26, 0x4B: 0x28, 0x4C: 0x25,
	0x4D: 0x2E, 0x4E: 0x2D, 0x4F: 0x1F, 0x50: 0x23, 0x51: 0x0C, 0x52: 0x0F,
	0x53: 0x01, 0x54: 0x11, 0x55: 0x20, 0x56: 0x09, 0x57: 0x0D, 0x58: 0x07,
	0x59: 0x10, 0x5A: 0x06,

	// Numbers 0-9 (Windows VK_0 = 0x30, macOS kVK_ANSI_0 = 0x1D)
	0x30: 0x1D, 0x31: 0x12, 0x32: 0x13, 0x33: 0x14, 0x34: 0x15,
	0x35: 0x17, 0x36: 0x16, 0x37: 0x1A, 0x38: 0x1C, 0x39: 0x19,

	// Function keys (Windows VK_F1 = 0x70, macOS kVK_F1 = 0x7A)
	0x70: 0x7A, 0x71: 0x78, 0x72: 0x63, 0x73: 0x76, 0x74: 0x60, 0x75: 0x61,
	0x76: 0x62, 0x77: 0x64, 0x78: 0x65, 0x79: 0x6D, 0x7A: 0x67, 0x7B: 0x6F,

	vkBack:   0x33, // Backspace -> Delete
	vkTab:    0x30,
	vkReturn: 0x24,
	vkEscape: 0x35,
	vkSpace:  0x31,
	vkLeft:   0x7B,
	vkUp:     0x7E,
	vkRight:  0x7C,
	vkDown:   0x7D,
	vkPrior:  0x74,
	vkNext:   0x79,
	vkEnd:    0x77,
	vkHome:   0x73,
	vkInsert: 0x72, // Insert -> Help
	vkDelete: 0x75, // Delete -> Forward Delete
}

// NX_KEYTYPE_* values from IOKit/hidsystem/ev_keymap.h.
// There is no stop key on macOS.
var windowsToMacMediaMap = map[uint16]int{
	vkVolumeUp:       0,  // NX_KEYTYPE_SOUND_UP
	vkVolumeDown:     1,  // NX_KEYTYPE_SOUND_DOWN
	vkVolumeMute:     7,  // NX_KEYTYPE_MUTE
	vkMediaPlayPause: 16, // NX_KEYTYPE_PLAY
	vkMediaNextTrack: 17, // NX_KEYTYPE_NEXT
	vkMediaPrevTrack: 18, // NX_KEYTYPE_PREVIOUS
}

// Injector represents a macOS key injector
type Injector struct{}

// NewInjector creates a new key injector for macOS
func NewInjector() *Injector {
	return &Injector{}
}

// Inject presses and releases the key named by action
func (i *Injector) Inject(ctx context.Context, action string) error {
	k, err := resolve(action)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !bool(C.hasAccessibilityPermissions()) {
		return fmt.Errorf("%w: grant Accessibility access in System Settings > Privacy & Security", ErrPermissionDenied)
	}

	if k.Media {
		keyType, ok := windowsToMacMediaMap[k.VK]
		if !ok {
			return fmt.Errorf("%w: %q has no macOS equivalent", ErrUnknownKey, k.Name)
		}
		if !bool(C.pressMediaKey(C.int(keyType))) {
			return fmt.Errorf("%w: could not post media event for %q", ErrInjectionFailed, k.Name)
		}
		return nil
	}

	macKeyCode, ok := windowsToMacKeyMap[k.VK]
	if !ok {
		return fmt.Errorf("%w: %q has no macOS key code", ErrUnknownKey, k.Name)
	}
	if !bool(C.pressKey(C.CGKeyCode(macKeyCode))) {
		return fmt.Errorf("%w: could not create key event for %q", ErrInjectionFailed, k.Name)
	}
	return nil
}
