//go:build windows

package input

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows"
)

// Windows implementation of key injection using user32 keybd_event

var (
	user32            = windows.NewLazySystemDLL("user32.dll")
	procKeybdEvent    = user32.NewProc("keybd_event")
	procMapVirtualKey = user32.NewProc("MapVirtualKeyW")
)

const (
	KEYEVENTF_EXTENDEDKEY = 0x0001
	KEYEVENTF_KEYUP       = 0x0002
	MAPVK_VK_TO_VSC       = 0
)

// Injector represents a Windows key injector
type Injector struct{}

// NewInjector creates a new key injector for Windows
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
	if err := procKeybdEvent.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrInjectionFailed, err)
	}

	scan, _, _ := procMapVirtualKey.Call(uintptr(k.VK), MAPVK_VK_TO_VSC)

	var flags uintptr
	if k.Extended {
		flags |= KEYEVENTF_EXTENDEDKEY
	}

	// keybd_event has no return value; a blocked injection (UIPI) is silent
	procKeybdEvent.Call(uintptr(k.VK), scan&0xFF, flags, 0)
	procKeybdEvent.Call(uintptr(k.VK), scan&0xFF, flags|KEYEVENTF_KEYUP, 0)
	return nil
}
