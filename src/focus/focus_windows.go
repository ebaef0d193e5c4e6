//go:build windows

package focus

import (
	"log"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"radial-menu/src/geometry"
)

var (
	user32                     = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow    = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW         = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcess = user32.NewProc("GetWindowThreadProcessId")
	procGetCursorPos           = user32.NewProc("GetCursorPos")
)

type windowsProvider struct{}

func newPlatformProvider() Provider { return windowsProvider{} }

type point struct {
	x int32
	y int32
}

func (windowsProvider) Current() Info {
	var info Info

	var pt point
	if r, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); r != 0 {
		info.Cursor = geometry.Vec2{X: float64(pt.x), Y: float64(pt.y)}
		info.CursorKnown = true
	}

	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return info
	}

	var title [512]uint16
	if n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&title[0])), uintptr(len(title))); n > 0 {
		info.WindowName = windows.UTF16ToString(title[:n])
	}

	var pid uint32
	procGetWindowThreadProcess.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid != 0 {
		info.AppName = processName(pid)
	}
	return info
}

// processName resolves a pid to its executable base name without extension.
func processName(pid uint32) string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		log.Printf("focus: cannot open process %d: %v", pid, err)
		return ""
	}
	defer windows.CloseHandle(h)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	name := filepath.Base(windows.UTF16ToString(buf[:size]))
	return strings.TrimSuffix(name, filepath.Ext(name))
}
