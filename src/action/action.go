package action

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"

	"golang.design/x/clipboard"

	"radial-menu/src/menu"
)

// Injector injects synthetic key events for hotkey and macro items. Key
// injection is host-specific; the default executor only logs these payloads
// until an injector is plugged in.
type Injector interface {
	PressHotkey(combo string) error
	PlayMacro(events []menu.MacroEvent) error
}

// Executor runs the payload of a selected leaf item. It is safe to call from
// worker goroutines; each Execute is independent.
type Executor struct {
	injector       Injector
	clipboardReady bool
}

// NewExecutor creates an executor. injector may be nil.
func NewExecutor(injector Injector) *Executor {
	e := &Executor{injector: injector}
	if err := clipboard.Init(); err != nil {
		log.Printf("action: clipboard unavailable: %v", err)
	} else {
		e.clipboardReady = true
	}
	return e
}

// Execute dispatches on the item type. The payload shape was validated at
// config load time.
func (e *Executor) Execute(item *menu.Item) error {
	switch item.Type {
	case menu.TypeCommand:
		return e.runCommand(item.Data.Command, item.Data.Detached)
	case menu.TypeURI:
		return openURI(item.Data.URI)
	case menu.TypeText:
		return e.copyText(item.Data.Text)
	case menu.TypeHotkey:
		if e.injector == nil {
			log.Printf("action: no injector, dropping hotkey %q", item.Data.Hotkey)
			return nil
		}
		return e.injector.PressHotkey(item.Data.Hotkey)
	case menu.TypeMacro:
		if e.injector == nil {
			log.Printf("action: no injector, dropping macro with %d events", len(item.Data.Macro))
			return nil
		}
		return e.injector.PlayMacro(item.Data.Macro)
	default:
		return fmt.Errorf("cannot execute item type %q", item.Type)
	}
}

func (e *Executor) runCommand(command string, detached bool) error {
	argv := shellArgs(command)
	cmd := exec.Command(argv[0], argv[1:]...)
	if detached {
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start command: %w", err)
		}
		// Reap in the background so the child never zombies.
		go func() { _ = cmd.Wait() }()
		return nil
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run command: %w (output: %s)", err, out)
	}
	return nil
}

func (e *Executor) copyText(text string) error {
	if !e.clipboardReady {
		return fmt.Errorf("clipboard unavailable")
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func openURI(uri string) error {
	argv := openerArgs(uri)
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open uri: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// shellArgs wraps a command line in the platform shell.
func shellArgs(command string) []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C", command}
	}
	return []string{"/bin/sh", "-c", command}
}

// openerArgs picks the platform URI opener.
func openerArgs(uri string) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", uri}
	case "darwin":
		return []string{"open", uri}
	default:
		return []string{"xdg-open", uri}
	}
}
