package tray

import (
	"fmt"
	"log"
	"sync"

	"github.com/getlantern/systray"
)

// Config describes the tray entry for one application run.
type Config struct {
	Title   string
	Tooltip string
	// MenuNames lists the configured menus; each gets an "Open ..." entry.
	MenuNames []string
	// OnOpenMenu fires when an "Open ..." entry is clicked.
	OnOpenMenu func(name string)
	// OnReload fires when "Reload menus" is clicked.
	OnReload func()
	// OnExit fires when Quit is clicked or the tray shuts down.
	OnExit func()
}

// Icon is a running tray entry.
type Icon struct {
	cfg Config
}

var (
	mu          sync.Mutex
	ready       bool
	aboutHotkey string
	aboutExtra  string
	mAbout      *systray.MenuItem
)

// SetAboutHotkey records the active shortcut for the About entry.
func SetAboutHotkey(hk string) {
	mu.Lock()
	defer mu.Unlock()
	aboutHotkey = hk
	refreshAboutLocked()
}

// SetAboutExtra appends one extra line (resident port) to the About entry.
func SetAboutExtra(s string) {
	mu.Lock()
	defer mu.Unlock()
	aboutExtra = s
	refreshAboutLocked()
}

// UpdateTooltip changes the tray tooltip. A no-op before the tray is ready.
func UpdateTooltip(tt string) {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		return
	}
	systray.SetTooltip(tt)
}

func refreshAboutLocked() {
	if mAbout == nil {
		return
	}
	text := fmt.Sprintf("Hotkey: %s", aboutHotkey)
	if aboutExtra != "" {
		text += " | " + aboutExtra
	}
	mAbout.SetTitle(text)
}

// New creates a tray entry. Call Run from the main goroutine; some platforms
// require the tray loop to own it.
func New(cfg Config) (*Icon, error) {
	return &Icon{cfg: cfg}, nil
}

// Run starts the tray loop and blocks until Destroy or Quit.
func (t *Icon) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Destroy tears the tray entry down.
func (t *Icon) Destroy() {
	systray.Quit()
}

func (t *Icon) onReady() {
	systray.SetIcon(iconBytes())
	systray.SetTitle(t.cfg.Title)
	systray.SetTooltip(t.cfg.Tooltip)

	mu.Lock()
	mAbout = systray.AddMenuItem("Hotkey: ?", "Active shortcut and resident port")
	mAbout.Disable()
	refreshAboutLocked()
	mu.Unlock()

	systray.AddSeparator()
	openItems := make([]*systray.MenuItem, 0, len(t.cfg.MenuNames))
	for _, name := range t.cfg.MenuNames {
		item := systray.AddMenuItem("Open "+name, "Open the "+name+" menu at the cursor")
		openItems = append(openItems, item)
	}
	systray.AddSeparator()
	mReload := systray.AddMenuItem("Reload menus", "Re-read the menu configuration file")
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	for i, item := range openItems {
		name := t.cfg.MenuNames[i]
		item := item
		go func() {
			for range item.ClickedCh {
				log.Printf("tray: open %q clicked", name)
				if t.cfg.OnOpenMenu != nil {
					t.cfg.OnOpenMenu(name)
				}
			}
		}()
	}

	go func() {
		for range mReload.ClickedCh {
			log.Printf("tray: reload clicked")
			if t.cfg.OnReload != nil {
				t.cfg.OnReload()
			}
		}
	}()

	go func() {
		<-mQuit.ClickedCh
		systray.Quit()
	}()

	mu.Lock()
	ready = true
	mu.Unlock()
}

func (t *Icon) onExit() {
	mu.Lock()
	ready = false
	mAbout = nil
	mu.Unlock()
	if t.cfg.OnExit != nil {
		t.cfg.OnExit()
	}
}
