package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"radial-menu/src/action"
	"radial-menu/src/config"
	"radial-menu/src/eventloop"
	"radial-menu/src/hotkey"
	"radial-menu/src/logutil"
	"radial-menu/src/messages"
	"radial-menu/src/overlay"
	"radial-menu/src/singleinstance"
	"radial-menu/src/tray"
)

func main() {
	// Ensure DPI awareness before querying any monitor metrics
	enableDPIAwareness()

	// The tray loop wants to own the main OS thread on some platforms
	runtime.LockOSThread()

	// Load .env early so RADIAL_MENU_PORT_* are available for pre-flight
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logutil.Setup(cfg.EnableFileLogging)
	logMonitorConfiguration()

	// ---------- SINGLE-INSTANCE PRE-FLIGHT ----------
	startPort, _ := singleinstance.PortRange()
	if err := preflightClaim(startPort); err != nil {
		log.Printf("Pre-flight: port %d busy, resident already exists", startPort)
		fmt.Printf("radial-menu is already running on port %d\n", startPort)
		os.Exit(1)
	}
	log.Printf("Pre-flight: port %d free, we are the resident", startPort)
	// ------------------------------------------------

	doc, err := config.LoadMenus(cfg.MenuFile)
	if err != nil {
		log.Fatalf("Failed to load menus from %s: %v", cfg.MenuFile, err)
	}
	if err := config.ValidateDocument(doc); err != nil {
		log.Fatalf("Menu configuration invalid: %v", err)
	}
	log.Printf("Loaded %d menus from %s", len(doc.Menus), cfg.MenuFile)
	log.Printf("Hotkey: %s", cfg.Hotkey)

	tray.SetAboutHotkey(cfg.Hotkey)

	runner := action.NewExecutor(nil)
	loop := eventloop.New(cfg, doc, overlay.NewLogRenderer(), runner, nil)
	loop.SetDefaultTooltip(tooltipFor(cfg.Hotkey))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Menu file edits land as ConfigChanged messages in the loop.
	if cfg.MenuFile != "" {
		if err := config.Watch(ctx, []string{cfg.MenuFile}, func(path string) {
			loop.Post(messages.ConfigChanged{Path: path})
		}); err != nil {
			log.Printf("Menu file watching disabled: %v", err)
		}
	}

	hotkey.Listen(loop.Bindings(), loop)
	defer hotkey.Stop()

	trayIcon, _ := tray.New(tray.Config{
		Title:     "Radial Menu",
		Tooltip:   tooltipFor(cfg.Hotkey),
		MenuNames: menuNames(doc),
		OnOpenMenu: func(name string) {
			reply := make(chan error, 1)
			loop.Post(messages.ShowMenuRequested{Name: name, Reply: reply})
			select {
			case err := <-reply:
				if err != nil {
					log.Printf("tray: cannot open %q: %v", name, err)
				}
			case <-time.After(2 * time.Second):
				log.Printf("tray: no reply opening %q", name)
			}
		},
		OnReload: func() {
			loop.Post(messages.ConfigChanged{Path: cfg.MenuFile})
		},
		OnExit: func() {
			loop.Post(messages.QuitRequested{})
			cancel()
		},
	})
	go trayIcon.Run()
	defer trayIcon.Destroy()

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("event loop stopped: %v", err)
	}
}

// preflightClaim briefly binds the resident port to prove no other instance
// owns it, then releases it for the event loop server.
func preflightClaim(port int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return err
	}
	return lis.Close()
}

func tooltipFor(hk string) string {
	return fmt.Sprintf("Radial Menu - Press %s to open", hk)
}

func menuNames(doc *config.MenuDocument) []string {
	names := make([]string, 0, len(doc.Menus))
	for _, m := range doc.Menus {
		names = append(names, m.Name())
	}
	return names
}
