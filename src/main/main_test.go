package main

import (
	"net"
	"testing"

	"radial-menu/src/config"
	"radial-menu/src/menu"
)

func TestMenuNames(t *testing.T) {
	doc := &config.MenuDocument{
		Menus: []*menu.Menu{
			{Root: &menu.Item{Type: menu.TypeSubmenu, Name: "Main"}},
			{Root: &menu.Item{Type: menu.TypeSubmenu, Name: "Dev"}},
		},
	}
	got := menuNames(doc)
	if len(got) != 2 || got[0] != "Main" || got[1] != "Dev" {
		t.Fatalf("Expected [Main Dev], got %v", got)
	}
}

func TestTooltipFor(t *testing.T) {
	if got := tooltipFor("Ctrl+Alt+Space"); got != "Radial Menu - Press Ctrl+Alt+Space to open" {
		t.Fatalf("unexpected tooltip: %q", got)
	}
}

func TestPreflightClaimFreePort(t *testing.T) {
	// Grab an ephemeral port, release it, and expect the claim to succeed.
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("loopback unavailable: %v", err)
	}
	port := lis.Addr().(*net.TCPAddr).Port
	lis.Close()

	if err := preflightClaim(port); err != nil {
		t.Fatalf("Expected free port claim to succeed: %v", err)
	}
}

func TestPreflightClaimBusyPort(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("loopback unavailable: %v", err)
	}
	defer lis.Close()
	port := lis.Addr().(*net.TCPAddr).Port

	if err := preflightClaim(port); err == nil {
		t.Fatalf("Expected busy port claim to fail")
	}
}
