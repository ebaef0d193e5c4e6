package singleinstance

// This file defines the API for single-instance ownership and show-menu
// delegation: a second invocation finds the resident process over TCP
// loopback and forwards its request instead of starting another hook.

import (
	"context"
)

// RequestKind discriminates client requests.
type RequestKind int

const (
	// KindShow asks the resident to open a menu by name (empty name means
	// the default menu).
	KindShow RequestKind = iota
	// KindList asks for the names of all configured menus.
	KindList
)

// Request is one parsed client request.
type Request struct {
	Kind     RequestKind
	MenuName string
}

// Server owns the TCP endpoint and answers delegated requests.
type Server interface {
	// Start binds the start port of the configured range. If occupied,
	// another resident instance exists and Start fails.
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Next returns the next accepted connection, or ctx error.
	Next(ctx context.Context) (Conn, error)
	// Close releases ownership and stops accepting clients.
	Close() error
}

// Conn is one client connection.
type Conn interface {
	// Request returns the parsed client request.
	Request() Request
	// RespondSuccess sends success with an optional text body (menu names
	// for list requests).
	RespondSuccess(text string) error
	// RespondError sends an error with a human-readable message.
	RespondError(msg string) error
	// Close closes the underlying connection.
	Close() error
}

// Client delegates an invocation to a resident server.
type Client interface {
	// TryShow scans the port range and forwards a show request. If no
	// resident is found, returns delegated=false, err=nil.
	TryShow(ctx context.Context, menuName string) (delegated bool, err error)
	// TryList forwards a list request and returns the resident's menu
	// names.
	TryList(ctx context.Context) (delegated bool, names []string, err error)
}

// NewServer returns the TCP implementation.
func NewServer() Server { return newTcpServer() }

// NewClient returns the TCP implementation.
func NewClient() Client { return newTcpClient() }
