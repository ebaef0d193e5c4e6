package eventloop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"radial-menu/src/config"
	"radial-menu/src/display"
	"radial-menu/src/focus"
	"radial-menu/src/geometry"
	"radial-menu/src/hotkey"
	"radial-menu/src/menu"
	"radial-menu/src/messages"
	"radial-menu/src/overlay"
	"radial-menu/src/selector"
	"radial-menu/src/session"
	"radial-menu/src/singleinstance"
	"radial-menu/src/tray"
	"radial-menu/src/worker"
)

// defaultBindingID marks the fallback shortcut from the settings file, which
// opens the first configured menu.
const defaultBindingID = "__default__"

// ActionRunner executes a selected leaf item. Satisfied by action.Executor.
type ActionRunner interface {
	Execute(item *menu.Item) error
}

// Loop is the single-threaded coordinator. All state transitions happen on
// the Run goroutine; hook callbacks and IPC connections post into it.
type Loop struct {
	cfg      *config.Config
	doc      *config.MenuDocument
	renderer overlay.Renderer
	runner   ActionRunner
	focus    focus.Provider
	pool     *worker.Pool
	srv      singleinstance.Server

	msgs   chan messages.Message
	input  chan inputEvent
	events chan messages.Message

	sess           *session.Session
	hasModifier    map[string]bool
	defaultTooltip string
}

type inputKind int

const (
	inputMove inputKind = iota
	inputDown
	inputUp
	inputModifierDown
	inputModifierUp
	inputEscape
)

type inputEvent struct {
	kind        inputKind
	pos         geometry.Vec2
	anyModifier bool
	anyButton   bool
	anyHeld     bool
}

// New creates the loop. The renderer and runner are required; a nil focus
// provider falls back to the platform one.
func New(cfg *config.Config, doc *config.MenuDocument, renderer overlay.Renderer, runner ActionRunner, prov focus.Provider) *Loop {
	if prov == nil {
		prov = focus.NewProvider()
	}
	return &Loop{
		cfg:            cfg,
		doc:            doc,
		renderer:       renderer,
		runner:         runner,
		focus:          prov,
		pool:           worker.New(0),
		msgs:           make(chan messages.Message, 16),
		input:          make(chan inputEvent, 64),
		events:         make(chan messages.Message, 64),
		hasModifier:    make(map[string]bool),
		defaultTooltip: "Radial Menu",
	}
}

// SetDefaultTooltip optionally sets the tray tooltip base text.
func (l *Loop) SetDefaultTooltip(tt string) { l.defaultTooltip = tt }

// Post delivers a message to the loop from any goroutine.
func (l *Loop) Post(msg messages.Message) {
	select {
	case l.msgs <- msg:
	default:
		log.Printf("eventloop: dropped %s (queue full)", msg.Type())
	}
}

// Events exposes the lifecycle feed (menu opened, hover, selection, closed,
// action results). Consumers that fall behind lose messages rather than
// blocking the loop.
func (l *Loop) Events() <-chan messages.Message { return l.events }

func (l *Loop) emit(msg messages.Message) {
	select {
	case l.events <- msg:
	default:
	}
}

// Bindings compiles the shortcut set for hotkey.Listen: one binding per menu
// with a shortcut, plus the settings-file fallback combo when no menu claims
// it. The hook registers bindings once per process, so shortcut edits in a
// reloaded menu file need a restart.
func (l *Loop) Bindings() []hotkey.Binding {
	var out []hotkey.Binding
	claimed := make(map[string]bool)
	for _, m := range l.doc.Menus {
		if m.Shortcut == "" {
			continue
		}
		id := m.ShortcutID
		if id == "" {
			id = m.Shortcut
		}
		out = append(out, hotkey.Binding{ID: id, Combo: m.Shortcut})
		l.hasModifier[id] = hotkey.ComboHasModifier(m.Shortcut)
		claimed[m.Shortcut] = true
	}
	if l.cfg.Hotkey != "" && !claimed[l.cfg.Hotkey] && len(l.doc.Menus) > 0 {
		out = append(out, hotkey.Binding{ID: defaultBindingID, Combo: l.cfg.Hotkey})
		l.hasModifier[defaultBindingID] = hotkey.ComboHasModifier(l.cfg.Hotkey)
	}
	return out
}

// Run starts the singleinstance server and processes messages, input events
// and delegated requests until ctx is cancelled or quit is requested.
func (l *Loop) Run(ctx context.Context) error {
	l.srv = singleinstance.NewServer()
	if err := l.srv.Start(ctx); err != nil {
		return err
	}
	if p := l.srv.Port(); p > 0 {
		log.Printf("Resident listening on 127.0.0.1:%d", p)
		tray.SetAboutExtra(fmt.Sprintf("Resident TCP port: %d", p))
	}
	defer l.srv.Close()
	defer l.pool.Close()

	conns := make(chan singleinstance.Conn, 4)
	go func() {
		for {
			conn, err := l.srv.Next(ctx)
			if err != nil {
				close(conns)
				return
			}
			conns <- conn
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-l.msgs:
			if quit := l.handleMessage(msg); quit {
				return nil
			}
		case ev := <-l.input:
			l.handleInput(ev)
		case conn, ok := <-conns:
			if !ok {
				return nil
			}
			l.handleConn(conn)
		}
	}
}

func (l *Loop) handleMessage(msg messages.Message) (quit bool) {
	switch m := msg.(type) {
	case messages.ShowMenuRequested:
		err := l.showMenu(selector.Request{Name: m.Name, Trigger: m.Trigger}, m.ModifierHeld)
		if err != nil {
			log.Printf("eventloop: show request failed: %v", err)
		}
		if m.Reply != nil {
			m.Reply <- err
		}
	case messages.ConfigChanged:
		l.reloadMenus(m.Path)
	case messages.ActionComplete:
		if m.Err != nil {
			log.Printf("eventloop: action %q failed: %v", m.ItemName, m.Err)
		} else {
			log.Printf("eventloop: action %q done", m.ItemName)
		}
		l.emit(m)
	case messages.QuitRequested:
		log.Printf("eventloop: quit requested")
		return true
	default:
		log.Printf("eventloop: unhandled message %s", msg.Type())
	}
	return false
}

func (l *Loop) handleInput(ev inputEvent) {
	if l.sess == nil {
		return
	}
	switch ev.kind {
	case inputMove:
		l.sess.HandleMotion(ev.pos, ev.anyModifier, ev.anyButton)
	case inputDown:
		l.sess.HandlePointerDown(ev.pos, ev.anyModifier)
	case inputUp:
		l.sess.HandlePointerUp()
	case inputModifierDown:
		l.sess.HandleKeyDown()
	case inputModifierUp:
		l.sess.HandleKeyUp(ev.anyHeld)
	case inputEscape:
		l.sess.Cancel()
	}
}

func (l *Loop) handleConn(conn singleinstance.Conn) {
	defer conn.Close()
	req := conn.Request()
	switch req.Kind {
	case singleinstance.KindList:
		var b strings.Builder
		for _, m := range l.doc.Menus {
			b.WriteString(m.Name())
			b.WriteString("\n")
		}
		if err := conn.RespondSuccess(b.String()); err != nil {
			log.Printf("eventloop: list response failed: %v", err)
		}
	case singleinstance.KindShow:
		name := req.MenuName
		if name == "" && len(l.doc.Menus) > 0 {
			name = l.doc.Menus[0].Name()
		}
		if err := l.showMenu(selector.Request{Name: name}, false); err != nil {
			_ = conn.RespondError(err.Error())
			return
		}
		if err := conn.RespondSuccess(""); err != nil {
			log.Printf("eventloop: show response failed: %v", err)
		}
	}
}

// showMenu resolves the request against the configured menus and opens a
// session at the placed center. Only one session runs at a time.
func (l *Loop) showMenu(req selector.Request, modifierHeld bool) error {
	if l.sess != nil {
		return errors.New("a menu is already open")
	}
	if req.Trigger == defaultBindingID {
		if len(l.doc.Menus) == 0 {
			return selector.ErrNoMenu
		}
		req = selector.Request{Name: l.doc.Menus[0].Name()}
	}

	info := l.focus.Current()
	m, err := selector.Select(l.doc.Menus, req, selector.Context{
		AppName:    info.AppName,
		WindowName: info.WindowName,
		Cursor:     info.Cursor,
	})
	if err != nil {
		return err
	}

	center := display.PlaceMenu(info.Cursor, m.Centered || !info.CursorKnown, l.cfg.ChildRadius)
	l.sess = session.New(l, session.Options{
		DeadZoneRadius: l.cfg.DeadZoneRadius,
		ChildRadius:    l.cfg.ChildRadius,
		DeferTurbo:     modifierHeld,
	})
	l.sess.Open(m, center)
	l.renderer.OnOpen(m.Name(), center)
	tray.UpdateTooltip(l.defaultTooltip + ": menu open")
	l.emit(messages.MenuOpened{MenuName: m.Name(), Center: center})
	return nil
}

// reloadMenus swaps in the changed menu document, keeping the previous one
// when the new file does not validate.
func (l *Loop) reloadMenus(path string) {
	doc, err := config.LoadMenus(l.cfg.MenuFile)
	if err != nil {
		log.Printf("eventloop: reload of %s failed, keeping previous menus: %v", path, err)
		return
	}
	if err := config.ValidateDocument(doc); err != nil {
		log.Printf("eventloop: reloaded menus invalid, keeping previous: %v", err)
		return
	}
	l.doc = doc
	log.Printf("eventloop: menus reloaded from %s (%d menus)", path, len(doc.Menus))
	l.emit(messages.ConfigChanged{Path: path})
}

// hotkey.Events implementation. Callbacks run on the hook goroutine and only
// post; the loop goroutine does the work.

func (l *Loop) OnShortcut(id string) {
	l.Post(messages.ShowMenuRequested{Trigger: id, ModifierHeld: l.hasModifier[id]})
}

func (l *Loop) OnPointerMove(x, y float64, anyModifier, anyButton bool) {
	l.postInput(inputEvent{kind: inputMove, pos: geometry.Vec2{X: x, Y: y}, anyModifier: anyModifier, anyButton: anyButton})
}

func (l *Loop) OnPointerDown(x, y float64, anyModifier bool) {
	l.postInput(inputEvent{kind: inputDown, pos: geometry.Vec2{X: x, Y: y}, anyModifier: anyModifier})
}

func (l *Loop) OnPointerUp() {
	l.postInput(inputEvent{kind: inputUp})
}

func (l *Loop) OnModifierDown() {
	l.postInput(inputEvent{kind: inputModifierDown})
}

func (l *Loop) OnModifierUp(anyHeld bool) {
	l.postInput(inputEvent{kind: inputModifierUp, anyHeld: anyHeld})
}

func (l *Loop) OnEscape() {
	l.postInput(inputEvent{kind: inputEscape})
}

func (l *Loop) postInput(ev inputEvent) {
	select {
	case l.input <- ev:
	default:
		// motion samples may be dropped under load, button and key
		// transitions rarely are (64-slot queue)
	}
}

// session.Listener implementation. Calls arrive synchronously from session
// handlers, which only run on the loop goroutine.

func (l *Loop) OnMotion(absolute geometry.Vec2, dragging bool) {
	l.renderer.OnMotion(absolute, dragging)
}

func (l *Loop) OnHoverChanged(path []*menu.Item, hovered *menu.Item) {
	l.renderer.OnHoverChanged(path, hovered)
	l.emit(messages.HoverChanged{Path: path, Hovered: hovered})
}

func (l *Loop) OnSubmenuOpened(path []*menu.Item, center geometry.Vec2) {
	l.renderer.OnSubmenuOpened(path, center)
}

func (l *Loop) OnSelect(item *menu.Item, path []*menu.Item) {
	l.renderer.OnSelect(item, path)
	l.emit(messages.SelectionMade{Item: item, Path: path})
	submitted := l.pool.Submit(func() error {
		return l.runner.Execute(item)
	}, func(err error) {
		l.Post(messages.ActionComplete{ItemName: item.Name, Err: err})
	})
	if !submitted {
		log.Printf("eventloop: action %q dropped, previous action still queued", item.Name)
	}
}

func (l *Loop) OnClosed(cancelled bool) {
	l.renderer.OnClosed(cancelled)
	l.sess = nil
	tray.UpdateTooltip(l.defaultTooltip)
	l.emit(messages.MenuClosed{Cancelled: cancelled})
}
