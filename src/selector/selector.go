package selector

import (
	"errors"
	"log"
	"regexp"
	"strings"

	"radial-menu/src/geometry"
	"radial-menu/src/menu"
)

// ErrNoMenu is returned when no configured menu survives a show request.
// It is a normal outcome, not a fault: the caller simply opens nothing.
var ErrNoMenu = errors.New("no menu matches the request")

// Request identifies which menu a show request asks for. Either Name or
// Trigger must be set; Name wins when both are present.
type Request struct {
	// Name selects a menu by its display name.
	Name string
	// Trigger selects by shortcut string or shortcut ID.
	Trigger string
}

// Context is the invocation environment a show request arrives in.
type Context struct {
	AppName    string
	WindowName string
	Cursor     geometry.Vec2
}

// Select picks the single best-matching menu for the request, or ErrNoMenu.
// Among trigger candidates, menus whose present condition fields all match
// compete on specificity (count of matching fields); ties go to the earliest
// declared menu.
func Select(menus []*menu.Menu, req Request, ctx Context) (*menu.Menu, error) {
	var best *menu.Menu
	bestScore := -1

	for _, m := range menus {
		if !triggerMatches(m, req) {
			continue
		}
		score, ok := conditionScore(m.Conditions, ctx)
		if !ok {
			continue
		}
		if score > bestScore {
			best = m
			bestScore = score
		}
	}

	if best == nil {
		log.Printf("selector: no menu for name=%q trigger=%q app=%q", req.Name, req.Trigger, ctx.AppName)
		return nil, ErrNoMenu
	}
	return best, nil
}

func triggerMatches(m *menu.Menu, req Request) bool {
	if req.Name != "" {
		return m.Name() == req.Name
	}
	if req.Trigger != "" {
		return m.Shortcut == req.Trigger || m.ShortcutID == req.Trigger
	}
	return false
}

// conditionScore returns how many condition fields match, and false if any
// present field does not match (conditions are conjunctive).
func conditionScore(c *menu.Conditions, ctx Context) (int, bool) {
	if c == nil {
		return 0, true
	}
	score := 0
	if c.AppName != "" {
		if !nameMatches(c.AppName, ctx.AppName) {
			return 0, false
		}
		score++
	}
	if c.WindowName != "" {
		if !nameMatches(c.WindowName, ctx.WindowName) {
			return 0, false
		}
		score++
	}
	if c.ScreenArea != nil {
		if !c.ScreenArea.Contains(ctx.Cursor) {
			return 0, false
		}
		score++
	}
	return score, true
}

// nameMatches applies the configured pattern to a context string. Patterns
// delimited with slashes are full regular expressions; anything else is a
// case-insensitive substring. A pattern that fails to compile never matches
// (the config validator rejects it upstream).
func nameMatches(pattern, value string) bool {
	if len(pattern) > 1 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		re, err := regexp.Compile(pattern[1 : len(pattern)-1])
		if err != nil {
			log.Printf("selector: invalid regex %q: %v", pattern, err)
			return false
		}
		return re.MatchString(value)
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}
