//go:build !windows

package focus

// stubProvider is the portable fallback: no focused-window information and
// no cursor. Show requests still work; condition matching simply sees empty
// names and placement falls back to the display center.
type stubProvider struct{}

func newPlatformProvider() Provider { return stubProvider{} }

func (stubProvider) Current() Info { return Info{} }
