package ui

import (
	"maps"
	"os"

	"github.com/mattn/go-isatty"
)

// Default keys understood by the project wizard in headless mode.
const (
	DefaultTitle    = "title"
	DefaultCategory = "category"
	DefaultNote     = "note"
	DefaultMainFile = "main_file"
)

// HeadlessManager manages headless (non-interactive) mode detection
// and default values for UI components running without a TTY.
type HeadlessManager struct {
	forced   *bool
	defaults map[string]string
}

// NewHeadlessManager creates a HeadlessManager that detects
// headless mode from the TTY state of os.Stdin.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{}
}

// IsHeadless returns true when the UI should operate in headless mode.
// ForceHeadless overrides TTY detection.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	return !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// ForceHeadless overrides TTY detection.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// SetDefaults stores default values used in headless mode. Empty values
// are dropped.
func (h *HeadlessManager) SetDefaults(defaults map[string]string) {
	h.defaults = make(map[string]string, len(defaults))
	maps.Copy(h.defaults, defaults)
	maps.DeleteFunc(h.defaults, func(_, v string) bool { return v == "" })
	if len(h.defaults) == 0 {
		h.defaults = nil
	}
}

// GetDefault retrieves a default value by key.
func (h *HeadlessManager) GetDefault(key string) (string, bool) {
	if h.defaults == nil {
		return "", false
	}
	v, ok := h.defaults[key]
	return v, ok
}

// HasDefaults returns true when at least one default value has been set.
func (h *HeadlessManager) HasDefaults() bool {
	return len(h.defaults) > 0
}
