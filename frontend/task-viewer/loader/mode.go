package loader

import (
	"errors"
	"fmt"
)

// Mode selects which backend listing to show.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeAdvanced Mode = "advanced"
)

var ErrUnknownMode = errors.New("unknown mode")

// ParseMode accepts only the two wire literals.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBasic, ModeAdvanced:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

const (
	basicInfo    = "Using list_tasks (basic summary). Agent and Command may not appear if not included in API."
	advancedInfo = "Using list_tasks_advanced (detailed). Mapping: name, description/summary, agent, command."
)

// target returns the endpoint path and info text for m. Anything other than
// ModeBasic resolves to the advanced listing.
func (m Mode) target() (path, info string) {
	if m == ModeBasic {
		return "/api/tasks/basic", basicInfo
	}
	return "/api/tasks/advanced", advancedInfo
}
