package report

import (
	"fmt"

	"diagsynth/internal/source"
)

// Mode selects the rendering used for the flat message.
type Mode uint8

const (
	ModeClassic Mode = iota
	ModeFriendly
)

func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeFriendly:
		return "friendly"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode accepts "classic" and "friendly"; empty means friendly.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "friendly":
		return ModeFriendly, nil
	case "classic":
		return ModeClassic, nil
	default:
		return ModeClassic, fmt.Errorf("unknown report mode %q (want classic or friendly)", s)
	}
}

// Options configure Build.
type Options struct {
	Mode Mode
	// SourceFile is the file being checked; the library note points at it.
	SourceFile source.FileID
}
