package watchface

import (
	"fmt"
	"strings"
)

// DrawMode is the display state the host renders in.
type DrawMode int

const (
	Interactive DrawMode = iota
	Ambient              // low-power, always-on display
)

func (m DrawMode) String() string {
	if m == Ambient {
		return "ambient"
	}
	return "interactive"
}

// IsInteractive reports whether the full face is shown.
func (m DrawMode) IsInteractive() bool {
	return m == Interactive
}

// ParseDrawMode resolves "interactive" or "ambient".
func ParseDrawMode(s string) (DrawMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interactive":
		return Interactive, nil
	case "ambient":
		return Ambient, nil
	}
	return Interactive, fmt.Errorf("watchface: unknown draw mode %q", s)
}
