package batch

import (
	"fmt"
	"time"

	"simple-watchface/internal/watchface"
)

// Frame is one image to render.
type Frame struct {
	Index int
	Time  time.Time
	Mode  watchface.DrawMode
}

// Timeline describes Count instants Step apart, each rendered in every mode.
type Timeline struct {
	Start time.Time
	Step  time.Duration
	Count int
	Modes []watchface.DrawMode
}

// Frames expands the timeline in time order, modes in the order given.
func (tl Timeline) Frames() ([]Frame, error) {
	if tl.Count <= 0 {
		return nil, fmt.Errorf("batch: frame count %d must be positive", tl.Count)
	}
	if tl.Count > 1 && tl.Step <= 0 {
		return nil, fmt.Errorf("batch: step %s must be positive", tl.Step)
	}
	modes := tl.Modes
	if len(modes) == 0 {
		modes = []watchface.DrawMode{watchface.Interactive}
	}

	frames := make([]Frame, 0, tl.Count*len(modes))
	for i := 0; i < tl.Count; i++ {
		at := tl.Start.Add(time.Duration(i) * tl.Step)
		for _, m := range modes {
			frames = append(frames, Frame{Index: len(frames), Time: at, Mode: m})
		}
	}
	return frames, nil
}

// FileName is the frame's path relative to the output directory.
func (f Frame) FileName(format string) string {
	return fmt.Sprintf("%05d_%s.%s", f.Index, f.Mode, format)
}
