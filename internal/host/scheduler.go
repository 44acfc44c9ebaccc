// Package host plays the role of the watch host: it decides when frames are
// drawn and hands them to a sink.
package host

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"simple-watchface/internal/postprocess"
	"simple-watchface/internal/raster"
	"simple-watchface/internal/watchface"
)

// Frame rate and ambient cadence.
const (
	DefaultInteractiveInterval = 16 * time.Millisecond
	DefaultAmbientSchedule     = "0 * * * * *" // on the minute
)

// Clock supplies the time for each frame.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Frame is a rendered image handed to the sink.
type Frame struct {
	Seq   int
	Time  time.Time
	Mode  watchface.DrawMode
	Image *image.NRGBA
}

// Sink receives frames. Returning an error stops Run.
type Sink func(Frame) error

// Options configures a Scheduler.
type Options struct {
	Renderer    *watchface.Renderer
	Sink        Sink
	Size        int
	Supersample int
	RoundMask   bool
	Mode        watchface.DrawMode // initial mode

	Clock               Clock          // nil uses SystemClock
	Location            *time.Location // nil uses time.Local
	InteractiveInterval time.Duration  // zero uses DefaultInteractiveInterval
	AmbientSchedule     string         // cron spec with seconds; empty uses DefaultAmbientSchedule

	Logger zerolog.Logger
}

// Scheduler redraws the face every InteractiveInterval while interactive,
// on the AmbientSchedule while ambient, and immediately on a mode change or
// Invalidate. Frames are rendered one at a time.
type Scheduler struct {
	opts    Options
	surface *raster.Surface
	log     zerolog.Logger

	mu   sync.Mutex
	mode watchface.DrawMode
	seq  int

	modeCh     chan watchface.DrawMode
	invalidate chan struct{}
	ambientCh  chan struct{}
}

// New creates a scheduler. Call Run to start drawing.
func New(opts Options) (*Scheduler, error) {
	if opts.Renderer == nil {
		return nil, errors.New("host: renderer is required")
	}
	if opts.Sink == nil {
		return nil, errors.New("host: sink is required")
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.InteractiveInterval <= 0 {
		opts.InteractiveInterval = DefaultInteractiveInterval
	}
	if opts.AmbientSchedule == "" {
		opts.AmbientSchedule = DefaultAmbientSchedule
	}

	surface, err := raster.NewSurface(opts.Size, opts.Supersample)
	if err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}

	return &Scheduler{
		opts:       opts,
		surface:    surface,
		log:        opts.Logger.With().Str("component", "host").Logger(),
		mode:       opts.Mode,
		modeCh:     make(chan watchface.DrawMode, 1),
		invalidate: make(chan struct{}, 1),
		ambientCh:  make(chan struct{}, 1),
	}, nil
}

// Mode returns the current draw mode.
func (s *Scheduler) Mode() watchface.DrawMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches between interactive and ambient. The latest request
// wins if several arrive before Run handles them.
func (s *Scheduler) SetMode(m watchface.DrawMode) {
	for {
		select {
		case s.modeCh <- m:
			return
		default:
		}
		select {
		case <-s.modeCh:
		default:
		}
	}
}

// Invalidate requests a redraw as soon as possible, e.g. after the accent
// colour changed.
func (s *Scheduler) Invalidate() {
	select {
	case s.invalidate <- struct{}{}:
	default:
	}
}

// Run draws frames until ctx is cancelled or the sink fails. It draws one
// frame immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.surface.Close()

	c := cron.New(cron.WithSeconds(), cron.WithLocation(s.opts.Location))
	if _, err := c.AddFunc(s.opts.AmbientSchedule, func() {
		select {
		case s.ambientCh <- struct{}{}:
		default:
		}
	}); err != nil {
		return fmt.Errorf("host: ambient schedule %q: %w", s.opts.AmbientSchedule, err)
	}
	c.Start()
	defer func() {
		<-c.Stop().Done()
	}()

	ticker := time.NewTicker(s.opts.InteractiveInterval)
	defer ticker.Stop()
	if !s.Mode().IsInteractive() {
		ticker.Stop()
	}

	s.log.Info().
		Stringer("mode", s.Mode()).
		Dur("interval", s.opts.InteractiveInterval).
		Str("ambient_schedule", s.opts.AmbientSchedule).
		Msg("Host started")

	if err := s.draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Int("frames", s.frames()).Msg("Host stopped")
			return nil

		case m := <-s.modeCh:
			s.mu.Lock()
			changed := s.mode != m
			s.mode = m
			s.mu.Unlock()
			if !changed {
				continue
			}
			if m.IsInteractive() {
				ticker.Reset(s.opts.InteractiveInterval)
			} else {
				ticker.Stop()
			}
			s.log.Debug().Stringer("mode", m).Msg("Mode changed")
			if err := s.draw(); err != nil {
				return err
			}

		case <-s.invalidate:
			if err := s.draw(); err != nil {
				return err
			}

		case <-ticker.C:
			if !s.Mode().IsInteractive() {
				continue
			}
			if err := s.draw(); err != nil {
				return err
			}

		case <-s.ambientCh:
			if s.Mode().IsInteractive() {
				continue
			}
			if err := s.draw(); err != nil {
				return err
			}
		}
	}
}

func (s *Scheduler) frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

func (s *Scheduler) draw() error {
	s.mu.Lock()
	mode := s.mode
	seq := s.seq
	s.seq++
	s.mu.Unlock()

	now := s.opts.Clock.Now().In(s.opts.Location)
	s.opts.Renderer.Render(s.surface.Context(), s.surface.Bounds(), now, mode)

	img, err := s.surface.Capture()
	if err != nil {
		return fmt.Errorf("host: capture: %w", err)
	}
	if s.opts.RoundMask {
		postprocess.CircleMask(img)
	}

	if err := s.opts.Sink(Frame{Seq: seq, Time: now, Mode: mode, Image: img}); err != nil {
		return fmt.Errorf("host: sink: %w", err)
	}
	return nil
}
