package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-watchface/internal/watchface"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var noon = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// yearly never fires during a test
const yearly = "0 0 0 1 1 *"

func newScheduler(t *testing.T, opts Options) (*Scheduler, chan Frame) {
	t.Helper()
	r, err := watchface.New(watchface.Options{Logger: zerolog.Nop()})
	require.NoError(t, err)

	frames := make(chan Frame, 64)
	opts.Renderer = r
	if opts.Sink == nil {
		opts.Sink = func(f Frame) error {
			select {
			case frames <- f:
			default:
			}
			return nil
		}
	}
	if opts.Size == 0 {
		opts.Size = 64
	}
	if opts.Clock == nil {
		opts.Clock = fixedClock(noon)
	}
	opts.Location = time.UTC
	opts.Logger = zerolog.Nop()

	s, err := New(opts)
	require.NoError(t, err)
	return s, frames
}

func run(t *testing.T, s *Scheduler) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, errc
}

func next(t *testing.T, frames <-chan Frame) Frame {
	t.Helper()
	select {
	case f := <-frames:
		return f
	case <-time.After(5 * time.Second):
		t.Fatal("no frame")
		return Frame{}
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	r, err := watchface.New(watchface.Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	_, err = New(Options{Renderer: r})
	assert.Error(t, err)
	_, err = New(Options{Renderer: r, Sink: func(Frame) error { return nil }})
	assert.Error(t, err, "size is required")
}

func TestRun_InteractiveTicks(t *testing.T) {
	s, frames := newScheduler(t, Options{InteractiveInterval: 5 * time.Millisecond, AmbientSchedule: yearly})
	cancel, errc := run(t, s)

	for i := 0; i < 4; i++ {
		f := next(t, frames)
		assert.Equal(t, i, f.Seq)
		assert.Equal(t, watchface.Interactive, f.Mode)
		assert.Equal(t, noon, f.Time)
		assert.Equal(t, 64, f.Image.Bounds().Dx())
	}
	cancel()
	assert.NoError(t, <-errc)
}

func TestRun_ModeChangeDrawsImmediately(t *testing.T) {
	s, frames := newScheduler(t, Options{InteractiveInterval: time.Hour, AmbientSchedule: yearly})
	_, _ = run(t, s)

	assert.Equal(t, watchface.Interactive, next(t, frames).Mode)

	s.SetMode(watchface.Ambient)
	f := next(t, frames)
	assert.Equal(t, watchface.Ambient, f.Mode)
	assert.Equal(t, 1, f.Seq)
	assert.Eventually(t, func() bool { return s.Mode() == watchface.Ambient }, time.Second, 10*time.Millisecond)

	// switching to the current mode is not a change
	s.SetMode(watchface.Ambient)
	s.SetMode(watchface.Interactive)
	f = next(t, frames)
	assert.Equal(t, watchface.Interactive, f.Mode)
	assert.Equal(t, 2, f.Seq)
}

func TestRun_AmbientFollowsCron(t *testing.T) {
	s, frames := newScheduler(t, Options{
		Mode:                watchface.Ambient,
		InteractiveInterval: time.Millisecond,
		AmbientSchedule:     "* * * * * *",
	})
	_, _ = run(t, s)

	first := next(t, frames)
	second := next(t, frames)
	assert.Equal(t, watchface.Ambient, first.Mode)
	assert.Equal(t, watchface.Ambient, second.Mode)
	assert.Equal(t, 1, second.Seq)
}

func TestRun_Invalidate(t *testing.T) {
	s, frames := newScheduler(t, Options{Mode: watchface.Ambient, AmbientSchedule: yearly})
	_, _ = run(t, s)

	next(t, frames)
	s.Invalidate()
	assert.Equal(t, 1, next(t, frames).Seq)
}

func TestRun_SinkErrorStops(t *testing.T) {
	boom := errors.New("display gone")
	s, _ := newScheduler(t, Options{
		AmbientSchedule: yearly,
		Sink:            func(Frame) error { return boom },
	})

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRun_BadSchedule(t *testing.T) {
	s, _ := newScheduler(t, Options{AmbientSchedule: "every tuesday"})
	assert.Error(t, s.Run(context.Background()))
}
