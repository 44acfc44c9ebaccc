package source

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/emersion/go-ical"

	"simple-watchface/internal/complication"
)

// Event is one calendar entry.
type Event struct {
	Start   time.Time
	Summary string
}

// Calendar publishes the next upcoming event.
type Calendar struct {
	events []Event // sorted by start
}

// LoadCalendar parses an iCalendar file.
func LoadCalendar(path string, loc *time.Location) (*Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer f.Close()

	cal, err := ParseCalendar(f, loc)
	if err != nil {
		return nil, fmt.Errorf("source: parse %s: %w", path, err)
	}
	return cal, nil
}

// ParseCalendar decodes iCalendar data. Events without a start time are skipped.
func ParseCalendar(r io.Reader, loc *time.Location) (*Calendar, error) {
	if loc == nil {
		loc = time.Local
	}

	dec := ical.NewDecoder(r)
	var events []Event
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		for _, ev := range cal.Events() {
			start, err := ev.DateTimeStart(loc)
			if err != nil {
				continue
			}
			summary, _ := ev.Props.Text(ical.PropSummary)
			events = append(events, Event{Start: start, Summary: summary})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return &Calendar{events: events}, nil
}

// Next returns the first event starting at or after now.
func (c *Calendar) Next(now time.Time) (Event, bool) {
	i := sort.Search(len(c.events), func(i int) bool {
		return !c.events[i].Start.Before(now)
	})
	if i == len(c.events) {
		return Event{}, false
	}
	return c.events[i], true
}

// Len returns the number of events.
func (c *Calendar) Len() int {
	return len(c.events)
}

func (c *Calendar) Data(now time.Time, want complication.Type) complication.Data {
	ev, ok := c.Next(now)
	if !ok {
		return complication.Data{Type: complication.Empty}
	}

	at := ev.Start.In(now.Location()).Format("15:04")
	switch want {
	case complication.LongText:
		return complication.Data{Type: complication.LongText, Text: at + " " + ev.Summary}
	case complication.ShortText:
		return complication.Data{Type: complication.ShortText, Text: at, Title: ev.Summary}
	}
	return complication.Data{Type: complication.NoData}
}
