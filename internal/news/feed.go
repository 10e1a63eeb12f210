// Package news turns triggered consequences and gate events into the day's
// dispatch feed shown between shifts.
package news

import (
	"fmt"
	"strings"
)

// Dispatch is one feed item.
type Dispatch struct {
	Day      int    `json:"day"`
	Category string `json:"category"` // "consequence", "gate", "story"
	Headline string `json:"headline"`
	Body     string `json:"body,omitempty"`
}

// feedCap bounds retained dispatches; older items scroll off.
const feedCap = 200

// Feed accumulates dispatches for the session.
type Feed struct {
	dispatches []Dispatch
}

// Publish appends a dispatch to the feed.
func (f *Feed) Publish(d Dispatch) {
	f.dispatches = append(f.dispatches, d)
	if len(f.dispatches) > feedCap {
		f.dispatches = f.dispatches[len(f.dispatches)-feedCap:]
	}
}

// Front returns the newest n dispatches, newest last.
func (f *Feed) Front(n int) []Dispatch {
	if n <= 0 || n > len(f.dispatches) {
		n = len(f.dispatches)
	}
	out := make([]Dispatch, n)
	copy(out, f.dispatches[len(f.dispatches)-n:])
	return out
}

// ForDay returns every dispatch published on the given day.
func (f *Feed) ForDay(day int) []Dispatch {
	var out []Dispatch
	for _, d := range f.dispatches {
		if d.Day == day {
			out = append(out, d)
		}
	}
	return out
}

// Render formats a day's dispatches as the between-shift bulletin.
func (f *Feed) Render(day int) string {
	items := f.ForDay(day)
	var b strings.Builder
	fmt.Fprintf(&b, "── GATE BULLETIN · DAY %d ──\n", day)
	if len(items) == 0 {
		b.WriteString("A quiet day on the lanes.\n")
		return b.String()
	}
	for _, d := range items {
		fmt.Fprintf(&b, "• %s\n", d.Headline)
		if d.Body != "" {
			fmt.Fprintf(&b, "  %s\n", d.Body)
		}
	}
	return b.String()
}
