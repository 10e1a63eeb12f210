package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// GenerateReport renders a diagnostic dump of the narrative state. Debug
// output only; the format is not a stable contract.
func (r *Recorder) GenerateReport() string {
	s := r.state
	var b strings.Builder

	fmt.Fprintf(&b, "=== narrative state ===\n")
	fmt.Fprintf(&b, "branch: %s (progression %d)\n", s.CurrentBranch, s.ProgressionLevel)
	fmt.Fprintf(&b, "imperial loyalty: %s  insurgent sympathy: %s  spread: %d\n",
		humanize.Comma(int64(s.ImperialLoyalty)),
		humanize.Comma(int64(s.InsurgentSympathy)),
		s.ImperialLoyalty-s.InsurgentSympathy,
	)
	fmt.Fprintf(&b, "decisions recorded: %s\n", humanize.Comma(int64(len(s.History))))

	if s.OpenChainID != "" {
		fmt.Fprintf(&b, "open chain: %s (length %d)\n", s.OpenChainID, s.OpenChainLength)
	}
	if s.LockedEnding != EndingNone {
		fmt.Fprintf(&b, "locked ending: %s\n", s.LockedEnding)
	}
	fmt.Fprintf(&b, "projected ending: %s\n", DetermineEnding(s))

	if len(s.UnlockedTags) > 0 {
		tags := make([]string, 0, len(s.UnlockedTags))
		for t := range s.UnlockedTags {
			tags = append(tags, t)
		}
		sort.Strings(tags)
		fmt.Fprintf(&b, "unlocked tags: %s\n", strings.Join(tags, ", "))
	}

	// Tail of the decision history, newest last.
	start := 0
	if len(s.History) > recentWindow {
		start = len(s.History) - recentWindow
	}
	if len(s.History) > 0 {
		fmt.Fprintf(&b, "recent decisions:\n")
	}
	for _, rec := range s.History[start:] {
		fmt.Fprintf(&b, "  [%s] %s/%s imp=%+d ins=%+d %s (%s)\n",
			shortID(rec.ID),
			rec.Category,
			PressureName[rec.Pressure],
			rec.ImperialPoints,
			rec.InsurgentPoints,
			rec.Context,
			humanize.Time(rec.Timestamp),
		)
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
