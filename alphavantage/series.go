package alphavantage

import (
	"fmt"
	"slices"
	"strings"
)

// timed is implemented by every series entry; Time is the vendor timestamp, which
// sorts chronologically as a string ("2006-01-02" or "2006-01-02 15:04:05").
type timed interface {
	Time() string
}

func sortNewestFirst[E timed](entries []E) {
	slices.SortStableFunc(entries, func(a, b E) int {
		return strings.Compare(b.Time(), a.Time())
	})
}

func findEntry[E timed](entries []E, time string) (E, bool) {
	for _, e := range entries {
		if e.Time() == time {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// latestEntry relies on entries being sorted newest first.
func latestEntry[E timed](entries []E) (E, bool) {
	if len(entries) == 0 {
		var zero E
		return zero, false
	}
	return entries[0], true
}

func latestEntries[E timed](entries []E, n int) ([]E, error) {
	if n < 0 || n > len(entries) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughEntries, n, len(entries))
	}
	return slices.Clone(entries[:n]), nil
}

// isSeriesKey matches "Time Series (Daily)", "Weekly Adjusted Time Series",
// "Time Series FX (5min)" and "Time Series (Digital Currency Daily)".
func isSeriesKey(key string) bool {
	return strings.Contains(key, "Time Series")
}
