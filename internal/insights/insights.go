// Package insights derives display statistics from snapshots returned by the
// services. Every function is pure and never modifies its inputs; filtered
// results are fresh slices of record copies.
package insights

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/domain"
)

// FocusLimit is how many focus keywords the team view keeps.
const FocusLimit = 5

// Completion is a done/total pair with a rounded percentage.
type Completion struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// MoodStats tallies moods. Dominant is empty when there were no check-ins.
type MoodStats struct {
	Counts   map[domain.Mood]int `json:"counts"`
	Dominant domain.Mood         `json:"dominant,omitempty"`
}

// StatusCounts counts priorities per status. Every known status is present,
// zero when unused.
func StatusCounts(ps []domain.Priority) map[domain.Status]int {
	out := make(map[domain.Status]int, len(domain.Statuses))
	for _, st := range domain.Statuses {
		out[st] = 0
	}
	for _, p := range ps {
		out[p.Status]++
	}
	return out
}

// Keyword is one focus word and the number of titles it appeared in.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Today returns the priorities dated today.
func Today(ps []domain.Priority, today string) []domain.Priority {
	return filterPriorities(ps, func(p domain.Priority) bool { return p.Date == today })
}

// ThisWeek returns the priorities dated inside w.
func ThisWeek(ps []domain.Priority, w calendar.Week) []domain.Priority {
	return filterPriorities(ps, func(p domain.Priority) bool { return w.Contains(p.Date) })
}

// ForUser returns the priorities owned by userID.
func ForUser(ps []domain.Priority, userID string) []domain.Priority {
	return filterPriorities(ps, func(p domain.Priority) bool { return p.UserID == userID })
}

// CheckInsOn returns the check-ins dated day.
func CheckInsOn(cs []domain.CheckIn, day string) []domain.CheckIn {
	return filterCheckIns(cs, func(c domain.CheckIn) bool { return c.Date == day })
}

// CheckInsThisWeek returns the check-ins dated inside w.
func CheckInsThisWeek(cs []domain.CheckIn, w calendar.Week) []domain.CheckIn {
	return filterCheckIns(cs, func(c domain.CheckIn) bool { return w.Contains(c.Date) })
}

// CheckInsForUser returns the check-ins submitted by userID.
func CheckInsForUser(cs []domain.CheckIn, userID string) []domain.CheckIn {
	return filterCheckIns(cs, func(c domain.CheckIn) bool { return c.UserID == userID })
}

// CompletionOf counts done priorities. An empty set is 0%.
func CompletionOf(ps []domain.Priority) Completion {
	c := Completion{Total: len(ps)}
	for _, p := range ps {
		if p.Status == domain.StatusDone {
			c.Done++
		}
	}
	if c.Total > 0 {
		c.Percent = int(math.Round(float64(c.Done) * 100 / float64(c.Total)))
	}
	return c
}

// Streak counts consecutive days ending today that have a check-in. Several
// check-ins on one day count once, and check-ins dated after today are
// ignored. A missing check-in today yields 0.
func Streak(cs []domain.CheckIn, today string) int {
	days := make([]string, 0, len(cs))
	seen := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		if c.Date > today {
			continue
		}
		if _, ok := seen[c.Date]; ok {
			continue
		}
		seen[c.Date] = struct{}{}
		days = append(days, c.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	expect, err := time.Parse(calendar.DayLayout, today)
	if err != nil {
		return 0
	}
	streak := 0
	for _, d := range days {
		if d != expect.Format(calendar.DayLayout) {
			break
		}
		streak++
		expect = expect.AddDate(0, 0, -1)
	}
	return streak
}

// Moods tallies check-in moods. The dominant mood is the most frequent one;
// ties go to the mood seen first.
func Moods(cs []domain.CheckIn) MoodStats {
	st := MoodStats{Counts: make(map[domain.Mood]int, len(domain.Moods))}
	var order []domain.Mood
	for _, c := range cs {
		if c.Mood == "" {
			continue
		}
		if st.Counts[c.Mood] == 0 {
			order = append(order, c.Mood)
		}
		st.Counts[c.Mood]++
	}
	best := 0
	for _, m := range order {
		if st.Counts[m] > best {
			best, st.Dominant = st.Counts[m], m
		}
	}
	return st
}

// FocusKeywords splits titles on whitespace, case-folds the words and counts
// those longer than three characters. The result is ordered by count, ties
// by first appearance, and cut to limit entries (limit <= 0 keeps all).
func FocusKeywords(ps []domain.Priority, limit int) []Keyword {
	fold := cases.Lower(language.Und)
	counts := map[string]int{}
	var order []string
	for _, p := range ps {
		for _, w := range strings.Fields(fold.String(p.Title)) {
			if len([]rune(w)) <= 3 {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}
	out := make([]Keyword, len(order))
	for i, w := range order {
		out[i] = Keyword{Word: w, Count: counts[w]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func filterPriorities(ps []domain.Priority, keep func(domain.Priority) bool) []domain.Priority {
	out := make([]domain.Priority, 0, len(ps))
	for _, p := range ps {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func filterCheckIns(cs []domain.CheckIn, keep func(domain.CheckIn) bool) []domain.CheckIn {
	out := make([]domain.CheckIn, 0, len(cs))
	for _, c := range cs {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
