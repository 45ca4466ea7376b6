package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/insights"
)

const barWidth = 20

// renderer styles reports for the color profile of its output; plain
// writers such as files and buffers get no escape codes.
type renderer struct {
	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	box    lipgloss.Style
	status map[domain.Status]lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label: r.NewStyle().Bold(true),
		muted: r.NewStyle().Faint(true),
		box:   r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		status: map[domain.Status]lipgloss.Style{
			domain.StatusTodo:       r.NewStyle().Foreground(lipgloss.Color("245")),
			domain.StatusInProgress: r.NewStyle().Foreground(lipgloss.Color("214")),
			domain.StatusDone:       r.NewStyle().Foreground(lipgloss.Color("42")),
			domain.StatusBlocked:    r.NewStyle().Foreground(lipgloss.Color("196")),
		},
	}
}

func (r *renderer) marker(s domain.Status) string {
	return r.status[s].Render(fmt.Sprintf("%-3s", s.Marker()))
}

func (r *renderer) priorityLine(p domain.Priority) string {
	return r.marker(p.Status) + " " + p.Title + " " + r.muted.Render("#"+fmt.Sprint(p.ID))
}

func bar(c insights.Completion) string {
	filled := c.Percent * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) +
		fmt.Sprintf(" %d%% (%d/%d)", c.Percent, c.Done, c.Total)
}

func (r *renderer) personal(v insights.PersonalView, m domain.Member) string {
	lines := []string{
		r.title.Render(m.Name) + " " + r.muted.Render(m.Role),
		r.muted.Render(fmt.Sprintf("%s · week %s..%s", v.Date, v.Week.Start, v.Week.End)),
		"",
		r.label.Render("Today"),
	}
	if len(v.Today) == 0 {
		lines = append(lines, r.muted.Render("  no priorities yet"))
	}
	for _, p := range v.Today {
		lines = append(lines, "  "+r.priorityLine(p))
	}
	lines = append(lines,
		"",
		r.label.Render("Today ")+bar(v.TodayCompletion),
		r.label.Render("Week  ")+bar(v.WeekCompletion),
		fmt.Sprintf("Done overall: %d · Streak: %d day(s)", v.TotalDone, v.Streak),
	)
	if v.NeedsCheckIn {
		lines = append(lines, r.status[domain.StatusInProgress].Render("No check-in yet today"))
	} else if v.TodayCheckIn != nil {
		lines = append(lines, "Mood: "+v.TodayCheckIn.Mood.Label())
	}
	return r.box.Render(strings.Join(lines, "\n"))
}

func (r *renderer) team(v insights.TeamView) string {
	head := []string{
		r.title.Render("Team · " + v.Date),
		fmt.Sprintf("%d of %d checked in today", v.ActiveToday, v.Members),
		r.label.Render("Done ") + bar(v.Completion),
	}
	if len(v.Focus) > 0 {
		words := make([]string, len(v.Focus))
		for i, k := range v.Focus {
			words[i] = fmt.Sprintf("%s (%d)", k.Word, k.Count)
		}
		head = append(head, "Focus: "+strings.Join(words, ", "))
	}

	blocks := []string{strings.Join(head, "\n")}
	for _, c := range v.Cards {
		lines := []string{r.label.Render(c.Member.Name) + " " + r.muted.Render(c.Member.Role)}
		for _, p := range c.Priorities {
			lines = append(lines, r.priorityLine(p))
		}
		if c.More > 0 {
			lines = append(lines, r.muted.Render(fmt.Sprintf("+%d more", c.More)))
		}
		if len(c.Priorities) == 0 {
			lines = append(lines, r.muted.Render("nothing planned"))
		}
		last := "never"
		if c.Member.LastCheckIn != nil {
			last = *c.Member.LastCheckIn
		}
		lines = append(lines, r.muted.Render("last check-in "+last))
		blocks = append(blocks, r.box.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *renderer) weekly(v insights.WeeklyView, who string) string {
	lines := []string{
		r.title.Render(fmt.Sprintf("%s · week %s..%s", who, v.Week.Start, v.Week.End)),
		r.label.Render("Done ") + bar(v.Completion),
		r.label.Render("Status ") + r.statusCounts(v.Statuses),
		fmt.Sprintf("Check-ins: %d", v.CheckIns),
	}
	if v.Moods.Dominant != "" {
		lines = append(lines, "Mood: mostly "+v.Moods.Dominant.Label()+" "+r.muted.Render(moodCounts(v.Moods)))
	}
	for _, d := range v.Days {
		head := d.Weekday + " " + d.Date
		if d.IsToday {
			head = r.label.Render(head + " (today)")
		}
		lines = append(lines, "", head)
		for _, p := range d.Priorities {
			lines = append(lines, "  "+r.priorityLine(p))
		}
		if d.CheckIn != nil {
			lines = append(lines, r.muted.Render("  checked in · "+d.CheckIn.Mood.Label()))
		}
	}
	return r.box.Render(strings.Join(lines, "\n"))
}

func (r *renderer) statusCounts(counts map[domain.Status]int) string {
	parts := make([]string, 0, len(domain.Statuses))
	for _, st := range domain.Statuses {
		parts = append(parts, r.status[st].Render(fmt.Sprintf("%s %d", st.Label(), counts[st])))
	}
	return strings.Join(parts, " · ")
}

func moodCounts(m insights.MoodStats) string {
	parts := make([]string, 0, len(m.Counts))
	for mood, n := range m.Counts {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", mood, n))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
