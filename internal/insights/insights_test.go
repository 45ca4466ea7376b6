package insights

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/domain"
)

const today = "2026-10-15" // Thursday

var week = calendar.Week{Start: "2026-10-11", End: "2026-10-17"}

func pr(id uint, user, date string, st domain.Status, title string) domain.Priority {
	return domain.Priority{ID: id, UserID: user, Date: date, Status: st, Title: title}
}

func ci(id uint, user, date string, m domain.Mood) domain.CheckIn {
	return domain.CheckIn{ID: id, UserID: user, Date: date, Mood: m}
}

func ids(ps []domain.Priority) []uint {
	out := make([]uint, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestTodayAndThisWeek(t *testing.T) {
	ps := []domain.Priority{
		pr(1, "u1", "2026-10-15", domain.StatusTodo, "a"),
		pr(2, "u1", "2026-10-10", domain.StatusDone, "b"),
		pr(3, "u2", "2026-10-11", domain.StatusDone, "c"),
		pr(4, "u2", "2026-10-17", domain.StatusTodo, "d"),
		pr(5, "u1", "2026-10-18", domain.StatusTodo, "e"),
	}
	if diff := cmp.Diff([]uint{1}, ids(Today(ps, today))); diff != "" {
		t.Errorf("Today (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint{1, 3, 4}, ids(ThisWeek(ps, week))); diff != "" {
		t.Errorf("ThisWeek (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint{1, 2, 5}, ids(ForUser(ps, "u1"))); diff != "" {
		t.Errorf("ForUser (-want +got):\n%s", diff)
	}
}

func TestCompletionOf(t *testing.T) {
	cases := []struct {
		name string
		in   []domain.Priority
		want Completion
	}{
		{"empty is zero", nil, Completion{}},
		{"one of three rounds", []domain.Priority{
			pr(1, "u", today, domain.StatusDone, "a"),
			pr(2, "u", today, domain.StatusTodo, "b"),
			pr(3, "u", today, domain.StatusBlocked, "c"),
		}, Completion{Done: 1, Total: 3, Percent: 33}},
		{"two of three rounds up", []domain.Priority{
			pr(1, "u", today, domain.StatusDone, "a"),
			pr(2, "u", today, domain.StatusDone, "b"),
			pr(3, "u", today, domain.StatusInProgress, "c"),
		}, Completion{Done: 2, Total: 3, Percent: 67}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, CompletionOf(tc.in)); diff != "" {
				t.Fatalf("CompletionOf (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStreak(t *testing.T) {
	cases := []struct {
		name  string
		dates []string
		want  int
	}{
		{"none", nil, 0},
		{"today and yesterday", []string{"2026-10-14", "2026-10-15"}, 2},
		{"gap after today", []string{"2026-10-15", "2026-10-12"}, 1},
		{"no check-in today", []string{"2026-10-14", "2026-10-13"}, 0},
		{"duplicates count once", []string{"2026-10-15", "2026-10-15", "2026-10-14", "2026-10-14", "2026-10-13"}, 3},
		{"future ignored", []string{"2026-10-16", "2026-10-15"}, 1},
		{"crosses month", []string{"2026-10-01", "2026-09-30"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cs := make([]domain.CheckIn, len(tc.dates))
			for i, d := range tc.dates {
				cs[i] = ci(uint(i+1), "u", d, domain.MoodNeutral)
			}
			if got := Streak(cs, today); got != tc.want {
				t.Fatalf("Streak = %d; want %d", got, tc.want)
			}
		})
	}

	cs := []domain.CheckIn{ci(1, "u", "2026-09-30", ""), ci(2, "u", "2026-10-01", "")}
	if got := Streak(cs, "2026-10-01"); got != 2 {
		t.Fatalf("Streak across month = %d; want 2", got)
	}
}

func TestStreak_DoesNotReorderInput(t *testing.T) {
	cs := []domain.CheckIn{ci(1, "u", "2026-10-14", ""), ci(2, "u", "2026-10-15", "")}
	_ = Streak(cs, today)
	if cs[0].ID != 1 || cs[1].ID != 2 {
		t.Fatalf("input reordered: %+v", cs)
	}
}

func TestMoods(t *testing.T) {
	got := Moods([]domain.CheckIn{
		ci(1, "u", today, domain.MoodStruggling),
		ci(2, "u", today, domain.MoodFocused),
		ci(3, "u", today, domain.MoodFocused),
		ci(4, "u", today, domain.MoodStruggling),
		ci(5, "u", today, ""),
	})
	want := MoodStats{
		Counts:   map[domain.Mood]int{domain.MoodStruggling: 2, domain.MoodFocused: 2},
		Dominant: domain.MoodStruggling,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Moods (-want +got):\n%s", diff)
	}
	if empty := Moods(nil); empty.Dominant != "" || len(empty.Counts) != 0 {
		t.Fatalf("Moods(nil) = %+v", empty)
	}
}

func TestFocusKeywords(t *testing.T) {
	ps := []domain.Priority{
		pr(1, "u", today, domain.StatusTodo, "Review Design docs"),
		pr(2, "u", today, domain.StatusTodo, "review API design"),
		pr(3, "u", today, domain.StatusTodo, "Ship the release"),
		pr(4, "u", today, domain.StatusTodo, "Plan release party and review"),
	}
	got := FocusKeywords(ps, FocusLimit)
	want := []Keyword{
		{"review", 3},
		{"design", 2},
		{"release", 2},
		{"docs", 1},
		{"ship", 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FocusKeywords (-want +got):\n%s", diff)
	}
	if all := FocusKeywords(ps, 0); len(all) != 7 {
		t.Fatalf("FocusKeywords unlimited = %d entries; want 7", len(all))
	}
}

func TestPersonal(t *testing.T) {
	ps := []domain.Priority{
		pr(1, "u1", today, domain.StatusDone, "a"),
		pr(2, "u1", today, domain.StatusTodo, "b"),
		pr(3, "u1", "2026-10-12", domain.StatusDone, "c"),
		pr(4, "u1", "2026-10-01", domain.StatusDone, "d"),
		pr(5, "u2", today, domain.StatusDone, "e"),
	}
	cs := []domain.CheckIn{
		ci(1, "u1", "2026-10-14", domain.MoodNeutral),
		ci(2, "u1", today, domain.MoodFocused),
		ci(3, "u2", "2026-10-13", domain.MoodNeutral),
	}
	v := Personal(ps, cs, "u1", today, week)

	if diff := cmp.Diff([]uint{1, 2}, ids(v.Today)); diff != "" {
		t.Errorf("Today (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Completion{1, 2, 50}, v.TodayCompletion); diff != "" {
		t.Errorf("TodayCompletion (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Completion{2, 3, 67}, v.WeekCompletion); diff != "" {
		t.Errorf("WeekCompletion (-want +got):\n%s", diff)
	}
	if v.TotalDone != 3 || v.Streak != 2 {
		t.Errorf("TotalDone=%d Streak=%d; want 3, 2", v.TotalDone, v.Streak)
	}
	if v.TodayCheckIn == nil || v.TodayCheckIn.ID != 2 || v.NeedsCheckIn {
		t.Errorf("TodayCheckIn = %+v NeedsCheckIn=%v", v.TodayCheckIn, v.NeedsCheckIn)
	}

	other := Personal(ps, cs, "u2", today, week)
	if other.TodayCheckIn != nil || !other.NeedsCheckIn || other.Streak != 0 {
		t.Errorf("u2 view = %+v", other)
	}
}

func TestTeam(t *testing.T) {
	members := []domain.Member{
		{User: domain.User{ID: "u1", Name: "Ann"}},
		{User: domain.User{ID: "u2", Name: "Bo"}},
		{User: domain.User{ID: "u3", Name: "Cy"}},
	}
	ps := []domain.Priority{
		pr(1, "u1", today, domain.StatusDone, "one"),
		pr(2, "u1", today, domain.StatusTodo, "two"),
		pr(3, "u1", today, domain.StatusTodo, "three"),
		pr(4, "u1", today, domain.StatusTodo, "four"),
		pr(5, "u1", today, domain.StatusDone, "five"),
		pr(6, "u2", today, domain.StatusDone, "six"),
		pr(7, "u3", "2026-10-14", domain.StatusTodo, "seven"),
	}
	v := Team(members, ps, today)

	if v.Members != 3 || v.ActiveToday != 2 {
		t.Fatalf("Members=%d ActiveToday=%d; want 3, 2", v.Members, v.ActiveToday)
	}
	if diff := cmp.Diff(Completion{3, 6, 50}, v.Completion); diff != "" {
		t.Errorf("Completion (-want +got):\n%s", diff)
	}
	if len(v.Cards) != 3 {
		t.Fatalf("cards = %d", len(v.Cards))
	}
	first := v.Cards[0]
	if diff := cmp.Diff([]uint{1, 2, 3}, ids(first.Priorities)); diff != "" {
		t.Errorf("card priorities (-want +got):\n%s", diff)
	}
	if first.More != 2 || first.Completion != (Completion{2, 5, 40}) {
		t.Errorf("card = More %d Completion %+v", first.More, first.Completion)
	}
	if len(v.Cards[2].Priorities) != 0 || v.Cards[2].More != 0 {
		t.Errorf("idle card = %+v", v.Cards[2])
	}
	if len(v.Focus) != 3 || v.Focus[0].Word != "three" {
		t.Errorf("Focus = %+v", v.Focus)
	}
}

func TestWeekly(t *testing.T) {
	ps := []domain.Priority{
		pr(1, "u1", "2026-10-11", domain.StatusDone, "a"),
		pr(2, "u1", today, domain.StatusTodo, "b"),
		pr(3, "u2", today, domain.StatusDone, "c"),
		pr(4, "u1", "2026-10-10", domain.StatusDone, "d"),
	}
	cs := []domain.CheckIn{
		ci(1, "u1", "2026-10-11", domain.MoodFocused),
		ci(2, "u2", today, domain.MoodStruggling),
		ci(3, "u1", today, domain.MoodStruggling),
		ci(4, "u1", "2026-10-09", domain.MoodFocused),
	}

	v := Weekly(ps, cs, "", today, week)
	if diff := cmp.Diff(Completion{2, 3, 67}, v.Completion); diff != "" {
		t.Errorf("Completion (-want +got):\n%s", diff)
	}
	wantStatuses := map[domain.Status]int{domain.StatusTodo: 1, domain.StatusInProgress: 0, domain.StatusDone: 2, domain.StatusBlocked: 0}
	if diff := cmp.Diff(wantStatuses, v.Statuses); diff != "" {
		t.Errorf("Statuses (-want +got):\n%s", diff)
	}
	if v.CheckIns != 3 || v.Moods.Dominant != domain.MoodStruggling {
		t.Errorf("CheckIns=%d Dominant=%q", v.CheckIns, v.Moods.Dominant)
	}
	if len(v.Days) != 7 || v.Days[0].Date != week.Start || v.Days[0].Weekday != time.Sunday.String() {
		t.Fatalf("Days = %+v", v.Days)
	}
	thu := v.Days[4]
	if !thu.IsToday || len(thu.Priorities) != 2 || thu.CheckIn == nil || thu.CheckIn.ID != 2 {
		t.Errorf("today column = %+v", thu)
	}

	mine := Weekly(ps, cs, "u1", today, week)
	if mine.Completion != (Completion{1, 2, 50}) || mine.CheckIns != 2 {
		t.Errorf("u1 weekly = %+v", mine)
	}
	if mine.Statuses[domain.StatusDone] != 1 || mine.Statuses[domain.StatusTodo] != 1 {
		t.Errorf("u1 statuses = %v", mine.Statuses)
	}
	if mine.Moods.Dominant != domain.MoodFocused {
		t.Errorf("u1 dominant = %q", mine.Moods.Dominant)
	}
}

func TestWeekly_MondayStart(t *testing.T) {
	cal := calendar.New(calendar.Fixed(time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)), time.UTC, time.Monday)
	v := Weekly(nil, nil, "", cal.Today(), cal.ThisWeek())
	if len(v.Days) != 7 || v.Days[0].Weekday != "Monday" || v.Days[6].Date != "2026-10-18" {
		t.Fatalf("Days = %+v", v.Days)
	}
	if v.Completion.Percent != 0 || v.Moods.Dominant != "" {
		t.Fatalf("empty week = %+v", v)
	}
	if len(v.Statuses) != len(domain.Statuses) || v.Statuses[domain.StatusBlocked] != 0 {
		t.Fatalf("empty week statuses = %v", v.Statuses)
	}
}
