package insights

import (
	"time"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/domain"
)

// CardLimit is how many priorities a team member card lists before folding
// the rest into an overflow count.
const CardLimit = 3

// PersonalView is one user's dashboard.
type PersonalView struct {
	UserID          string            `json:"userId"`
	Date            string            `json:"date"`
	Week            calendar.Week     `json:"week"`
	Today           []domain.Priority `json:"today"`
	TodayCompletion Completion        `json:"todayCompletion"`
	WeekCompletion  Completion        `json:"weekCompletion"`
	TotalDone       int               `json:"totalDone"`
	Streak          int               `json:"streak"`
	TodayCheckIn    *domain.CheckIn   `json:"todayCheckIn"`
	NeedsCheckIn    bool              `json:"needsCheckIn"`
}

// MemberCard summarizes one team member's day.
type MemberCard struct {
	Member     domain.Member     `json:"member"`
	Priorities []domain.Priority `json:"priorities"`
	More       int               `json:"more"`
	Completion Completion        `json:"completion"`
}

// TeamView is the whole team's day.
type TeamView struct {
	Date        string       `json:"date"`
	Members     int          `json:"members"`
	ActiveToday int          `json:"activeToday"`
	Completion  Completion   `json:"completion"`
	Focus       []Keyword    `json:"focus"`
	Cards       []MemberCard `json:"cards"`
}

// Day is one column of the weekly view.
type Day struct {
	Date       string            `json:"date"`
	Weekday    string            `json:"weekday"`
	IsToday    bool              `json:"isToday"`
	Priorities []domain.Priority `json:"priorities"`
	CheckIn    *domain.CheckIn   `json:"checkIn"`
}

// WeeklyView summarizes the current week.
type WeeklyView struct {
	Week       calendar.Week         `json:"week"`
	Completion Completion            `json:"completion"`
	Statuses   map[domain.Status]int `json:"statuses"`
	CheckIns   int                   `json:"checkIns"`
	Moods      MoodStats             `json:"moods"`
	Days       []Day                 `json:"days"`
}

// Personal builds userID's dashboard for today within week.
func Personal(ps []domain.Priority, cs []domain.CheckIn, userID, today string, week calendar.Week) PersonalView {
	mine := ForUser(ps, userID)
	myCheckIns := CheckInsForUser(cs, userID)
	todays := Today(mine, today)

	v := PersonalView{
		UserID:          userID,
		Date:            today,
		Week:            week,
		Today:           todays,
		TodayCompletion: CompletionOf(todays),
		WeekCompletion:  CompletionOf(ThisWeek(mine, week)),
		TotalDone:       CompletionOf(mine).Done,
		Streak:          Streak(myCheckIns, today),
	}
	if on := CheckInsOn(myCheckIns, today); len(on) > 0 {
		c := on[0]
		v.TodayCheckIn = &c
	}
	v.NeedsCheckIn = v.TodayCheckIn == nil
	return v
}

// Team builds the team dashboard for today. Cards follow the member order.
func Team(members []domain.Member, ps []domain.Priority, today string) TeamView {
	todays := Today(ps, today)
	v := TeamView{
		Date:       today,
		Members:    len(members),
		Completion: CompletionOf(todays),
		Focus:      FocusKeywords(todays, FocusLimit),
		Cards:      make([]MemberCard, 0, len(members)),
	}
	for _, m := range members {
		own := ForUser(todays, m.ID)
		if len(own) > 0 {
			v.ActiveToday++
		}
		card := MemberCard{Member: m, Priorities: own, Completion: CompletionOf(own)}
		if len(own) > CardLimit {
			card.Priorities = own[:CardLimit]
			card.More = len(own) - CardLimit
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}

// Weekly builds the week summary. An empty userID covers everyone. When a
// day has several check-ins the first one is shown.
func Weekly(ps []domain.Priority, cs []domain.CheckIn, userID, today string, week calendar.Week) WeeklyView {
	if userID != "" {
		ps = ForUser(ps, userID)
		cs = CheckInsForUser(cs, userID)
	}
	weekPs := ThisWeek(ps, week)
	weekCs := CheckInsThisWeek(cs, week)

	v := WeeklyView{
		Week:       week,
		Completion: CompletionOf(weekPs),
		Statuses:   StatusCounts(weekPs),
		CheckIns:   len(weekCs),
		Moods:      Moods(weekCs),
	}
	for _, d := range week.Days() {
		day := Day{Date: d, IsToday: d == today, Priorities: Today(weekPs, d)}
		if t, err := time.Parse(calendar.DayLayout, d); err == nil {
			day.Weekday = t.Weekday().String()
		}
		if on := CheckInsOn(weekCs, d); len(on) > 0 {
			c := on[0]
			day.CheckIn = &c
		}
		v.Days = append(v.Days, day)
	}
	return v
}
