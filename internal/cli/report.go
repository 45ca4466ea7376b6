package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/insights"
	"github.com/tbourn/priority-radar/internal/repo"
	"github.com/tbourn/priority-radar/internal/services"
)

type reportFlags struct {
	user   string
	seed   string
	team   bool
	asJSON bool
}

func newReportCmd(a *app) *cobra.Command {
	f := &reportFlags{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render insights for a seeded dataset",
		Long: `Load a dataset into a private in-memory store and print one of the
dashboards. The dataset defaults to SEED_PATH, or the built-in demo data.`,
	}
	cmd.PersistentFlags().StringVarP(&f.user, "user", "u", "", "User to report on (default DEFAULT_USER_ID)")
	cmd.PersistentFlags().StringVar(&f.seed, "seed", "", "Seed file, JSON or YAML (default SEED_PATH)")
	cmd.PersistentFlags().BoolVar(&f.asJSON, "json", false, "Print the view as JSON")

	weekly := &cobra.Command{
		Use:   "weekly",
		Short: "This week's summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.report(cmd.Context(), cmd.OutOrStdout(), f, "weekly")
		},
	}
	weekly.Flags().BoolVar(&f.team, "team", false, "Summarize the whole team")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "personal",
			Short: "One user's dashboard for today",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.report(cmd.Context(), cmd.OutOrStdout(), f, "personal")
			},
		},
		&cobra.Command{
			Use:   "team",
			Short: "The team's day at a glance",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.report(cmd.Context(), cmd.OutOrStdout(), f, "team")
			},
		},
		weekly,
	)
	return cmd
}

// snapshot is everything a report reads, loaded once.
type snapshot struct {
	priorities []domain.Priority
	checkIns   []domain.CheckIn
	members    []domain.Member
}

func (s snapshot) member(id string) (domain.Member, bool) {
	for _, m := range s.members {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Member{}, false
}

// loadSnapshot seeds a private in-memory store from path and reads it back
// through the services.
func loadSnapshot(ctx context.Context, path string, cal *calendar.Calendar) (snapshot, error) {
	d, err := repo.LoadDataset(path)
	if err != nil {
		return snapshot{}, err
	}
	db, err := repo.OpenSQLite(fmt.Sprintf("file:report_%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		return snapshot{}, err
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repo.AutoMigrate(db); err != nil {
		return snapshot{}, err
	}
	if err := repo.Seed(ctx, db, d, cal); err != nil {
		return snapshot{}, err
	}
	return readSnapshot(ctx, db, cal)
}

func readSnapshot(ctx context.Context, db *gorm.DB, cal *calendar.Calendar) (s snapshot, err error) {
	if s.priorities, err = services.NewPriorityService(db, cal, nil).GetAll(ctx); err != nil {
		return s, err
	}
	if s.checkIns, err = services.NewCheckInService(db, cal, nil).GetAll(ctx); err != nil {
		return s, err
	}
	s.members, err = services.NewUserService(db, nil).GetAll(ctx)
	return s, err
}

func (a *app) report(ctx context.Context, w io.Writer, f *reportFlags, kind string) error {
	cal := a.calendar()
	path := f.seed
	if path == "" {
		path = a.cfg.SeedPath
	}
	snap, err := loadSnapshot(ctx, path, cal)
	if err != nil {
		return err
	}

	uid := f.user
	if uid == "" {
		uid = a.cfg.DefaultUserID
	}
	today, week := cal.Today(), cal.ThisWeek()
	rd := newRenderer(w)

	var (
		view any
		out  string
	)
	switch kind {
	case "personal":
		m, ok := snap.member(uid)
		if !ok {
			return fmt.Errorf("%w: %q", services.ErrUserNotFound, uid)
		}
		v := insights.Personal(snap.priorities, snap.checkIns, uid, today, week)
		view, out = v, rd.personal(v, m)
	case "team":
		v := insights.Team(snap.members, snap.priorities, today)
		view, out = v, rd.team(v)
	case "weekly":
		label := "Team"
		if f.team {
			uid = ""
		} else if m, ok := snap.member(uid); ok {
			label = m.Name
		} else {
			return fmt.Errorf("%w: %q", services.ErrUserNotFound, uid)
		}
		v := insights.Weekly(snap.priorities, snap.checkIns, uid, today, week)
		view, out = v, rd.weekly(v, label)
	default:
		return fmt.Errorf("unknown report %q", kind)
	}

	if f.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
