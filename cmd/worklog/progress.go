package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/worklog-go"
	"github.com/benjamonnguyen/worklog-go/tracker"
)

func newProgressCmd(flags *globalFlags) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Record and review daily progress"}

	var (
		entry tracker.ProgressEntry
		date  string
		mood  string
	)
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log progress for today (or --date), replacing that day's entry",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			if date != "" {
				d, err := worklog.ParseDate(date)
				if err != nil {
					return err
				}
				entry.Date = d
			}
			entry.Mood = worklog.Mood(mood)
			p, err := a.svc.LogProgress(cmd.Context(), a.userID, entry)
			if err != nil {
				return err
			}
			printProgress(a.printer, p)
			return nil
		}),
	}
	logCmd.Flags().IntVarP(&entry.TasksCompleted, "tasks", "t", 0, "tasks completed")
	logCmd.Flags().Float64Var(&entry.HoursWorked, "hours", 0, "hours worked")
	logCmd.Flags().StringVarP(&entry.Notes, "notes", "n", "", "notes")
	logCmd.Flags().StringVar(&mood, "mood", string(worklog.MoodGood), "great|good|neutral|tired|stressed")
	logCmd.Flags().StringVar(&date, "date", "", "YYYY-MM-DD (default today)")

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's entry",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			p, ok, err := a.svc.TodayProgress(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			if !ok {
				a.printer.Muted("Nothing logged today. Use `worklog progress log`.")
				return nil
			}
			printProgress(a.printer, p)
			return nil
		}),
	}

	var filter tracker.ProgressFilter
	var sort string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List progress entries",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			filter.Sort = tracker.ProgressSort(sort)
			res, err := a.svc.ListProgress(cmd.Context(), a.userID, filter)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, p := range res.Items {
				rows = append(rows, []string{
					p.ProgressDate.Format(worklog.DateLayout),
					strconv.Itoa(p.TasksCompleted),
					fmt.Sprintf("%.1fh", p.HoursWorked),
					p.Mood.Emoji() + " " + string(p.Mood),
					p.Notes,
				})
			}
			a.printer.Table([]string{"Date", "Tasks", "Hours", "Mood", "Notes"}, rows)
			a.printer.Muted("Showing %d of %d entries", len(res.Items), res.Total)
			return nil
		}),
	}
	listCmd.Flags().StringVarP(&filter.Search, "search", "s", "", "match notes")
	listCmd.Flags().StringVar(&filter.Mood, "mood", "all", "all|great|good|neutral|tired|stressed")
	listCmd.Flags().StringVar(&sort, "sort", string(tracker.SortRecent), "recent|oldest|mostTasks")

	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show this week's totals and the activity calendar",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			o, err := a.svc.ProgressOverview(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			a.printer.Title("This week")
			a.printer.Fields(
				"Tasks completed", strconv.Itoa(o.WeekTasks),
				"Hours worked", fmt.Sprintf("%.1f", o.WeekHours),
			)
			a.printer.Title("Activity")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderCalendar(o.Calendar))
			return nil
		}),
	}

	progress.AddCommand(logCmd, todayCmd, listCmd, calendarCmd)
	return progress
}

func printProgress(p printer, e worklog.ExistingDailyProgressRecord) {
	p.Title(e.ProgressDate.Format("Monday, Jan 2 2006"))
	p.Fields(
		"Tasks completed", strconv.Itoa(e.TasksCompleted),
		"Hours worked", fmt.Sprintf("%.1f", e.HoursWorked),
		"Mood", e.Mood.Emoji()+" "+string(e.Mood),
	)
	if e.Notes != "" {
		p.Muted("%s", e.Notes)
	}
}
