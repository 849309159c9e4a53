package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/worklog-go"
	"github.com/benjamonnguyen/worklog-go/tracker"
)

func newLearningCmd(flags *globalFlags) *cobra.Command {
	learning := &cobra.Command{Use: "learning", Aliases: []string{"learn"}, Short: "Log what you learned"}

	var (
		in   tracker.NewLearningLog
		date string
	)
	createCmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Add a learning log",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, a *app) error {
			in.Title = strings.Join(args, " ")
			if date != "" {
				d, err := worklog.ParseDate(date)
				if err != nil {
					return err
				}
				in.LogDate = d
			}
			l, err := a.svc.CreateLearningLog(cmd.Context(), a.userID, in)
			if err != nil {
				return err
			}
			printLearningLog(a.printer, l)
			return nil
		}),
	}
	createCmd.Flags().StringVarP(&in.Description, "description", "d", "", "what you studied")
	createCmd.Flags().StringVar(&in.Skills, "skills", "", "comma separated skills")
	createCmd.Flags().Float64Var(&in.DurationHours, "hours", 1, "time spent in hours")
	createCmd.Flags().StringVar(&in.Category, "category", tracker.DefaultCategory, "category, e.g. programming|design|soft-skills|general")
	createCmd.Flags().StringVar(&date, "date", "", "log date as YYYY-MM-DD (default today)")

	var filter tracker.LearningFilter
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List learning logs",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			res, err := a.svc.ListLearningLogs(cmd.Context(), a.userID, filter)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, l := range res.Items {
				rows = append(rows, []string{
					l.LogDate.Format(worklog.DateLayout),
					l.Title,
					l.Category,
					fmt.Sprintf("%.1fh", l.DurationHours),
					strings.Join(l.SkillsLearned, ", "),
					string(l.ID),
				})
			}
			a.printer.Table([]string{"Date", "Title", "Category", "Duration", "Skills", "ID"}, rows)
			a.printer.Muted("Showing %d of %d logs", len(res.Items), res.Total)
			return nil
		}),
	}
	listCmd.Flags().StringVarP(&filter.Search, "search", "s", "", "match title, description or skills")
	listCmd.Flags().StringVar(&filter.Category, "category", "all", "category or all")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a learning log",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, a *app) error {
			l, err := a.svc.GetLearningLog(cmd.Context(), a.userID, worklog.LearningLogID(args[0]))
			if err != nil {
				return err
			}
			printLearningLog(a.printer, l)
			return nil
		}),
	}

	learning.AddCommand(createCmd, listCmd, showCmd)
	return learning
}

func printLearningLog(p printer, l worklog.ExistingLearningLogRecord) {
	p.Title(l.Title)
	p.Fields(
		"ID", string(l.ID),
		"Date", l.LogDate.Format(worklog.DateLayout),
		"Category", l.Category,
		"Duration", fmt.Sprintf("%.1f hours", l.DurationHours),
		"Skills", strings.Join(l.SkillsLearned, ", "),
	)
	if l.Description != "" {
		p.Muted("%s", l.Description)
	}
}
