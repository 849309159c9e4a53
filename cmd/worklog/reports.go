package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/worklog-go/tracker"
)

func newDashboardCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Overview of recent learning, progress and tickets",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			profile, err := a.svc.Profile(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			d, err := a.svc.Dashboard(cmd.Context(), a.userID)
			if err != nil {
				return err
			}

			a.printer.Title(fmt.Sprintf("Welcome back, %s", profile.DisplayName()))
			a.printer.Fields(
				"Learning hours", fmt.Sprintf("%.1f", d.LearningHours),
				"Tasks completed", strconv.Itoa(d.TasksCompleted),
				"Open tickets", strconv.Itoa(d.OpenTickets),
				"Resolved tickets", strconv.Itoa(d.ResolvedTickets),
			)

			a.printer.Title("Weekly progress")
			var maxHours float64
			for _, pt := range d.Weekly {
				maxHours = max(maxHours, pt.Hours)
			}
			rows := make([][]string, 0, len(d.Weekly))
			for _, pt := range d.Weekly {
				rows = append(rows, []string{
					pt.Label,
					fmt.Sprintf("%.1f", pt.Hours),
					strconv.Itoa(pt.Tasks),
					Bar(pt.Hours, maxHours, 20),
				})
			}
			a.printer.Table([]string{"Day", "Hours", "Tasks", ""}, rows)

			a.printer.Title("Ticket status")
			printSlices(a.printer, d.StatusBreakdown, "%.0f")
			return nil
		}),
	}
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Totals and breakdowns across all records",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			r, err := a.svc.Report(cmd.Context(), a.userID)
			if err != nil {
				return err
			}

			a.printer.Title("Totals")
			a.printer.Fields(
				"Tickets", fmt.Sprintf("%d (%d open, %d resolved)", r.TotalTickets, r.OpenTickets, r.ResolvedTickets),
				"Learning", fmt.Sprintf("%.1f hours over %d sessions", r.LearningHours, r.LearningSessions),
				"Tasks completed", fmt.Sprintf("%d over %d days", r.TasksCompleted, r.ProgressDays),
				"Hours worked", fmt.Sprintf("%.1f", r.HoursWorked),
			)

			a.printer.Title("Learning hours by category")
			printSlices(a.printer, r.HoursByCategory, "%.1f")
			a.printer.Title("Tickets by priority")
			printSlices(a.printer, r.TicketsByPriority, "%.0f")
			return nil
		}),
	}
}

func printSlices(p printer, slices []tracker.Slice, valueFormat string) {
	if len(slices) == 0 {
		p.Muted("no data")
		return
	}
	var maxV float64
	for _, s := range slices {
		maxV = max(maxV, s.Value)
	}
	rows := make([][]string, 0, len(slices))
	for _, s := range slices {
		rows = append(rows, []string{s.Name, fmt.Sprintf(valueFormat, s.Value), Bar(s.Value, maxV, 20)})
	}
	p.Table([]string{"Name", "Value", ""}, rows)
}
