package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/worklog-go"
	"github.com/benjamonnguyen/worklog-go/tracker"
)

const displayTimeLayout = "Jan 2, 2006 15:04"

func newTicketCmd(flags *globalFlags) *cobra.Command {
	ticket := &cobra.Command{Use: "ticket", Aliases: []string{"tickets"}, Short: "Create and track support tickets"}

	var in tracker.NewTicket
	var priority string
	createCmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Submit a ticket",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, a *app) error {
			in.Title = strings.Join(args, " ")
			in.Priority = worklog.TicketPriority(priority)
			t, err := a.svc.CreateTicket(cmd.Context(), a.userID, in)
			if err != nil {
				return err
			}
			printTicket(a.printer, t)
			return nil
		}),
	}
	createCmd.Flags().StringVarP(&in.Description, "description", "d", "", "ticket description")
	createCmd.Flags().StringVarP(&priority, "priority", "p", string(worklog.PriorityMedium), "priority: low|medium|high")

	var filter tracker.TicketFilter
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, a *app) error {
			res, err := a.svc.ListTickets(cmd.Context(), a.userID, filter)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, t := range res.Items {
				rows = append(rows, []string{
					t.Number,
					t.Title,
					string(t.Status),
					string(t.Priority),
					t.DateSubmitted.Local().Format(displayTimeLayout),
					string(t.ID),
				})
			}
			a.printer.Table([]string{"Number", "Title", "Status", "Priority", "Submitted", "ID"}, rows)
			a.printer.Muted("Showing %d of %d tickets", len(res.Items), res.Total)
			return nil
		}),
	}
	listCmd.Flags().StringVarP(&filter.Search, "search", "s", "", "match title, number or description")
	listCmd.Flags().StringVar(&filter.Status, "status", "all", "all|open|in-progress|resolved|closed")
	listCmd.Flags().StringVar(&filter.Priority, "priority", "all", "all|low|medium|high")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, a *app) error {
			t, err := a.svc.GetTicket(cmd.Context(), a.userID, worklog.TicketID(args[0]))
			if err != nil {
				return err
			}
			printTicket(a.printer, t)
			return nil
		}),
	}

	var status, newPriority, title, description string
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a ticket's status, priority or text",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, a *app) error {
			var u tracker.TicketUpdate
			if cmd.Flags().Changed("status") {
				s := worklog.TicketStatus(status)
				u.Status = &s
			}
			if cmd.Flags().Changed("priority") {
				p := worklog.TicketPriority(newPriority)
				u.Priority = &p
			}
			if cmd.Flags().Changed("title") {
				u.Title = &title
			}
			if cmd.Flags().Changed("description") {
				u.Description = &description
			}
			if u == (tracker.TicketUpdate{}) {
				return fmt.Errorf("nothing to update: pass --status, --priority, --title or --description")
			}
			t, err := a.svc.UpdateTicket(cmd.Context(), a.userID, worklog.TicketID(args[0]), u)
			if err != nil {
				return err
			}
			printTicket(a.printer, t)
			return nil
		}),
	}
	updateCmd.Flags().StringVar(&status, "status", "", "open|in-progress|resolved|closed")
	updateCmd.Flags().StringVar(&newPriority, "priority", "", "low|medium|high")
	updateCmd.Flags().StringVar(&title, "title", "", "new title")
	updateCmd.Flags().StringVarP(&description, "description", "d", "", "new description")

	ticket.AddCommand(createCmd, listCmd, showCmd, updateCmd)
	return ticket
}

func printTicket(p printer, t worklog.ExistingTicketRecord) {
	p.Title(fmt.Sprintf("%s  %s", t.Number, t.Title))
	resolved := "-"
	if t.DateResolved != nil {
		resolved = t.DateResolved.Local().Format(displayTimeLayout)
	}
	p.Fields(
		"ID", string(t.ID),
		"Status", string(t.Status),
		"Priority", string(t.Priority),
		"Submitted", t.DateSubmitted.Local().Format(displayTimeLayout),
		"Resolved", resolved,
	)
	if t.Description != "" {
		p.Muted("%s", t.Description)
	}
}
