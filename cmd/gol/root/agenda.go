package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"gamelife/internal/engine"
	"gamelife/internal/ui"
)

func newAgendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show active tasks grouped by due day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks := svc.ActiveTasks(engine.SortByDueDate)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconClock, "Agenda"))

			byDay := map[string][]engine.Task{}
			var undated []engine.Task
			for _, t := range tasks {
				if t.DueDate == nil {
					undated = append(undated, t)
					continue
				}
				day := t.DueDate.Format("2006-01-02")
				byDay[day] = append(byDay[day], t)
			}

			days := make([]string, 0, len(byDay))
			for day := range byDay {
				days = append(days, day)
			}
			sort.Strings(days)

			if len(days) == 0 && len(undated) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no active tasks)"))
				return nil
			}
			for _, day := range days {
				fmt.Fprintln(out, ui.H2.Render(day))
				for _, t := range byDay[day] {
					fmt.Fprintf(out, "  • #%d %s %s %s\n", t.ID, t.Title,
						ui.PriorityText(t.Priority), ui.StatusText(t.Status))
				}
			}
			if len(undated) > 0 {
				fmt.Fprintln(out, ui.H2.Render("No due date"))
				for _, t := range undated {
					fmt.Fprintf(out, "  • #%d %s %s\n", t.ID, t.Title, ui.PriorityText(t.Priority))
				}
			}
			return nil
		},
	}

	return cmd
}

func newOverdueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Flag active tasks whose due date has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := svc.CheckOverdueTasks(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if n == 0 {
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Nothing overdue."))
				return nil
			}
			fmt.Fprintf(out, "%s %d task(s) now overdue. They can still be completed.\n",
				ui.Warn.Render(ui.IconWarn+" Overdue:"), n)
			return nil
		},
	}

	return cmd
}
