package root

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"gamelife/internal/engine"
	"gamelife/internal/ui"
)

func newListCmd() *cobra.Command {
	var sortBy string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			order, err := engine.ParseSortOrder(sortBy)
			if err != nil {
				return err
			}

			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks := svc.ActiveTasks(order)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconTask, "Active Tasks"))
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing to do — add a task)"))
			} else {
				fmt.Fprintln(out, renderTaskTable(tasks))
			}

			if all {
				done := svc.CompletedTasks()
				if len(done) > 0 {
					fmt.Fprintln(out, "")
					fmt.Fprintln(out, ui.Heading(ui.IconDone, "Completed"))
					fmt.Fprintln(out, renderTaskTable(done))
				}
				failed := svc.FailedTasks()
				if len(failed) > 0 {
					fmt.Fprintln(out, "")
					fmt.Fprintln(out, ui.Heading(ui.IconSkull, "Failed"))
					fmt.Fprintln(out, renderTaskTable(failed))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", "added", "Sort order (added|priority|due)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed and failed tasks")

	return cmd
}

func renderTaskTable(tasks []engine.Task) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Title", "Priority", "Status", "Due", "Description"})
	for _, task := range tasks {
		due := ""
		if task.DueDate != nil {
			due = task.DueDate.Format("2006-01-02")
		}
		t.AppendRow(table.Row{task.ID, task.Title, string(task.Priority), string(task.Status), due, task.Description})
	}
	return t.Render()
}
