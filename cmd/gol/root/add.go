package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gamelife/internal/engine"
	"gamelife/internal/ui"
)

func newAddCmd() *cobra.Command {
	var priority string
	var due string
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// Input validation is the presentation layer's job; the engine
			// only sees a parsed task.
			p, err := engine.ParsePriority(priority)
			if err != nil {
				return err
			}
			var dueDate *time.Time
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
				}
				dueDate = &d
			}

			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := svc.AddTask(ctx, engine.AddTaskInput{
				Title:       args[0],
				Priority:    p,
				DueDate:     dueDate,
				Description: description,
			})
			if err != nil {
				return err
			}

			dueText := "no due date"
			if task.DueDate != nil {
				dueText = "due " + task.DueDate.Format("2006-01-02")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s  %s  %s\n",
				ui.Good.Render(ui.IconPlus+" Added"), task.ID, task.Title,
				ui.PriorityText(task.Priority), ui.Muted.Render(dueText))
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low|medium|high|critical)")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&description, "desc", "m", "", "Description")

	return cmd
}
