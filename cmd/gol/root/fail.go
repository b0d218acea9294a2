package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gamelife/internal/ui"
)

func newFailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fail <id>",
		Short: "Fail a task (costs XP, breaks the streak)",
		Args:  taskIDArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := svc.FailTask(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s #%d %s\n",
				ui.Bad.Render(ui.IconSkull+" Failed"), res.TaskID,
				ui.Bad.Render(fmt.Sprintf("-%d XP", res.XPLost)))
			if res.LevelDown {
				fmt.Fprintf(out, "%s %s\n", ui.Warn.Render(ui.IconWarn+" Level decreased"),
					ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.Level)))
			}
			fmt.Fprintln(out, ui.Muted.Render("Streak reset to 0."))
			return nil
		},
	}

	return cmd
}

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an active task",
		Args:  taskIDArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			if err := svc.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render("Deleted"), id)
			return nil
		},
	}

	return cmd
}
