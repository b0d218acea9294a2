package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gamelife/internal/ui"
)

func taskIDArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task",
		Args:  taskIDArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := svc.CompleteTask(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s #%d %s\n",
				ui.Good.Render(ui.IconDone+" Completed"), res.TaskID,
				ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPEarned)))
			if res.LeveledUp {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp,
					ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.Level)))
			}
			for _, a := range res.Achievements {
				fmt.Fprintf(out, "%s %s %s\n", ui.IconTrophy, ui.Gold.Render(a.Name),
					ui.Muted.Render(fmt.Sprintf("(+%d XP)", a.XPReward)))
			}
			if res.RankChanged {
				fmt.Fprintf(out, "%s You are now a %s!\n", ui.BadgeRankUp, ui.Gold.Render(res.NewRank))
			}
			p := svc.Player()
			fmt.Fprintf(out, "%s  streak %d %s\n",
				ui.LabelValue("XP", p.XP), p.CurrentStreak, ui.IconFire)
			return nil
		},
	}

	return cmd
}
