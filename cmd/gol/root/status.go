package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gamelife/internal/engine"
	"gamelife/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats, rank, and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.Player()
			u := svc.User()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Status — "+u.Username))
			fmt.Fprintln(out, ui.Panel.Render(strings.Join([]string{
				ui.LabelValue("Rank", ui.Gold.Render(p.Rank())+" "+ui.IconCrown),
				ui.LabelValue("Level", p.Level),
				ui.LabelValue("XP", fmt.Sprintf("%d  %s", p.XP, ui.ProgressBar(p.ProgressToNextLevel(), 24))),
			}, "\n")))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			fmt.Fprintf(out, "- Completed: %d (early: %d, critical: %d)\n",
				p.TasksCompleted, p.TasksCompletedEarly, p.CriticalTasksCompleted)
			fmt.Fprintf(out, "- Failed: %d\n", p.TasksFailed)
			fmt.Fprintf(out, "- Streak: %d %s (longest %d)\n", p.CurrentStreak, ui.IconFire, p.LongestStreak)
			fmt.Fprintf(out, "- Achievements: %d %s\n", len(p.Achievements), ui.IconTrophy)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📈 Active tasks by priority"))
			counts := map[engine.Priority]int{}
			for _, t := range svc.ActiveTasks(engine.SortByAdded) {
				counts[t.Priority]++
			}
			max := 0
			for _, n := range counts {
				if n > max {
					max = n
				}
			}
			for _, pr := range []engine.Priority{engine.PriorityCritical, engine.PriorityHigh, engine.PriorityMedium, engine.PriorityLow} {
				fmt.Fprintf(out, "- %-8s %s %d\n", pr, bar(counts[pr], max, 20), counts[pr])
			}
			return nil
		},
	}

	return cmd
}

func bar(n, max, width int) string {
	if max <= 0 {
		return ui.Muted.Render(strings.Repeat("░", width))
	}
	filled := n * width / max
	return ui.Good.Render(strings.Repeat("█", filled)) + ui.Muted.Render(strings.Repeat("░", width-filled))
}
