package root

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"gamelife/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"badges"},
		Short:   "List earned achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))

			achievements := svc.Player().Achievements
			if len(achievements) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet — complete a task)"))
				return nil
			}

			t := table.NewWriter()
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"Earned", "Name", "Reward", "Description"})
			for _, a := range achievements {
				t.AppendRow(table.Row{
					a.DateEarned.Format("2006-01-02"),
					a.Name,
					fmt.Sprintf("+%d XP", a.XPReward),
					a.Description,
				})
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	return cmd
}

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the XP event log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			events, err := svc.RecentEvents(ctx, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBolt, "XP Log"))
			if len(events) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				return nil
			}
			for _, e := range events {
				delta := ui.Good.Render(fmt.Sprintf("%+d", e.XPDelta))
				if e.XPDelta < 0 {
					delta = ui.Bad.Render(fmt.Sprintf("%+d", e.XPDelta))
				}
				task := ""
				if e.TaskID != nil {
					task = fmt.Sprintf(" (task #%d)", *e.TaskID)
				}
				fmt.Fprintf(out, "%s  %s XP  %s%s\n",
					ui.Muted.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")),
					delta, e.Kind, task)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max events to show (0 = all)")

	return cmd
}
