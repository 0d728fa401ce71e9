package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/stats"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals, the status breakdown and the next 7 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := a.now()
			tasks := a.store.Snapshot()
			summary := stats.Compute(tasks, today)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Total: %d  Completed: %d  Overdue: %d\n", summary.Total, summary.Completed, summary.Overdue)
			fmt.Fprintf(out, "Progress: %d%%\n\n", summary.ProgressPercent)
			for _, b := range summary.Buckets() {
				fmt.Fprintf(out, "%-10s %d\n", b.Name, b.Value)
			}
			fmt.Fprintln(out, "\nUpcoming (pending by due date):")
			for _, d := range stats.NewUpcoming(today).Counts(tasks) {
				fmt.Fprintf(out, "%s %d\n", d.Date, d.Pending)
			}
			return nil
		},
	}
}

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "Show or set the dashboard theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, a.store.Theme())
				return nil
			}
			if args[0] == "toggle" {
				th, err := a.store.ToggleTheme(cmd.Context())
				if err := warnUnsaved(cmd, err); err != nil {
					return err
				}
				fmt.Fprintf(out, "Theme set to %s.\n", th)
				return nil
			}
			th, err := model.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := warnUnsaved(cmd, a.store.SetTheme(cmd.Context(), th)); err != nil {
				return err
			}
			fmt.Fprintf(out, "Theme set to %s.\n", th)
			return nil
		},
	}
}
