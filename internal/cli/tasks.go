package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/query"
	"github.com/sandeepkv93/taskpad/internal/store"
)

const clearDueValue = "none"

func newAddCmd(a *app) *cobra.Command {
	var due, priority string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Example: `  taskpad add "Buy milk"
  taskpad add "Pay rent" --due 2024-06-30 --priority high`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			t, added, err := a.store.Add(cmd.Context(), store.Draft{Text: strings.Join(args, " "), Due: due, Priority: p})
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}
			if !added {
				return fmt.Errorf("cli: task text is empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s\n", shortID(t.ID), t.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "priority: high, medium or low")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var filter, sortMode, search string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks through the filter, search and sort pipeline",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := query.Query{Filter: a.cfg.Filter(), Sort: a.cfg.Sort(), Search: search}
			if cmd.Flags().Changed("filter") {
				f, err := model.ParseFilter(filter)
				if err != nil {
					return err
				}
				q.Filter = f
			}
			if cmd.Flags().Changed("sort") {
				s, err := model.ParseSortMode(sortMode)
				if err != nil {
					return err
				}
				q.Sort = s
			}
			today := a.now()
			tasks := query.Visible(a.store.Snapshot(), q, today)
			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks.")
				return nil
			}
			fmt.Fprintln(out, renderTaskTable(tasks, today))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, pending, completed or overdue")
	cmd.Flags().StringVarP(&sortMode, "sort", "s", "", "default, priority, due or manual")
	cmd.Flags().StringVarP(&search, "search", "q", "", "substring of text, due date or priority")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolve(a.store, args[0])
			if err != nil {
				return err
			}
			_, err = a.store.ToggleCompleted(cmd.Context(), t.ID)
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}
			verb := "Completed"
			if t.Completed {
				verb = "Reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", verb, shortID(t.ID), t.Text)
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var text, due, priority string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's text, due date or priority",
		Example: `  taskpad edit 3f2a --text "Buy oat milk"
  taskpad edit 3f2a --due none --priority low`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolve(a.store, args[0])
			if err != nil {
				return err
			}
			var patch store.Patch
			if cmd.Flags().Changed("text") {
				patch.Text = &text
			}
			if cmd.Flags().Changed("due") {
				d := due
				if strings.EqualFold(d, clearDueValue) {
					d = ""
				}
				patch.Due = &d
			}
			if cmd.Flags().Changed("priority") {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if patch.Text == nil && patch.Due == nil && patch.Priority == nil {
				return fmt.Errorf("cli: nothing to change; use --text, --due or --priority")
			}
			changed, err := a.store.Update(cmd.Context(), t.ID, patch)
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "Task unchanged: text cannot be empty.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", shortID(t.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "new task text")
	cmd.Flags().StringVarP(&due, "due", "d", "", "new due date (YYYY-MM-DD, or none to clear)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolve(a.store, args[0])
			if err != nil {
				return err
			}
			removed, err := a.store.RemoveConfirmed(cmd.Context(), t.ID, confirmerFor(yes, cmd.InOrStdin(), cmd.OutOrStdout()))
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", shortID(t.ID), t.Text)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.store.Len()
			cleared, err := a.store.ClearConfirmed(cmd.Context(), confirmerFor(yes, cmd.InOrStdin(), cmd.OutOrStdout()))
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}
			if !cleared {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleared.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d tasks.\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a task to another position (1-based, store order)",
		Long: `Move a task within the stored order. Positions are 1-based and match
"taskpad list --sort manual".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("cli: invalid position %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("cli: invalid position %q", args[1])
			}
			if err := warnUnsaved(cmd, a.store.Reorder(cmd.Context(), from-1, to-1)); err != nil {
				return fmt.Errorf("move %d to %d of %d: %w", from, to, a.store.Len(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved task %d to %d.\n", from, to)
			return nil
		},
	}
}

// warnUnsaved reports a failed save on stderr and drops it. The change is
// already applied in memory and Close retries the save.
func warnUnsaved(cmd *cobra.Command, err error) error {
	if err != nil && errors.Is(err, store.ErrPersist) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: not saved: %v\n", err)
		return nil
	}
	return err
}

func resolve(s *store.Store, ref string) (model.Task, error) {
	t, ok := s.Resolve(ref)
	if !ok {
		return model.Task{}, fmt.Errorf("cli: no single task matches %q", ref)
	}
	return t, nil
}

func renderTaskTable(tasks []model.Task, today time.Time) string {
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		due := t.Due
		if due == "" {
			due = "-"
		} else if t.IsOverdue(today) {
			due += " (overdue)"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), done, t.Text, strings.ToUpper(string(t.Priority)), due, shortID(t.ID)})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "done", "task", "priority", "due", "id").
		Rows(rows...).
		String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
