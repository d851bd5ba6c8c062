package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sadopc/mindease/internal/board"
	"github.com/sadopc/mindease/internal/export"
	"github.com/sadopc/mindease/internal/workspace"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage board tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskEditCmd(),
		newTaskMoveCmd(),
		newTaskRemoveCmd(),
		newTaskCheckCmd(),
		newTaskImportCmd(),
	)
	return cmd
}

// findTask resolves an id or a unique id prefix.
func findTask(ws *workspace.Workspace, ref string) (board.Task, error) {
	ref = strings.TrimSpace(ref)
	if t, err := ws.Task(ref); err == nil {
		return t, nil
	}
	var matches []board.Task
	for _, t := range ws.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return board.Task{}, &board.NotFoundError{ID: ref}
	case 1:
		return matches[0], nil
	default:
		return board.Task{}, fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func checklistCell(items []board.ChecklistItem) string {
	done, total := board.ChecklistProgress(items)
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", done, total)
}

func printTasks(w io.Writer, tasks []board.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{shortID(t.ID), string(t.Status), string(t.Priority), checklistCell(t.Checklist), t.Title})
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "STATUS", "PRIORITY", "STEPS", "TITLE").
		Rows(rows...)
	fmt.Fprintln(w, tbl)
}

func printTask(w io.Writer, t board.Task) {
	fmt.Fprintf(w, "%s  %s\n", t.ID, t.Title)
	fmt.Fprintf(w, "  status: %s  priority: %s\n", t.Status, t.Priority)
	if t.Description != "" {
		fmt.Fprintf(w, "  %s\n", t.Description)
	}
	for _, item := range t.Checklist {
		mark := "[ ]"
		if item.Done {
			mark = "[x]"
		}
		fmt.Fprintf(w, "  %s %s\n", mark, item.Text)
	}
}

func newTaskAddCmd() *cobra.Command {
	var (
		desc     string
		status   board.Status
		priority board.Priority
		steps    []string
		suggest  bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to the top of its column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := board.CreateInput{
				Title:       args[0],
				Description: desc,
				Status:      status,
				Priority:    priority,
			}
			for _, s := range steps {
				if strings.TrimSpace(s) != "" {
					in.Checklist = append(in.Checklist, board.NewChecklistItem(s))
				}
			}
			if suggest && len(in.Checklist) == 0 {
				in.Checklist = board.SuggestChecklist(status)
			}

			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				t, err := ws.CreateTask(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q\n", shortID(t.ID), t.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "description")
	cmd.Flags().VarP(statusFlag(&status, board.StatusTodo), "status", "s", "column (todo|doing|done)")
	cmd.Flags().VarP(priorityFlag(&priority, board.PriorityMedium), "priority", "p", "priority (low|medium|high)")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "checklist step, repeatable")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "add suggested next steps when no --step is given")
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var status board.Status

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in board order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				var tasks []board.Task
				if status != "" {
					tasks = ws.Columns()[status]
				} else {
					tasks = ws.Columns().Flatten()
				}
				printTasks(cmd.OutOrStdout(), tasks)
				return nil
			})
		},
	}

	cmd.Flags().VarP(statusFlag(&status, ""), "status", "s", "only this column")
	return cmd
}

func newTaskEditCmd() *cobra.Command {
	var (
		title, desc string
		status      board.Status
		priority    board.Priority
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch board.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("desc") {
				patch.Description = &desc
			}
			if flags.Changed("status") {
				patch.Status = &status
			}
			if flags.Changed("priority") {
				patch.Priority = &priority
			}
			if patch.Empty() {
				return errors.New("nothing to change; pass --title, --desc, --status or --priority")
			}

			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				t, err := findTask(ws, args[0])
				if err != nil {
					return err
				}
				t, err = ws.UpdateTask(cmd.Context(), t.ID, patch)
				if err != nil {
					return err
				}
				printTask(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "new description")
	cmd.Flags().VarP(statusFlag(&status, ""), "status", "s", "new column")
	cmd.Flags().VarP(priorityFlag(&priority, ""), "priority", "p", "new priority")
	return cmd
}

func newTaskMoveCmd() *cobra.Command {
	var (
		to    board.Status
		index int
	)

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a task to a column and position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				t, err := findTask(ws, args[0])
				if err != nil {
					return err
				}
				target := to
				if target == "" {
					target = t.Status
				}
				if _, err := ws.MoveTask(cmd.Context(), t.ID, target, index); err != nil {
					return err
				}
				printTasks(cmd.OutOrStdout(), ws.Columns()[target])
				return nil
			})
		},
	}

	cmd.Flags().Var(statusFlag(&to, ""), "to", "target column (default: current)")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "position in the column, clamped")
	return cmd
}

func newTaskRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				t, err := findTask(ws, args[0])
				if err != nil {
					return err
				}
				if _, err := ws.RemoveTask(cmd.Context(), t.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", t.Title)
				return nil
			})
		},
	}
}

func newTaskCheckCmd() *cobra.Command {
	var item string

	cmd := &cobra.Command{
		Use:   "check <id>",
		Short: "Tick off the next checklist step",
		Long:  "Tick off the next open checklist step, or toggle a given step with --item.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				t, err := findTask(ws, args[0])
				if err != nil {
					return err
				}
				if item == "" {
					next, ok := board.NextChecklistItem(t.Checklist)
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "All steps done")
						return nil
					}
					item = next.ID
				}
				t, err = ws.ToggleChecklistItem(cmd.Context(), t.ID, item)
				if err != nil {
					return err
				}
				printTask(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "checklist item id to toggle")
	return cmd
}

func newTaskImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add tasks from a JSON or JSONC file",
		Long: `Add tasks from a JSON file. The file may hold an array of tasks or an
object with a "tasks" array, as written by "export json". Comments and
trailing commas are allowed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := export.ReadImport(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			return withWorkspace(cmd.Context(), func(_ *env, ws *workspace.Workspace) error {
				return importTasks(cmd.Context(), cmd.OutOrStdout(), ws, inputs)
			})
		},
	}
}

func importTasks(ctx context.Context, w io.Writer, ws *workspace.Workspace, inputs []board.CreateInput) error {
	tasks, err := ws.ImportTasks(ctx, inputs)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Imported %d tasks\n", len(tasks))
	return nil
}
