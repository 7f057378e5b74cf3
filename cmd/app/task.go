package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/tui"
	"github.com/spf13/cobra"
)

func taskCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the tasks sessions can be linked to",
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an open task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("task title required")
			}
			if len(title) > config.MaxTaskTitleLength {
				return fmt.Errorf("task title longer than %d characters", config.MaxTaskTitleLength)
			}
			return withApp(cmd, opts, func(a *app) error {
				id, err := a.db.AddTask(cmd.Context(), a.userID, title)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added task #%d: %s\n", id, title)
				return nil
			})
		},
	}

	var all bool
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List open tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				tasks, err := a.db.GetTasks(cmd.Context(), a.userID, all)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(tasks) == 0 {
					fmt.Fprintln(out, "No tasks.")
					return nil
				}
				for _, t := range tasks {
					mark := " "
					if t.Status == models.TaskDone {
						mark = "x"
					}
					fmt.Fprintf(out, "[%s] #%-4d %s  (%s)\n", mark, t.ID, t.Title, tui.FormatPomodoroCount(t.Pomodoros))
				}
				return nil
			})
		},
	}
	listCmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")

	cmd.AddCommand(
		addCmd,
		listCmd,
		taskIDCmd(opts, "done <id>", "Mark a task completed", "Completed", func(a *app, cmd *cobra.Command, id int64) error {
			return a.db.CompleteTask(cmd.Context(), id)
		}),
		taskIDCmd(opts, "reopen <id>", "Reopen a completed task", "Reopened", func(a *app, cmd *cobra.Command, id int64) error {
			return a.db.ReopenTask(cmd.Context(), id)
		}),
		taskIDCmd(opts, "rm <id>", "Delete a task", "Deleted", func(a *app, cmd *cobra.Command, id int64) error {
			return a.db.DeleteTask(cmd.Context(), id)
		}),
	)
	return cmd
}

// taskIDCmd builds a subcommand that applies fn to one of the profile's tasks.
func taskIDCmd(opts *options, use, short, verb string, fn func(a *app, cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			return withApp(cmd, opts, func(a *app) error {
				t, err := a.db.GetTask(cmd.Context(), id)
				if err != nil {
					return err
				}
				if t.UserID != a.userID {
					return fmt.Errorf("task #%d belongs to another profile", id)
				}
				if err := fn(a, cmd, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s task #%d: %s\n", verb, id, t.Title)
				return nil
			})
		},
	}
}
