package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/database"
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/notify"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	"github.com/akyairhashvil/pomotrack/internal/report"
	"github.com/akyairhashvil/pomotrack/internal/tui"
	"github.com/akyairhashvil/pomotrack/internal/util"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, opts *options, fn func(a *app) error) error {
	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return day, nil
}

func parsePhase(value string) (models.Phase, error) {
	switch value {
	case "", "work", "focus":
		return models.PhaseWork, nil
	case "short", "short_break":
		return models.PhaseShortBreak, nil
	case "long", "long_break":
		return models.PhaseLongBreak, nil
	}
	return "", fmt.Errorf("unknown phase %q (want work, short or long)", value)
}

func runCmd(opts *options) *cobra.Command {
	var (
		phaseFlag string
		taskID    int64
		quiet     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer in the terminal without the full UI",
		Long: "Starts a phase, or resumes the paused one, and counts it down until it ends.\n" +
			"Interrupting with Ctrl+C pauses the session so it can be resumed later.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			phase, err := parsePhase(phaseFlag)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				out := cmd.OutOrStdout()
				dispatcher := notify.NewDispatcher(a.db, notify.WithListener(func(ev pomodoro.Event) {
					_, body := notify.Message(ev)
					fmt.Fprintf(out, "\n%s\n", body)
				}))
				mgr, err := a.manager(cmd.Context(), pomodoro.WithNotifier(dispatcher))
				if err != nil {
					return err
				}

				switch mgr.Snapshot().State {
				case pomodoro.StatePaused:
					err = mgr.Resume(cmd.Context())
				case pomodoro.StateRunning:
				default:
					var task *int64
					if taskID > 0 {
						task = util.Ptr(taskID)
					}
					err = mgr.Start(cmd.Context(), phase, task)
				}
				if err != nil {
					return err
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				err = mgr.Drive(ctx, pomodoro.Ticker{Interval: a.cfg.TickInterval}, func(snap pomodoro.Snapshot, tickErr error) {
					if tickErr != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "\ntimer not saved: %v\n", tickErr)
					}
					if !quiet && snap.State == pomodoro.StateRunning {
						remaining := time.Duration(snap.Session.RemainingSeconds) * time.Second
						fmt.Fprintf(out, "\r%-11s %s ", snap.Session.Phase.Label(), tui.FormatTimeRemaining(remaining))
					}
				})
				if errors.Is(err, context.Canceled) {
					// Interrupted: keep the session resumable.
					if mgr.Snapshot().State == pomodoro.StateRunning {
						if perr := mgr.Pause(context.Background()); perr != nil {
							return perr
						}
					}
					fmt.Fprintln(out, "\nPaused. Run again to resume.")
					return nil
				}
				if err != nil {
					return err
				}
				printSnapshot(out, mgr.Snapshot(), nil)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&phaseFlag, "phase", "work", "phase to start: work, short or long")
	cmd.Flags().Int64Var(&taskID, "task", 0, "task id to link to the session")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the countdown")
	return cmd
}

func statusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				mgr, err := a.manager(cmd.Context())
				if err != nil {
					return err
				}
				snap := mgr.Snapshot()
				var task *models.Task
				if snap.Session.TaskID != nil {
					t, err := a.db.GetTask(cmd.Context(), *snap.Session.TaskID)
					if err == nil {
						task = &t
					}
				}
				printSnapshot(cmd.OutOrStdout(), snap, task)
				return nil
			})
		},
	}
}

func printSnapshot(w io.Writer, snap pomodoro.Snapshot, task *models.Task) {
	if !snap.HasSession() {
		fmt.Fprintln(w, "No session. Start one with: "+config.AppName+" run")
		return
	}
	s := snap.Session
	remaining := time.Duration(s.RemainingSeconds) * time.Second
	fmt.Fprintf(w, "State:   %s\n", snap.State)
	fmt.Fprintf(w, "Phase:   %s\n", s.Phase.Label())
	fmt.Fprintf(w, "Status:  %s\n", tui.FormatSessionStatus(snap.State, remaining))
	fmt.Fprintf(w, "Counts:  %d focus, %d breaks\n", s.CompletedWorkCount, s.CompletedBreakCount)
	if snap.Active() {
		work := s.CompletedWorkCount
		if s.Phase == models.PhaseWork {
			work++
		}
		next := pomodoro.NextPhase(s.Phase, work, snap.Settings.SessionsUntilLongBreak)
		fmt.Fprintf(w, "Next:    %s\n", next.Label())
	}
	switch {
	case task != nil:
		fmt.Fprintf(w, "Task:    #%d %s\n", task.ID, task.Title)
	case s.TaskID != nil:
		fmt.Fprintf(w, "Task:    #%d\n", util.Deref(s.TaskID))
	}
}

func statsCmd(opts *options) *cobra.Command {
	var (
		date     string
		sessions int
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a day's focus time and phase log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				ctx := cmd.Context()
				out := cmd.OutOrStdout()
				from, to := database.DayBounds(day)
				logs, err := a.db.GetPhaseLogs(ctx, a.userID, from, to)
				if err != nil {
					return err
				}
				st := database.SummarizeLogs(logs)
				fmt.Fprintf(out, "%s\n", from.Format("Monday 02 Jan 2006"))
				fmt.Fprintf(out, "Focus:       %s\n", report.FormatFocus(st.FocusSeconds))
				fmt.Fprintf(out, "Pomodoros:   %d\n", st.CompletedWork)
				fmt.Fprintf(out, "Breaks:      %d\n", st.CompletedBreaks)
				fmt.Fprintf(out, "Skipped:     %d\n", st.Skipped)
				fmt.Fprintf(out, "Interrupted: %d\n", st.Interrupted)
				for _, l := range logs {
					fmt.Fprintln(out, "  "+tui.FormatLogLine(l))
				}

				if sessions <= 0 {
					return nil
				}
				list, err := a.db.ListSessions(ctx, a.userID, sessions)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "\nRecent sessions")
				for _, s := range list {
					fmt.Fprintf(out, "  %s  %-8s %-11s %d focus, %d breaks\n",
						s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Status, s.Phase.Label(), s.CompletedWorkCount, s.CompletedBreakCount)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to summarize as YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&sessions, "sessions", 0, "also list this many recent sessions")
	return cmd
}

func reportCmd(opts *options) *cobra.Command {
	var date, outDir string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a day's PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = util.ReportsDir(config.AppName)
			}
			return withApp(cmd, opts, func(a *app) error {
				path, err := report.GeneratePDFReport(cmd.Context(), a.db, a.userID, day, outDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report saved: %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to report as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default "+util.ReportsDir(config.AppName)+")")
	return cmd
}

func exportCmd(opts *options) *cobra.Command {
	var (
		outDir  string
		encrypt bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all profiles, settings, sessions, phase logs and tasks as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var passphrase string
			if encrypt {
				var err error
				passphrase, err = exportPassphrase()
				if err != nil {
					return err
				}
			}
			if outDir == "" {
				outDir = util.ReportsDir(config.AppName)
			}
			return withApp(cmd, opts, func(a *app) error {
				path, err := report.WriteExport(cmd.Context(), a.db, outDir, passphrase, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Export saved: %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default "+util.ReportsDir(config.AppName)+")")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "encrypt the export with a passphrase ("+config.EnvPrefix+"_EXPORT_KEY or prompt)")
	return cmd
}

// exportPassphrase reads the export passphrase from the environment or, on a
// terminal, prompts for it twice.
func exportPassphrase() (string, error) {
	if pass := os.Getenv(config.EnvPrefix + "_EXPORT_KEY"); pass != "" {
		return pass, nil
	}
	if !stdinIsTerminal() {
		return "", fmt.Errorf("set %s_EXPORT_KEY or run in a terminal to enter a passphrase", config.EnvPrefix)
	}
	return promptNewPassphrase("Export passphrase: ")
}

func importCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON export, replacing rows with matching ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				passphrase := os.Getenv(config.EnvPrefix + "_EXPORT_KEY")
				err := a.db.ImportVault(cmd.Context(), payload, passphrase)
				if errors.Is(err, database.ErrExportPassphrase) && passphrase == "" && stdinIsTerminal() {
					passphrase, err = promptForKey("Export passphrase: ")
					if err != nil {
						return err
					}
					err = a.db.ImportVault(cmd.Context(), payload, passphrase)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", filepath.Base(args[0]))
				return nil
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, tui.VersionLabel())
		},
	}
}

func configCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.resolvedConfigPath()
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), opts.resolvedConfigPath())
		},
	}
	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
