package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/notify"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	"github.com/akyairhashvil/pomotrack/internal/tui"
	"github.com/akyairhashvil/pomotrack/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Pomodoro timer with tasks, daily stats and reports",
		Version:       tui.VersionLabel(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+defaultConfigPath()+")")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory holding the database, log and reports")
	flags.StringVarP(&opts.profile, "profile", "p", "", "profile slug (default from config)")

	rootCmd.AddCommand(
		runCmd(opts),
		statusCmd(opts),
		statsCmd(opts),
		reportCmd(opts),
		exportCmd(opts),
		importCmd(opts),
		settingsCmd(opts),
		taskCmd(opts),
		profileCmd(opts),
		configCmd(opts),
		dbCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

func runTUI(cmd *cobra.Command, opts *options) error {
	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	logFile, err := tea.LogToFile(filepath.Join(a.dataDir, config.LogFileName), config.AppName)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	// The dispatcher runs on the tick goroutine; a full buffer drops the banner, not the tick.
	events := make(chan pomodoro.Event, 8)
	dispatcher := notify.NewDispatcher(a.db, notify.WithListener(func(ev pomodoro.Event) {
		select {
		case events <- ev:
		default:
		}
	}))
	mgr, err := a.manager(cmd.Context(), pomodoro.WithNotifier(dispatcher))
	if err != nil {
		return err
	}

	model := tui.NewMainModel(cmd.Context(), a.db, mgr, tui.Options{
		Events:       events,
		TickInterval: a.cfg.TickInterval,
		Theme:        a.cfg.Theme,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}

func promptForKey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(pass)), err
}

// promptNewPassphrase reads a passphrase twice and checks its strength.
func promptNewPassphrase(prompt string) (string, error) {
	pass, err := promptForKey(prompt)
	if err != nil {
		return "", err
	}
	if err := util.ValidatePassphrase(pass); err != nil {
		return "", err
	}
	confirm, err := promptForKey("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if confirm != pass {
		return "", errors.New("passphrases do not match")
	}
	return pass, nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func cleanupStaleDBArtifacts(dbPath string) {
	_ = os.Remove(dbPath + ".enc")
	_ = os.Remove(dbPath + ".bak")
}
