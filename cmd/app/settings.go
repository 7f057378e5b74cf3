package main

import (
	"fmt"
	"io"

	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/spf13/cobra"
)

var settingFlags = []string{"work", "short", "long", "every", "sound", "notifications", "auto-breaks", "auto-work"}

func settingsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the timer settings of the profile",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				s, err := a.db.GetUserSettings(cmd.Context(), a.userID)
				if err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}

	var (
		work, short, long, every int
		sound, notifications     bool
		autoBreaks, autoWork     bool
	)
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Example: "  pomotrack settings set --work 50 --short 10\n" +
			"  pomotrack settings set --sound=false --auto-breaks",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			changed := false
			for _, name := range settingFlags {
				changed = changed || flags.Changed(name)
			}
			if !changed {
				return fmt.Errorf("nothing to change; see --help")
			}
			return withApp(cmd, opts, func(a *app) error {
				s, err := a.db.GetUserSettings(cmd.Context(), a.userID)
				if err != nil {
					return err
				}
				if flags.Changed("work") {
					s.WorkMinutes = work
				}
				if flags.Changed("short") {
					s.ShortBreakMinutes = short
				}
				if flags.Changed("long") {
					s.LongBreakMinutes = long
				}
				if flags.Changed("every") {
					s.SessionsUntilLongBreak = every
				}
				if flags.Changed("sound") {
					s.SoundEnabled = sound
				}
				if flags.Changed("notifications") {
					s.NotificationsEnabled = notifications
				}
				if flags.Changed("auto-breaks") {
					s.AutoStartBreaks = autoBreaks
				}
				if flags.Changed("auto-work") {
					s.AutoStartWork = autoWork
				}
				if err := s.Validate(); err != nil {
					return err
				}
				if err := a.db.SaveUserSettings(cmd.Context(), s); err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}
	f := setCmd.Flags()
	f.IntVar(&work, "work", 0, "focus length in minutes")
	f.IntVar(&short, "short", 0, "short break length in minutes")
	f.IntVar(&long, "long", 0, "long break length in minutes")
	f.IntVar(&every, "every", 0, "focus sessions before a long break")
	f.BoolVar(&sound, "sound", true, "play a chime when a phase ends")
	f.BoolVar(&notifications, "notifications", true, "show a desktop notification when a phase ends")
	f.BoolVar(&autoBreaks, "auto-breaks", false, "start breaks automatically")
	f.BoolVar(&autoWork, "auto-work", false, "start focus sessions automatically")

	cmd.AddCommand(showCmd, setCmd)
	return cmd
}

func printSettings(w io.Writer, s models.Settings) {
	fmt.Fprintf(w, "Focus:              %d min\n", s.WorkMinutes)
	fmt.Fprintf(w, "Short break:        %d min\n", s.ShortBreakMinutes)
	fmt.Fprintf(w, "Long break:         %d min\n", s.LongBreakMinutes)
	fmt.Fprintf(w, "Long break every:   %d\n", s.SessionsUntilLongBreak)
	fmt.Fprintf(w, "Sound:              %s\n", onOff(s.SoundEnabled))
	fmt.Fprintf(w, "Notifications:      %s\n", onOff(s.NotificationsEnabled))
	fmt.Fprintf(w, "Auto-start breaks:  %s\n", onOff(s.AutoStartBreaks))
	fmt.Fprintf(w, "Auto-start focus:   %s\n", onOff(s.AutoStartWork))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
