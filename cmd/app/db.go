package main

import (
	"errors"
	"fmt"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/database"
	"github.com/akyairhashvil/pomotrack/internal/util"
	"github.com/spf13/cobra"
)

func dbCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect or re-key the database",
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show the database location and encryption state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				out := cmd.OutOrStdout()
				status := a.db.EncryptionStatus()
				fmt.Fprintf(out, "Path:       %s\n", a.db.Path())
				fmt.Fprintf(out, "SQLCipher:  %s\n", yesNo(status.Available))
				fmt.Fprintf(out, "Encrypted:  %s\n", yesNo(status.Encrypted))
				fmt.Fprintf(out, "Has data:   %s\n", yesNo(a.db.DatabaseHasData(cmd.Context())))
				_, locked := a.db.GetSetting(cmd.Context(), config.PassphraseSettingKey)
				fmt.Fprintf(out, "UI lock:    %s\n", onOff(locked))
				return nil
			})
		},
	}

	rekeyCmd := &cobra.Command{
		Use:   "rekey",
		Short: "Change the passphrase of an encrypted database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if !a.db.EncryptionStatus().Encrypted {
					return fmt.Errorf("rekey: %w", database.ErrDatabaseNotEncrypted)
				}
				if !stdinIsTerminal() {
					return errors.New("rekey needs a terminal to read the new passphrase")
				}
				pass, err := promptNewPassphrase("New DB passphrase: ")
				if err != nil {
					return err
				}
				if err := a.db.RekeyDB(cmd.Context(), pass); err != nil {
					return err
				}
				hash, err := util.HashPassphrase(pass)
				if err != nil {
					return err
				}
				if err := a.db.SetSetting(cmd.Context(), config.PassphraseSettingKey, hash); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database re-keyed. Use the new passphrase from now on.")
				return nil
			})
		},
	}

	cmd.AddCommand(infoCmd, rekeyCmd)
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
