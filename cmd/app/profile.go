package main

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/pomotrack/internal/util"
	"github.com/spf13/cobra"
)

func profileCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage local profiles; each keeps its own session, tasks and settings",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				users, err := a.db.GetUsers(cmd.Context())
				if err != nil {
					return err
				}
				for _, u := range users {
					mark := " "
					if u.ID == a.userID {
						mark = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %s\n", mark, u.Slug, u.Name)
				}
				return nil
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			slug := util.Slugify(name)
			if slug == "" {
				return fmt.Errorf("profile name %q has no letters or digits", name)
			}
			return withApp(cmd, opts, func(a *app) error {
				if _, ok, err := a.db.GetUserIDBySlug(cmd.Context(), slug); err != nil {
					return err
				} else if ok {
					return fmt.Errorf("profile %q already exists", slug)
				}
				if _, err := a.db.CreateUser(cmd.Context(), name, slug); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s (use --profile %s)\n", name, slug)
				return nil
			})
		},
	}

	cmd.AddCommand(listCmd, addCmd)
	return cmd
}
