package main

import (
	"github.com/spf13/cobra"

	"globalsort/internal/folders"
	"globalsort/internal/session"
)

func newFoldersCommand(ctx *commandContext) *cobra.Command {
	foldersCmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage custom folders swept by sort-all",
	}

	foldersCmd.AddCommand(newFoldersListCommand(ctx))
	foldersCmd.AddCommand(newFoldersAddCommand(ctx))
	foldersCmd.AddCommand(newFoldersRemoveCommand(ctx))

	return foldersCmd
}

func newFoldersListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List custom folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s *session.Session) error {
				list := s.Folders().List()
				if jsonOut {
					if list == nil {
						list = []folders.Folder{}
					}
					return writeJSON(cmd.OutOrStdout(), list)
				}
				p := newPrinter(cmd.OutOrStdout())
				if len(list) == 0 {
					p.info("No custom folders.")
					return nil
				}
				existing := make(map[string]struct{})
				for _, f := range s.Folders().Existing() {
					existing[f.Label] = struct{}{}
				}
				rows := make([][]string, 0, len(list))
				for _, f := range list {
					_, ok := existing[f.Label]
					rows = append(rows, []string{f.Label, f.Path, yesNo(ok)})
				}
				p.table([]string{"Label", "Path", "Exists"}, rows, nil)
				return nil
			})
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

func newFoldersAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <label> [path]",
		Short: "Add or update a custom folder (defaults to the current directory)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return ctx.withSession(func(s *session.Session) error {
				p := newPrinter(cmd.OutOrStdout())
				entry, err := s.Folders().Add(args[0], path)
				if err := reportPersistWarning(p, err); err != nil {
					return err
				}
				p.success("Folder %s -> %s saved.", entry.Label, entry.Path)
				return nil
			})
		},
	}
}

func newFoldersRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <label>",
		Short: "Remove a custom folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s *session.Session) error {
				p := newPrinter(cmd.OutOrStdout())
				if err := reportPersistWarning(p, s.Folders().Remove(args[0])); err != nil {
					return err
				}
				p.success("Folder %s removed.", args[0])
				return nil
			})
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
