package main

import (
	"errors"

	"github.com/spf13/cobra"

	"globalsort/internal/errs"
	"globalsort/internal/extensions"
	"globalsort/internal/session"
)

func newExtCommand(ctx *commandContext) *cobra.Command {
	extCmd := &cobra.Command{
		Use:   "ext",
		Short: "Inspect and edit the extension table",
	}

	extCmd.AddCommand(newExtListCommand(ctx))
	extCmd.AddCommand(newExtAddCommand(ctx))
	extCmd.AddCommand(newExtRemoveCommand(ctx))

	return extCmd
}

func newExtListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List extension to category mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s *session.Session) error {
				entries := s.Registry().Entries()
				if jsonOut {
					if entries == nil {
						entries = []extensions.Entry{}
					}
					return writeJSON(cmd.OutOrStdout(), entries)
				}
				p := newPrinter(cmd.OutOrStdout())
				if len(entries) == 0 {
					p.info("No extensions mapped.")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{entry.Extension, entry.Category})
				}
				p.table([]string{"Extension", "Category"}, rows, nil)
				p.plain("Unknown extensions go to %s.", s.Registry().Fallback())
				return nil
			})
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

func newExtAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <extension> <category>",
		Short: "Map an extension to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s *session.Session) error {
				p := newPrinter(cmd.OutOrStdout())
				if err := reportPersistWarning(p, s.Registry().Add(args[0], args[1])); err != nil {
					return err
				}
				ext, _ := extensions.NormalizeExtension(args[0])
				p.success("Mapped %s to %s.", ext, s.Registry().Lookup(ext))
				return nil
			})
		},
	}
}

func newExtRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <extension>",
		Short: "Remove an extension mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s *session.Session) error {
				p := newPrinter(cmd.OutOrStdout())
				if err := reportPersistWarning(p, s.Registry().Remove(args[0])); err != nil {
					return err
				}
				ext, _ := extensions.NormalizeExtension(args[0])
				p.success("Removed %s.", ext)
				return nil
			})
		},
	}
}

// reportPersistWarning prints a persistence failure as a warning and returns
// every other error unchanged.
func reportPersistWarning(p *printer, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrPersistence) {
		p.warn("Warning: %v", err)
		return nil
	}
	return err
}
