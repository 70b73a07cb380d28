package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"globalsort/internal/session"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "sort [directory]",
		Short: "Sort one directory into category folders",
		Long:  "Sort the immediate entries of a directory into category folders. Defaults to the current directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolve current directory: %w", err)
				}
				dir = cwd
			}
			return ctx.withSession(func(s *session.Session) error {
				result := s.Sort(cmd.Context(), dir)
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), newSortResultView(result))
				}
				printSortResult(newPrinter(cmd.OutOrStdout()), result)
				return nil
			})
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

func newSortAllCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "sort-all",
		Short: "Sort every library directory and custom folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s *session.Session) error {
				batch := s.SortAll(cmd.Context())
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), newBatchResultView(batch))
				}
				printBatchResult(newPrinter(cmd.OutOrStdout()), batch)
				return nil
			})
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}
