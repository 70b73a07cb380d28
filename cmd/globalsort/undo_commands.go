package main

import (
	"time"

	"github.com/spf13/cobra"

	"globalsort/internal/session"
	"globalsort/internal/undolog"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Move every recorded entry back to where it came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s *session.Session) error {
				report, err := s.UndoAll(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), newUndoReportView(report))
				}
				printUndoReport(newPrinter(cmd.OutOrStdout()), report)
				return nil
			})
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List moves that undo would reverse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s *session.Session) error {
				records, err := s.History(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					if records == nil {
						records = []undolog.Record{}
					}
					return writeJSON(cmd.OutOrStdout(), records)
				}
				p := newPrinter(cmd.OutOrStdout())
				if len(records) == 0 {
					p.info("No moves recorded.")
					return nil
				}
				p.table(
					[]string{"ID", "Kind", "From", "To", "Size", "Moved"},
					historyRows(records, time.Now()),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				return nil
			})
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}
