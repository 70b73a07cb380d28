package main

import (
	"time"

	"github.com/dustin/go-humanize"

	"globalsort/internal/errs"
	"globalsort/internal/session"
	"globalsort/internal/sorter"
	"globalsort/internal/undolog"
)

type entryFailureView struct {
	Path     string `json:"path"`
	Category string `json:"category,omitempty"`
	Kind     string `json:"error_kind"`
	Error    string `json:"error"`
}

type skipView struct {
	Path     string `json:"path"`
	Category string `json:"category,omitempty"`
	Reason   string `json:"reason"`
}

type sortResultView struct {
	Directory string             `json:"directory"`
	Moved     bool               `json:"moved"`
	Touched   []string           `json:"touched"`
	Moves     []undolog.Record   `json:"moves"`
	Failures  []entryFailureView `json:"failures"`
	Skipped   []skipView         `json:"skipped"`
	Bytes     int64              `json:"bytes"`
}

type batchResultView struct {
	Moved   bool             `json:"moved"`
	Touched []string         `json:"touched"`
	Missing []string         `json:"missing"`
	Results []sortResultView `json:"results"`
}

type undoFailureView struct {
	Record undolog.Record `json:"record"`
	Kind   string         `json:"error_kind"`
	Error  string         `json:"error"`
}

type undoReportView struct {
	Restored []undolog.Record  `json:"restored"`
	Failures []undoFailureView `json:"failures"`
}

func newSortResultView(result sorter.Result) sortResultView {
	view := sortResultView{
		Directory: result.Directory,
		Moved:     result.Moved,
		Touched:   nonNil(result.Touched),
		Moves:     result.Moves,
		Failures:  make([]entryFailureView, 0, len(result.Failures)),
		Skipped:   make([]skipView, 0, len(result.Skipped)),
		Bytes:     result.Bytes,
	}
	if view.Moves == nil {
		view.Moves = []undolog.Record{}
	}
	for _, f := range result.Failures {
		view.Failures = append(view.Failures, entryFailureView{
			Path:     f.Path,
			Category: f.Category,
			Kind:     errs.Kind(f.Err),
			Error:    f.Err.Error(),
		})
	}
	for _, s := range result.Skipped {
		view.Skipped = append(view.Skipped, skipView(s))
	}
	return view
}

func newBatchResultView(batch session.BatchResult) batchResultView {
	view := batchResultView{
		Moved:   batch.Moved,
		Touched: nonNil(batch.Touched),
		Missing: nonNil(batch.Missing),
		Results: make([]sortResultView, 0, len(batch.Results)),
	}
	for _, result := range batch.Results {
		view.Results = append(view.Results, newSortResultView(result))
	}
	return view
}

func newUndoReportView(report undolog.Report) undoReportView {
	view := undoReportView{
		Restored: report.Restored,
		Failures: make([]undoFailureView, 0, len(report.Failures)),
	}
	if view.Restored == nil {
		view.Restored = []undolog.Record{}
	}
	for _, f := range report.Failures {
		view.Failures = append(view.Failures, undoFailureView{Record: f.Record, Kind: errs.Kind(f.Err), Error: f.Err.Error()})
	}
	return view
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func printSortResult(p *printer, result sorter.Result) {
	if !result.Moved {
		p.info("No files were moved.")
	} else {
		p.success("Moved %d entries (%s) in %s:", len(result.Moves), humanize.Bytes(uint64(result.Bytes)), result.Directory)
		for _, folder := range result.Touched {
			p.plain("  %s", folder)
		}
	}
	for _, f := range result.Failures {
		p.fail("  failed: %s: %v", f.Path, f.Err)
	}
}

func printBatchResult(p *printer, batch session.BatchResult) {
	for _, dir := range batch.Missing {
		p.warn("Skipping %s: directory not found", dir)
	}
	if len(batch.Results) == 0 {
		p.info("No directories to sort.")
		return
	}
	for _, result := range batch.Results {
		printSortResult(p, result)
	}
}

func printUndoReport(p *printer, report undolog.Report) {
	if report.Attempted() == 0 {
		p.info("Nothing to undo.")
		return
	}
	p.success("Restored %d of %d entries.", len(report.Restored), report.Attempted())
	for _, f := range report.Failures {
		p.fail("  failed: %s -> %s: %v", f.Record.CurrentPath, f.Record.OriginalPath, f.Err)
	}
}

func historyRows(records []undolog.Record, now time.Time) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			humanize.Comma(rec.ID),
			string(rec.Kind),
			rec.OriginalPath,
			rec.CurrentPath,
			humanize.Bytes(uint64(rec.SizeBytes)),
			humanize.RelTime(rec.MovedAt, now, "ago", "from now"),
		})
	}
	return rows
}
