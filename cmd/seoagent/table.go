package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"SEOAgent/internal/domain"
)

// renderReport prints the run outcome as tables: stages, sites, errors.
func renderReport(w io.Writer, r *domain.RunReport) {
	fmt.Fprintf(w, "Run %s (%s) finished %s in %s\n", r.ID, r.Mode, r.State, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	if r.Failure != "" {
		fmt.Fprintf(w, "Aborted in %s: %s\n", r.FailedStage, r.Failure)
	}
	if r.Cancelled {
		fmt.Fprintln(w, "Run was cancelled; partial results below")
	}

	stages := newTable(w)
	stages.AppendHeader(table.Row{"Stage", "Status", "Detail"})
	for _, s := range r.Stages {
		stages.AppendRow(table.Row{s.Stage, s.Status, s.Detail})
	}
	stages.Render()

	if len(r.Sites) > 0 {
		sites := newTable(w)
		sites.AppendHeader(table.Row{"Site", "Requested", "Created", "Skipped", "Failed"})
		for _, s := range r.Sites {
			sites.AppendRow(table.Row{s.SiteName, s.Requested, s.Created, s.Skipped, s.Failed})
		}
		sites.AppendFooter(table.Row{"Total", "", r.TotalCreated, "", ""})
		sites.Render()
	}

	if r.Deploy != nil {
		fmt.Fprintf(w, "Deploy success: %t\n", r.Deploy.Success)
		for _, line := range r.Deploy.Log {
			fmt.Fprintln(w, "  "+line)
		}
	}

	if len(r.Errors) > 0 {
		errs := newTable(w)
		errs.AppendHeader(table.Row{"Stage", "Target", "Error"})
		for _, e := range r.Errors {
			errs.AppendRow(table.Row{e.Stage, e.Target, e.Message})
		}
		errs.Render()
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}
