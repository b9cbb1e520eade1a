package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/woxQAQ/lsp-bridge/internal/session"
	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

func renderReport(w io.Writer, report *session.Report) {
	fmt.Fprintf(w, "Opened %d file(s), %d failed; published %d diagnostic event(s)\n\n",
		report.Opened, report.OpenFailures, report.Published)

	fmt.Fprintln(w, "Diagnostics")
	fmt.Fprint(w, renderDiagnostics(report.Groups))

	if len(report.Actions) > 0 {
		fmt.Fprintln(w, "\nCode actions")
		fmt.Fprint(w, renderActions(report.Actions))
	}

	if report.Search != nil {
		fmt.Fprintln(w, "\nLocations")
		fmt.Fprint(w, renderSearch(report.Search))
	}

	if report.ShowDocument != nil {
		fmt.Fprintf(w, "\nShow document: %s\n", outcome(report.ShowDocument.Success))
	}

	for _, doc := range report.Documents {
		if !doc.Modified {
			continue
		}
		fmt.Fprintf(w, "\n--- %s (modified)\n%s", doc.File, doc.Text)
	}
}

func renderDiagnostics(groups []protocol.DiagnosticGroup) string {
	if len(groups) == 0 {
		return "  no diagnostics\n"
	}

	table, buf := newTable([]string{"File", "Line", "Col", "Severity", "Message"})
	count := 0
	for _, g := range groups {
		for _, d := range g.Diagnostics {
			table.Append([]string{
				g.File.Name(),
				strconv.Itoa(d.Range.Start.Line + 1),
				strconv.Itoa(d.Range.Start.Column + 1),
				d.Severity.String(),
				d.Message,
			})
			count++
		}
	}
	table.SetFooter([]string{fmt.Sprintf("%d file(s)", len(groups)), "", "", "", fmt.Sprintf("%d shown", count)})
	table.Render()
	return buf.String()
}

func renderActions(actions []session.ActionOutcome) string {
	table, buf := newTable([]string{"Action", "Result"})
	for _, a := range actions {
		table.Append([]string{a.Title, outcome(!a.Failed)})
	}
	table.Render()
	return buf.String()
}

func renderSearch(results *protocol.SearchResults) string {
	if results.Len() == 0 {
		return "  no results\n"
	}

	table, buf := newTable([]string{"File", "Line", "Match", "Preview"})
	for _, file := range results.Files {
		for _, m := range results.Matches[file] {
			table.Append([]string{
				file.Name(),
				strconv.Itoa(m.Range.Start.Line + 1),
				m.Match,
				m.Line,
			})
		}
	}
	table.Render()
	return buf.String()
}

func newTable(header []string) (*tablewriter.Table, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	return table, buf
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
