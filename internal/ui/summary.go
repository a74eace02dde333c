package ui

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"utp/internal/domain"
)

// PrintSummary renders the outcome of a run as a stats table, followed by
// one row per failure when there are any.
func (f *Formatter) PrintSummary(report *domain.RunReport) {
	meta := report.Meta

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("Unity Test Results (%s)", meta.Duration))
	t.AppendHeader(table.Row{"Suites", "Tests", "Passed", "Failed", "Unknown"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Suites", Align: text.AlignRight},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Unknown", Align: text.AlignRight},
	})
	t.AppendRow(table.Row{meta.SuitesRun, meta.TestsChecked, meta.Passed, meta.Failed, meta.Unknown})

	switch {
	case meta.Failed > 0:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	case meta.Unknown > 0:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}
	t.Render()

	if len(report.Failures) > 0 {
		ft := table.NewWriter()
		ft.SetOutputMirror(os.Stdout)
		ft.AppendHeader(table.Row{"Suite", "Test", "Line", "Message"})
		ft.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Suite", AutoMerge: true},
			{Name: "Line", Align: text.AlignRight},
			{Name: "Message", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		})
		for _, failure := range report.Failures {
			// Line is 0-based in the report, shown 1-based like editors do.
			line := "-"
			if failure.Line >= 0 {
				line = strconv.Itoa(failure.Line + 1)
			}
			ft.AppendRow(table.Row{f.displayPath(failure.File), failure.Label, line, failure.Message})
		}
		ft.SetStyle(table.StyleLight)
		ft.Render()
	}

	fmt.Println()
	switch {
	case meta.Failed > 0:
		color.Red("✗ %d of %d test(s) failed", meta.Failed, meta.TestsChecked)
	case meta.Unknown > 0:
		color.Yellow("? %d test(s) produced no result", meta.Unknown)
	default:
		color.Green("✓ All tests passed!")
	}
}
