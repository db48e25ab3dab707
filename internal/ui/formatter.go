package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"jsplit/internal/domain"
	"jsplit/internal/grouping"
)

const separator = "======================================="

// Formatter formats and displays plans and report listings
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintPlan renders the plan in the given format (text, table, json, yaml)
func (f *Formatter) PrintPlan(plan *domain.Plan, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(f.out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case "yaml":
		enc := yaml.NewEncoder(f.out)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "table":
		f.printTable(plan)
		return nil
	case "text", "":
		f.printText(plan)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// printText prints one block per group with rounded seconds, then the total
func (f *Formatter) printText(plan *domain.Plan) {
	header := color.New(color.FgCyan, color.Bold)
	for _, group := range plan.Groups {
		fmt.Fprintln(f.out, separator)
		header.Fprintf(f.out, "Group: %s: %ss\n", group.Keys(), seconds(group.Duration()))
		for _, c := range group {
			fmt.Fprintf(f.out, " - %c: %ss\n", c.Key, seconds(math.Abs(c.Duration)))
		}
	}
	fmt.Fprintln(f.out, separator)
	fmt.Fprintf(f.out, "Total time: %s\n", seconds(math.Abs(totalOf(plan))))

	f.printSkipped(plan.Skipped)
}

func (f *Formatter) printTable(plan *domain.Plan) {
	total := totalOf(plan)

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Keys", "Duration (s)", "Share"})
	for i, group := range plan.Groups {
		share := 0.0
		if total > 0 {
			share = group.Duration() / total * 100
		}
		t.AppendRow(table.Row{i + 1, group.Keys(), seconds(group.Duration()), fmt.Sprintf("%.1f%%", share)})
	}
	t.AppendFooter(table.Row{"", "Total", seconds(total), fmt.Sprintf("target %ss", seconds(plan.Meta.TargetSeconds))})
	t.Render()

	f.printSkipped(plan.Skipped)
}

func (f *Formatter) printSkipped(skipped []domain.SkippedReport) {
	if len(skipped) == 0 {
		return
	}
	warn := color.New(color.FgYellow)
	warn.Fprintf(f.out, "Skipped %d unreadable report(s):\n", len(skipped))
	for _, s := range skipped {
		warn.Fprintf(f.out, "  %s: %s\n", s.Path, s.Reason)
	}
}

// PrintOnly prints the keys of the 1-based group index, for CI matrix jobs.
// An index past the last group prints an empty line: that lane has no work.
func (f *Formatter) PrintOnly(plan *domain.Plan, index int) error {
	if index < 1 {
		return fmt.Errorf("group index must be 1 or more, got %d", index)
	}
	if index > len(plan.Groups) {
		fmt.Fprintln(f.out)
		return nil
	}
	fmt.Fprintln(f.out, plan.Groups[index-1].Keys())
	return nil
}

// PrintReportList prints discovered report files relative to base
func (f *Formatter) PrintReportList(reports []string, base string) {
	if len(reports) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No reports found")
		return
	}
	color.New(color.FgGreen).Fprintf(f.out, "Found %d report file(s):\n", len(reports))
	branch := color.New(color.FgCyan)
	for i, report := range reports {
		relPath, err := filepath.Rel(base, report)
		if err != nil {
			relPath = report
		}
		if i == len(reports)-1 {
			branch.Fprintf(f.out, "└── %s\n", relPath)
		} else {
			branch.Fprintf(f.out, "├── %s\n", relPath)
		}
	}
}

// PrintSuites prints parsed suites with their derived key and duration
func (f *Formatter) PrintSuites(suites []domain.Suite) {
	if len(suites) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No suites found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Suite", "Test cases", "Duration (s)"})
	var total float64
	for _, s := range suites {
		t.AppendRow(table.Row{string(grouping.KeyOf(s.Name)), s.Name, len(s.TestCases), fmt.Sprintf("%.3f", s.Duration)})
		total += s.Duration
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d suites", len(suites)), "", fmt.Sprintf("%.3f", total)})
	t.Render()
}

// PrintRuns prints recorded history runs, newest first
func (f *Formatter) PrintRuns(runs []domain.HistoryRun) {
	if len(runs) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No runs recorded")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Suites", "Recorded at"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.RunID, r.Suites, r.RecordedAt.UTC().Format(time.DateTime)})
	}
	t.Render()
}

func totalOf(plan *domain.Plan) float64 {
	var total float64
	for _, g := range plan.Groups {
		total += g.Duration()
	}
	return total
}

// seconds rounds half away from zero, as durations are shown in whole seconds
func seconds(d float64) string {
	return fmt.Sprintf("%.0f", math.Round(d))
}
