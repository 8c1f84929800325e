package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ppiankov/steamrisk/internal/model"
)

// Renderer writes the sorted result collection as a terminal table or a
// plain CSV export. Both renderings share one fixed column order.
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

var reportHeader = table.Row{
	"Score", "Name", "AppID",
	"Origin", "CN Lang", "Origin Evidence",
	"DRM Notice", "Account", "DRM Vendors",
	"Anti-Cheat", "Kernel",
	"Developers", "Publishers", "Trusted",
	"Factors", "Store Page",
}

func reportCells(row model.ReportRow) table.Row {
	return table.Row{
		row.Risk.Score,
		row.Name,
		row.AppID,
		originLabel(row.Origin),
		langLabel(row.Origin),
		row.Origin.Evidence,
		row.DRM.Notice,
		row.DRM.Account,
		strings.Join(row.DRM.Vendors, "; "),
		row.AntiCheat.Summary,
		yesNo(row.AntiCheat.KernelLevel),
		strings.Join(row.Developers, "; "),
		strings.Join(row.Publishers, "; "),
		yesNo(row.Trusted),
		strings.Join(row.Risk.Factors, "; "),
		row.StoreURL,
	}
}

// RenderTable writes the interactive rendering to w
func (r *Renderer) RenderTable(report *model.Report, w io.Writer) {
	tw := newTableWriter(report)
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 2, WidthMax: 40},
		{Number: 6, WidthMax: 40},
		{Number: 15, WidthMax: 60},
	})
	tw.Render()
}

// RenderCSV writes the delimited export to path
func (r *Renderer) RenderCSV(report *model.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	tw := newTableWriter(report)
	tw.SetOutputMirror(f)
	tw.RenderCSV()
	return nil
}

// RenderSummary prints the one-line run summary to stderr
func (r *Renderer) RenderSummary(report *model.Report) {
	flagged := 0
	for _, row := range report.Rows {
		if row.Risk.Score > 0 {
			flagged++
		}
	}
	status := "complete"
	if report.Aborted {
		status = "aborted (partial results)"
	}
	fmt.Fprintf(os.Stderr, "Scan %s: %d rows, %d with non-zero risk, %d live fetches, %d cache hits\n",
		status, len(report.Rows), flagged, report.Fetched, report.CacheHits)
}

func newTableWriter(report *model.Report) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(reportHeader)
	for _, row := range report.Rows {
		tw.AppendRow(reportCells(row))
	}
	return tw
}

func originLabel(o model.OriginAssessment) string {
	switch {
	case o.Strong:
		return "strong"
	case o.FullAudio:
		return "weak+audio"
	case o.WeakLanguage:
		return "weak"
	default:
		return ""
	}
}

func langLabel(o model.OriginAssessment) string {
	switch {
	case o.FullAudio:
		return "full audio"
	case o.WeakLanguage:
		return "localized"
	default:
		return ""
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
