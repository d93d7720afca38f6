package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Bar glyphs for workload and coverage charts.
const (
	barFilled = "█"
	barEmpty  = "░"
	barWidth  = 20
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeResult routes a rendered result to the configured output file.
func writeResult(cfg *contract.Config, render func(io.Writer) error) error {
	return writeWithFile(cfg.OutputFile, render, successMessage(cfg.Output))
}

// successMessage names what was written for the stderr confirmation line.
func successMessage(mode schema.OutputMode) string {
	switch mode {
	case schema.JSONOut:
		return "Wrote JSON"
	case schema.CSVOut:
		return "Wrote CSV"
	default:
		return "Wrote table"
	}
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// renderTable writes rows under headers with right-aligned cells.
func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// horizontalBar draws value as a filled share of maxValue, capped at width cells.
func horizontalBar(value, maxValue float64, width int) string {
	if maxValue <= 0 || width <= 0 {
		return strings.Repeat(barEmpty, max(width, 0))
	}
	filled := int(value / maxValue * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)
}

// statusMarker is the traffic light shown next to a workload bar.
func statusMarker(status schema.WorkloadStatus) string {
	switch status {
	case schema.OverloadedStatus:
		return "🔴"
	case schema.AtCapacityStatus:
		return "🟡"
	default:
		return "🟢"
	}
}

// yesNo renders a flag for text tables.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatDate renders a calendar date in the snapshot layout.
func formatDate(d time.Time) string {
	return d.Format(schema.DateFormat)
}

// formatPercent renders a [0,1] probability as a percentage.
func formatPercent(fmtFloat func(float64) string, p float64) string {
	return fmtFloat(p*100) + "%"
}

// lineWriter remembers the first write error so text renderers can print many lines
// and check once at the end.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}
