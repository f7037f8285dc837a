package reporters

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/reaandrew/cloudauditor/core"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultXlsxReport = "findings.xlsx"
	SummarySheet      = "Summary"
	FindingsSheet     = "Findings"
)

type XlsxReporter struct {
	ArtifactPrefix string
	OutputDir      string
}

func (x XlsxReporter) Path() string {
	return artifactPath(x.OutputDir, x.ArtifactPrefix, DefaultXlsxReport)
}

// Report writes a workbook with a Summary sheet of severity counts and a
// Findings sheet holding one row per finding, in the order given.
func (x XlsxReporter) Report(findings []core.Finding, stats core.Stats) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; reuse it as the summary.
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := writeSummarySheet(f, stats); err != nil {
		return err
	}

	if _, err := f.NewSheet(FindingsSheet); err != nil {
		return fmt.Errorf("failed to create sheet '%s': %w", FindingsSheet, err)
	}
	if err := writeFindingsSheet(f, findings); err != nil {
		return err
	}

	path := x.Path()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save XLSX file '%s': %w", path, err)
	}
	log.Infof("XLSX report generated successfully: %s", path)

	return nil
}

func writeSummarySheet(f *excelize.File, stats core.Stats) error {
	rows := [][]interface{}{
		{"Metric", "Count"},
		{"Total Findings", stats.TotalFindings},
		{"Critical", stats.Critical},
		{"High", stats.High},
		{"Medium", stats.Medium},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to get cell address for row %d in sheet '%s': %w", i+1, SummarySheet, err)
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d in sheet '%s': %w", i+1, SummarySheet, err)
		}
	}
	return nil
}

func writeFindingsSheet(f *excelize.File, findings []core.Finding) error {
	headers := findingColumns(findings)
	if err := f.SetSheetRow(FindingsSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to set headers for sheet '%s': %w", FindingsSheet, err)
	}

	for i, finding := range findings {
		rowData := make([]interface{}, 0, len(headers))
		for _, key := range headers {
			value, ok := finding[key]
			if !ok || value == nil {
				rowData = append(rowData, "")
				continue
			}
			rowData = append(rowData, cellValue(value))
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to get cell address for row %d in sheet '%s': %w", i+2, FindingsSheet, err)
		}
		if err := f.SetSheetRow(FindingsSheet, cell, &rowData); err != nil {
			return fmt.Errorf("failed to write row %d in sheet '%s': %w", i+2, FindingsSheet, err)
		}
	}
	return nil
}

// findingColumns returns Severity followed by every other attribute key, sorted.
func findingColumns(findings []core.Finding) []string {
	keys := make(map[string]struct{})
	for _, finding := range findings {
		for key := range finding {
			if key != core.SeverityField {
				keys[key] = struct{}{}
			}
		}
	}

	var columns []string
	for key := range keys {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	return append([]string{core.SeverityField}, columns...)
}

func cellValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string, bool, int, int64, float64:
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
