package batch

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Runs"

var reportHeader = []interface{}{"Video", "Status", "Run ID", "Final State", "Attempts", "Seconds", "Document", "Error"}

// WriteReport saves the summary as an xlsx workbook, one row per video.
func WriteReport(sum Summary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(reportHeader), 1)
	if err := f.SetCellStyle(reportSheet, "A1", lastCol, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, it := range sum.Items {
		errText := ""
		if it.Err != nil {
			errText = it.Err.Error()
		}
		row := []interface{}{
			filepath.Base(it.Video),
			it.Status(),
			it.Result.RunID,
			string(it.Result.State),
			it.Result.GenerationAttempts,
			it.Result.Elapsed.Seconds(),
			it.Result.Document,
			errText,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(reportSheet, "A", "A", 32); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
