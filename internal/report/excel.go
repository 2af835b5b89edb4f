package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"standup/internal/board"
)

type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

// Export writes one workbook per snapshot: a Dashboard sheet with per-status
// counts and metrics, plus item sheets for stories and tasks.
func (e *ExcelExporter) Export(snap *Snapshot) error {
	timestamp := snap.GeneratedAt.Format("2006-01-02_15-04-05")
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("standup_%s.xlsx", timestamp))

	f := excelize.NewFile()
	defer f.Close()

	if err := e.createDashboardSheet(f, "Dashboard", snap); err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}
	if err := e.createItemSheet(f, "Stories", snap.StoriesByStatus); err != nil {
		return fmt.Errorf("failed to create stories sheet: %w", err)
	}
	if err := e.createItemSheet(f, "Tasks", snap.TasksByStatus); err != nil {
		return fmt.Errorf("failed to create tasks sheet: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		//NOTE:
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}

	return nil
}

func (e *ExcelExporter) createDashboardSheet(f *excelize.File, sheetName string, snap *Snapshot) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})

	totalStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#B4C7E7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, "A1", "Project:")
	f.SetCellValue(sheetName, "B1", snap.ProjectName)
	f.SetCellValue(sheetName, "A2", "Sprint:")
	f.SetCellValue(sheetName, "B2", snap.SprintName)
	f.SetCellValue(sheetName, "A3", "Generated:")
	f.SetCellValue(sheetName, "B3", snap.GeneratedAt.Format("02-01-06 15:04"))

	row := 5

	for col, header := range []string{"Status", "Stories", "Tasks"} {
		cell := cellName(col+1, row)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	row++

	for _, status := range mergedStatuses(snap) {
		f.SetCellValue(sheetName, cellName(1, row), displayStatus(status))
		f.SetCellValue(sheetName, cellName(2, row), len(snap.StoriesByStatus[status]))
		f.SetCellValue(sheetName, cellName(3, row), len(snap.TasksByStatus[status]))
		row++
	}

	f.SetCellValue(sheetName, cellName(1, row), "Total")
	f.SetCellValue(sheetName, cellName(2, row), snap.StoryMetrics.Total)
	f.SetCellValue(sheetName, cellName(3, row), snap.TaskMetrics.Total)
	for col := 1; col <= 3; col++ {
		f.SetCellStyle(sheetName, cellName(col, row), cellName(col, row), totalStyle)
	}
	row += 2

	f.SetCellValue(sheetName, cellName(1, row), "Story completion")
	f.SetCellValue(sheetName, cellName(2, row), fmt.Sprintf("%d%%", snap.StoryMetrics.Completion))
	row++
	f.SetCellValue(sheetName, cellName(1, row), "Task completion")
	f.SetCellValue(sheetName, cellName(2, row), fmt.Sprintf("%d%%", snap.TaskMetrics.Completion))
	row++
	f.SetCellValue(sheetName, cellName(1, row), "Blocked")
	f.SetCellValue(sheetName, cellName(2, row), snap.StoryMetrics.Blocked)
	row++
	f.SetCellValue(sheetName, cellName(1, row), "Health")
	f.SetCellValue(sheetName, cellName(2, row), string(snap.StoryMetrics.Health))

	f.SetColWidth(sheetName, "A", "A", 22)
	f.SetColWidth(sheetName, "B", "C", 14)

	return nil
}

func (e *ExcelExporter) createItemSheet(f *excelize.File, sheetName string, byStatus map[string][]*board.Item) error {
	sheetName = sanitizeSheetName(sheetName)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})

	headers := []string{
		"#",
		"Ref",
		"Subject",
		"Status",
		"Assignee",
		"Closed",
		"Story Ref",
	}

	for col, header := range headers {
		cell := cellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 2
	for _, status := range StatusNames(byStatus, board.DefaultKanbanColumns) {
		for _, it := range byStatus[status] {
			f.SetCellValue(sheetName, cellName(1, row), row-1)
			f.SetCellValue(sheetName, cellName(2, row), fmt.Sprintf("#%d", it.Ref))
			f.SetCellValue(sheetName, cellName(3, row), it.Subject)
			f.SetCellValue(sheetName, cellName(4, row), displayStatus(status))
			f.SetCellValue(sheetName, cellName(5, row), board.AssigneeHandle(it))
			f.SetCellValue(sheetName, cellName(6, row), yesNo(it.Closed))
			if it.ParentRef != 0 {
				f.SetCellValue(sheetName, cellName(7, row), fmt.Sprintf("#%d", it.ParentRef))
			}
			row++
		}
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 8)
	f.SetColWidth(sheetName, "C", "C", 45)
	f.SetColWidth(sheetName, "D", "E", 20)
	f.SetColWidth(sheetName, "F", "G", 10)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func mergedStatuses(snap *Snapshot) []string {
	merged := make(map[string][]*board.Item, len(snap.StoriesByStatus)+len(snap.TasksByStatus))
	for status := range snap.StoriesByStatus {
		merged[status] = nil
	}
	for status := range snap.TasksByStatus {
		merged[status] = nil
	}
	return StatusNames(merged, board.DefaultKanbanColumns)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

func sanitizeSheetName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, "?", "")
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, "[", "(")
	name = strings.ReplaceAll(name, "]", ")")

	if len(name) > 31 {
		name = name[:31]
	}

	return name
}
