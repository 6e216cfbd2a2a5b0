// Package export renders admin reports as Excel workbooks.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/xuri/excelize/v2"
)

const applicationsSheet = "Applications"

var applicationHeader = []string{
	"ID", "Name", "Student number", "Grade", "Major", "Phone", "Email",
	"Gaokao math", "Gaokao English", "Direction", "Good at", "Reason",
	"Future", "Experience", "Other lab", "Score", "Remark", "Submitted at",
}

func applicationRow(a models.Application) []string {
	score := ""
	if a.Value != nil {
		score = *a.Value
	}
	return []string{
		strconv.FormatInt(a.ID, 10), a.Name, a.Number, a.Grade, a.Major, a.PhoneNumber, a.Email,
		strconv.Itoa(a.GaokaoMath), strconv.Itoa(a.GaokaoEnglish), a.FollowDirection, a.GoodAt, a.Reason,
		a.Future, a.Experience, a.OtherLab, score, a.AdminRemark, a.BookTime.Format(time.DateTime),
	}
}

// WriteApplications writes one sheet with a bold, filterable header row and
// one row per application.
func WriteApplications(w io.Writer, apps []models.Application) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicationsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := make([][]string, 0, len(apps)+1)
	rows = append(rows, applicationHeader)
	for _, a := range apps {
		rows = append(rows, applicationRow(a))
	}

	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(applicationsSheet, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := formatHeader(f, applicationsSheet, rows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Filename returns a dated download name.
func Filename(now time.Time) string {
	return fmt.Sprintf("applications_%s.xlsx", now.Format("2006-01-02"))
}

func formatHeader(f *excelize.File, sheet string, rows [][]string) error {
	cols := len(rows[0])
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", last+"1", bold)
	_ = f.AutoFilter(sheet, "A1:"+last+"1", nil)

	// width heuristic over the first 50 rows
	for c := 0; c < cols; c++ {
		width := 10.0
		for r := 0; r < len(rows) && r < 50; r++ {
			if w := float64(utf8.RuneCountInString(rows[r][c])) * 1.1; w > width {
				width = w
			}
		}
		if width > 40 {
			width = 40
		}
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(sheet, col, col, width)
	}
	return nil
}
