package report

import (
	"bytes"

	"recruiting-portal/internal/model"
	"recruiting-portal/tools"

	"github.com/xuri/excelize/v2"
)

const (
	studentsSheet   = "Students"
	interviewsSheet = "Interviews"
)

// Workbook renders the report as xlsx: one sheet of student rows and one of
// individual interviews.
func (r *Report) Workbook() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := tools.ExportToExcel(f, studentsSheet, r.Rows); err != nil {
		return nil, err
	}
	if err := tools.ExportToExcel(f, interviewsSheet, r.Interviews); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if idx, err := f.GetSheetIndex(studentsSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return f.WriteToBuffer()
}

// exportName is the download name of the workbook for ev.
func exportName(ev *model.RecruitingEvent) string {
	return FileName(ev.Name, ".xlsx")
}
