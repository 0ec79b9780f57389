// internal/app/features/dashboard/export.go
package dashboard

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names in workbook order.
const (
	SheetSummary     = "Summary"
	SheetRoles       = "Roles"
	SheetDepartments = "Departments"
	SheetCapacity    = "Capacity"
	SheetWarnings    = "Warnings"
)

// ServeExport streams the dashboard as an XLSX workbook.
// GET /dashboard/export.xlsx
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	rep := h.build(r.Context())

	f, err := buildWorkbook(rep.Summary)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "build dashboard workbook", err, "Could not build the export.", "/dashboard")
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		h.ErrLog.LogServerError(w, r, "write dashboard workbook", err, "Could not build the export.", "/dashboard")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="schooldesk-dashboard.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.Log.Warn("dashboard export write failed", zap.Error(err))
	}
}

// buildWorkbook lays the summary out one sheet per series.
func buildWorkbook(s metrics.Summary) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	summary := [][]any{
		{"Metric", "Value"},
		{"Users", s.Users.Total},
		{"Departments", s.Departments},
		{"Subjects", s.Subjects},
		{"Classes", s.Classes},
		{"Enrollments", s.Enrollments},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		f.Close()
		return nil, err
	}

	series := []struct {
		sheet  string
		header string
		points []metrics.Point
	}{
		{SheetRoles, "Role", s.Distribution},
		{SheetDepartments, "Department", s.ClassesByDepartment},
		{SheetCapacity, "Seats", s.Capacity.Points()},
	}
	for _, sr := range series {
		rows := [][]any{{sr.header, "Count"}}
		for _, p := range sr.points {
			rows = append(rows, []any{p.Name, p.Value})
		}
		if err := addSheet(f, sr.sheet, rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	warn := [][]any{{"Class", "Spots left"}}
	for _, c := range s.CapacityWarnings {
		if c.Capacity == nil {
			continue
		}
		warn = append(warn, []any{c.Name, *c.Capacity})
	}
	if err := addSheet(f, SheetWarnings, warn); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
