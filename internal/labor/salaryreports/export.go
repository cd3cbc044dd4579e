package salaryreports

import (
	"context"
	"io"
	"strconv"

	"equipment-backend/internal/labor/exports"
)

var exportHeader = []string{"work day", "project number", "project name", "hours"}

// Export writes one row per place and a closing total row. Places whose
// project was deleted keep their hours with empty project columns.
func (s *Service) Export(ctx context.Context, id string, w io.Writer, cs exports.Charset) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return exports.WriteCSV(w, cs, exportHeader, exportRows(r))
}

func exportRows(r SalaryReportResponse) [][]string {
	var rows [][]string
	var total float64
	for _, d := range r.WorkDays {
		day := d.Date.Format("2006-01-02")
		for _, p := range d.Places {
			var number, name string
			if p.Project != nil {
				number = strconv.FormatInt(p.Project.ProjectNumber, 10)
				name = p.Project.Name
			}
			rows = append(rows, []string{day, number, name, formatHours(p.Hours)})
			total += p.Hours
		}
	}
	return append(rows, []string{"total", "", "", formatHours(total)})
}

func formatHours(h float64) string { return strconv.FormatFloat(h, 'f', -1, 64) }
