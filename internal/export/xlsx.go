// Package export serializes listings into XLSX workbooks with a styled
// header row and auto-sized columns.
package export

import (
	"fmt"
	"time"

	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/xuri/excelize/v2"
)

const maxColWidth = 50

// Filename returns the conventional download name, e.g. clientes_20240315_174502.xlsx.
func Filename(prefix string) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
}

// Customers builds a workbook with one row per customer. The phone column is
// forced to text so spreadsheet apps do not mangle E.164 values.
func Customers(rows []model.Customer) (*excelize.File, error) {
	headers := []string{"id", "nombre", "apellido", "telefono", "email", "activo", "notas", "created_at", "updated_at"}
	data := make([][]any, 0, len(rows))
	for _, c := range rows {
		activo := 0
		if c.Active {
			activo = 1
		}
		data = append(data, []any{c.ID, c.FirstName, c.LastName, c.Phone, c.Email, activo, c.Notes, c.CreatedAt, c.UpdatedAt})
	}
	return build("Clientes", headers, data, []int{4})
}

// Appointments builds a workbook with one row per turno, including the
// joined customer name/email when present.
func Appointments(rows []model.Appointment) (*excelize.File, error) {
	headers := []string{"id", "inicio", "motivo", "cliente_id", "cliente_nombre", "cliente_email"}
	data := make([][]any, 0, len(rows))
	for _, t := range rows {
		var custID any
		if t.CustomerID.Valid {
			custID = t.CustomerID.Int64
		} else {
			custID = ""
		}
		name := ""
		if t.CustomerLastName.String != "" || t.CustomerFirstName.String != "" {
			name = t.CustomerLastName.String + ", " + t.CustomerFirstName.String
		}
		data = append(data, []any{t.ID, t.Start, t.Reason, custID, name, t.CustomerEmail.String})
	}
	return build("Turnos", headers, data, nil)
}

// build writes headers and data into a fresh workbook: bold filled header,
// per-column auto width, frozen header pane, autofilter. textCols are
// 1-based column numbers formatted as text.
func build(sheet string, headers []string, data [][]any, textCols []int) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	widths := make([]int, len(headers))
	for col, h := range headers {
		widths[col] = len(h)
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range data {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
			if n := len(fmt.Sprint(v)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col := range headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		w := widths[col] + 2
		if w > maxColWidth {
			w = maxColWidth
		}
		if err := f.SetColWidth(sheet, name, name, float64(w)); err != nil {
			return nil, err
		}
	}

	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return nil, err
	}
	for _, col := range textCols {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		if err := f.SetColStyle(sheet, name, textStyle); err != nil {
			return nil, err
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	lastCell, err := excelize.CoordinatesToCellName(len(headers), len(data)+1)
	if err != nil {
		return nil, err
	}
	if err := f.AutoFilter(sheet, "A1:"+lastCell, nil); err != nil {
		return nil, err
	}

	return f, nil
}
