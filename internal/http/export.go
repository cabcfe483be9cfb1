package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Octaviomaldonado/GestorClientes/internal/export"
	"github.com/Octaviomaldonado/GestorClientes/internal/metrics"
	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/Octaviomaldonado/GestorClientes/internal/validate"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeWorkbook(c echo.Context, f *excelize.File, filename string) error {
	defer f.Close()
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return errJSON(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

func exportCustomersHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := d.customers.List(c.Request().Context(), model.ActiveAll, "")
		if err != nil {
			return errJSON(c, err)
		}
		f, err := export.Customers(rows)
		if err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("customer", "export").Inc()

		return writeWorkbook(c, f, export.Filename("clientes"))
	}
}

func exportAppointmentsHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := d.turnos.List(c.Request().Context(), model.TimeAll, validate.Now())
		if err != nil {
			return errJSON(c, err)
		}
		f, err := export.Appointments(rows)
		if err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("appointment", "export").Inc()

		return writeWorkbook(c, f, export.Filename("turnos"))
	}
}
