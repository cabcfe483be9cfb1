package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Octaviomaldonado/GestorClientes/internal/metrics"
	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/Octaviomaldonado/GestorClientes/internal/validate"
	"github.com/labstack/echo/v4"
)

type appointmentCreateReq struct {
	CustomerID *int64 `json:"customer_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM
	Reason     string `json:"reason"`
}

func createAppointmentHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req appointmentCreateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		req.Reason = strings.TrimSpace(req.Reason)
		if req.Reason == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "reason is required"})
		}

		start, err := validate.CombineDateTime(req.Date, req.Time)
		if err != nil {
			return errJSON(c, err)
		}

		id, err := d.turnos.Add(c.Request().Context(), req.CustomerID, start, req.Reason)
		if err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("appointment", "create").Inc()

		return c.JSON(http.StatusCreated, map[string]any{"id": id, "start": start})
	}
}

func listAppointmentsHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter, ok := model.ParseTimeFilter(c.QueryParam("when"))
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid when filter"})
		}

		rows, err := d.turnos.List(c.Request().Context(), filter, validate.Now())
		if err != nil {
			return errJSON(c, err)
		}

		// the past listing is usually long; allow callers to cap it
		if raw := c.QueryParam("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n < len(rows) {
				rows = rows[:n]
			}
		}

		metrics.OperationsTotal.WithLabelValues("appointment", "list").Inc()

		return c.JSON(http.StatusOK, map[string]any{"count": len(rows), "results": rows})
	}
}

func getAppointmentHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := idParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		turno, err := d.turnos.Get(c.Request().Context(), id)
		if err != nil {
			return errJSON(c, err)
		}
		if turno == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "appointment not found"})
		}
		return c.JSON(http.StatusOK, turno)
	}
}

// optionalID distinguishes an absent customer_id from an explicit null in
// PATCH bodies: absent leaves the reference alone, null clears it.
type optionalID struct {
	set   bool
	value sql.NullInt64
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	o.set = true
	if string(b) == "null" {
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.value = sql.NullInt64{Int64: v, Valid: true}
	return nil
}

type appointmentUpdateReq struct {
	CustomerID optionalID `json:"customer_id"`
	Date       *string    `json:"date"`
	Time       *string    `json:"time"`
	Reason     *string    `json:"reason"`
}

func updateAppointmentHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := idParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		var req appointmentUpdateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		patch := model.AppointmentPatch{Reason: req.Reason}
		if req.CustomerID.set {
			patch.CustomerID = &req.CustomerID.value
		}
		if (req.Date == nil) != (req.Time == nil) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date and time must be supplied together"})
		}
		if req.Date != nil {
			start, err := validate.CombineDateTime(*req.Date, *req.Time)
			if err != nil {
				return errJSON(c, err)
			}
			patch.Start = &start
		}

		updated, err := d.turnos.Update(c.Request().Context(), id, patch)
		if err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("appointment", "update").Inc()

		return c.JSON(http.StatusOK, map[string]any{"updated": updated})
	}
}

func deleteAppointmentHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := idParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		deleted, err := d.turnos.Delete(c.Request().Context(), id)
		if err != nil {
			return errJSON(c, err)
		}
		if !deleted {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "appointment not found"})
		}

		metrics.OperationsTotal.WithLabelValues("appointment", "delete").Inc()

		return c.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}
