package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Octaviomaldonado/GestorClientes/internal/metrics"
	"github.com/labstack/echo/v4"
)

type noteCreateReq struct {
	CustomerID int64  `json:"customer_id"`
	Content    string `json:"content"`
}

func createNoteHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req noteCreateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		req.Content = strings.TrimSpace(req.Content)
		if req.CustomerID <= 0 || req.Content == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "customer_id and content are required"})
		}

		id, err := d.notes.Add(c.Request().Context(), req.CustomerID, req.Content)
		if err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("note", "create").Inc()

		return c.JSON(http.StatusCreated, map[string]any{"id": id})
	}
}

func listNotesHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var customerID *int64
		if raw := c.QueryParam("customer_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer_id"})
			}
			customerID = &id
		}

		rows, err := d.notes.List(c.Request().Context(), customerID)
		if err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("note", "list").Inc()

		return c.JSON(http.StatusOK, map[string]any{"count": len(rows), "results": rows})
	}
}

func deleteNoteHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := idParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		deleted, err := d.notes.Delete(c.Request().Context(), id)
		if err != nil {
			return errJSON(c, err)
		}
		if !deleted {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "note not found"})
		}

		metrics.OperationsTotal.WithLabelValues("note", "delete").Inc()

		return c.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}
