package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Octaviomaldonado/GestorClientes/internal/metrics"
	"github.com/Octaviomaldonado/GestorClientes/internal/model"
	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
	"github.com/Octaviomaldonado/GestorClientes/internal/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type customerCreateReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Region    string `json:"region"` // phone region, default from config
	Active    *bool  `json:"active"`
	Notes     string `json:"notes"`
}

// errJSON maps the error taxonomy onto status codes: validation 400,
// duplicate email 409, dangling customer reference 422.
func errJSON(c echo.Context, err error) error {
	var verr *validate.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, repository.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, map[string]string{"error": "email already exists"})
	case errors.Is(err, repository.ErrMissingCustomer):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "customer does not exist"})
	}
	log.Errorf("db error: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
}

func idParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func createCustomerHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req customerCreateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		req.FirstName = strings.TrimSpace(req.FirstName)
		req.LastName = strings.TrimSpace(req.LastName)
		if req.FirstName == "" || req.LastName == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "first_name and last_name are required"})
		}

		email, err := d.validator.NormalizeEmail(req.Email)
		if err != nil {
			return errJSON(c, err)
		}
		phone, err := d.validator.NormalizePhone(req.Phone, req.Region)
		if err != nil {
			return errJSON(c, err)
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}

		id, err := d.customers.Create(c.Request().Context(), model.Customer{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     phone,
			Email:     email,
			Active:    active,
			Notes:     strings.TrimSpace(req.Notes),
		})
		if err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("customer", "create").Inc()

		return c.JSON(http.StatusCreated, map[string]any{"id": id, "email": email, "phone": phone})
	}
}

func listCustomersHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter, ok := model.ParseActiveFilter(c.QueryParam("active"))
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid active filter"})
		}
		rows, err := d.customers.List(c.Request().Context(), filter, c.QueryParam("q"))
		if err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("customer", "list").Inc()

		return c.JSON(http.StatusOK, map[string]any{"count": len(rows), "results": rows})
	}
}

func getCustomerHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := idParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		cust, err := d.customers.GetByID(c.Request().Context(), id)
		if err != nil {
			return errJSON(c, err)
		}
		if cust == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}
		return c.JSON(http.StatusOK, cust)
	}
}

func getCustomerByEmailHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, err := d.validator.NormalizeEmail(c.Param("email"))
		if err != nil {
			return errJSON(c, err)
		}
		cust, err := d.customers.GetByEmail(c.Request().Context(), email)
		if err != nil {
			return errJSON(c, err)
		}
		if cust == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}
		return c.JSON(http.StatusOK, cust)
	}
}

type customerUpdateReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Region    string  `json:"region"`
	Email     *string `json:"email"`
	Active    *bool   `json:"active"`
	Notes     *string `json:"notes"`
}

func updateCustomerHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := idParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		var req customerUpdateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		patch := model.CustomerPatch{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Active:    req.Active,
			Notes:     req.Notes,
		}
		if req.Email != nil {
			email, err := d.validator.NormalizeEmail(*req.Email)
			if err != nil {
				return errJSON(c, err)
			}
			patch.Email = &email
		}
		if req.Phone != nil {
			phone, err := d.validator.NormalizePhone(*req.Phone, req.Region)
			if err != nil {
				return errJSON(c, err)
			}
			patch.Phone = &phone
		}

		updated, err := d.customers.UpdateByID(c.Request().Context(), id, patch)
		if err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("customer", "update").Inc()

		return c.JSON(http.StatusOK, map[string]any{"updated": updated})
	}
}

func toggleCustomerHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := idParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		cust, err := d.customers.GetByID(c.Request().Context(), id)
		if err != nil {
			return errJSON(c, err)
		}
		if cust == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}

		next := !cust.Active
		if _, err := d.customers.UpdateByID(c.Request().Context(), id, model.CustomerPatch{Active: &next}); err != nil {
			return errJSON(c, err)
		}

		metrics.OperationsTotal.WithLabelValues("customer", "update").Inc()

		return c.JSON(http.StatusOK, map[string]any{"id": id, "active": next})
	}
}

func deleteCustomerHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := idParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		deleted, err := d.customers.DeleteByID(c.Request().Context(), id)
		if err != nil {
			return errJSON(c, err)
		}
		if !deleted {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}

		metrics.OperationsTotal.WithLabelValues("customer", "delete").Inc()

		return c.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}

func statsHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		total, err := d.customers.Count(ctx, model.ActiveAll)
		if err != nil {
			return errJSON(c, err)
		}
		active, err := d.customers.Count(ctx, model.ActiveOnly)
		if err != nil {
			return errJSON(c, err)
		}
		noteCount, err := d.notes.Count(ctx)
		if err != nil {
			return errJSON(c, err)
		}
		cfg, err := d.resolver.Resolve(ctx)
		if err != nil {
			return errJSON(c, err)
		}

		return c.JSON(http.StatusOK, model.Stats{
			Customers: total,
			Active:    active,
			Inactive:  total - active,
			Notes:     noteCount,
			MailReady: cfg.Complete(),
		})
	}
}
