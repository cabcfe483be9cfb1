package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Octaviomaldonado/GestorClientes/internal/mail"
	"github.com/Octaviomaldonado/GestorClientes/internal/metrics"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func listSettingsHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		all, err := d.settings.All(c.Request().Context())
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(http.StatusOK, all)
	}
}

func saveSettingsHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body map[string]string
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		if len(body) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "no settings supplied"})
		}

		ctx := c.Request().Context()
		for k, v := range body {
			k = strings.TrimSpace(k)
			if k == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "empty setting key"})
			}
			if err := d.settings.Set(ctx, k, strings.TrimSpace(v)); err != nil {
				return errJSON(c, err)
			}
		}

		metrics.OperationsTotal.WithLabelValues("setting", "update").Inc()

		return c.JSON(http.StatusOK, map[string]any{"saved": len(body)})
	}
}

func mailConfigHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg, err := d.resolver.Resolve(c.Request().Context())
		if err != nil {
			return errJSON(c, err)
		}
		// Config marshals without the password
		return c.JSON(http.StatusOK, map[string]any{"config": cfg, "complete": cfg.Complete()})
	}
}

type sendMailReq struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func sendMailHandler(d *deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req sendMailReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		req.Subject = strings.TrimSpace(req.Subject)
		req.Body = strings.TrimSpace(req.Body)
		if req.Subject == "" || req.Body == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "subject and body are required"})
		}

		to, err := d.validator.NormalizeEmail(req.To)
		if err != nil {
			return errJSON(c, err)
		}

		ctx := c.Request().Context()
		cfg, err := d.resolver.Resolve(ctx)
		if err != nil {
			return errJSON(c, err)
		}

		if err := d.sender.Send(ctx, cfg, to, req.Subject, req.Body); err != nil {
			if errors.Is(err, mail.ErrIncompleteConfig) {
				return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			}
			log.Errorf("mail send failed: %v", err)
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "delivery failed: " + err.Error()})
		}

		metrics.OperationsTotal.WithLabelValues("mail", "send").Inc()

		return c.JSON(http.StatusOK, map[string]any{"sent": true, "to": to})
	}
}
