package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/Octaviomaldonado/GestorClientes/internal/config"
	"github.com/Octaviomaldonado/GestorClientes/internal/mail"
	"github.com/Octaviomaldonado/GestorClientes/internal/metrics"
	"github.com/Octaviomaldonado/GestorClientes/internal/repository"
	"github.com/Octaviomaldonado/GestorClientes/internal/util"
	"github.com/Octaviomaldonado/GestorClientes/internal/validate"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registerMetricsOnce sync.Once

type Server struct{ e *echo.Echo }

// deps bundles what the handlers need; everything is built once in NewServer
// and each request opens its own connection scope through the shared pool.
type deps struct {
	customers repository.CustomersRepository
	notes     repository.NotesRepository
	turnos    repository.AppointmentsRepository
	settings  repository.SettingsRepository
	validator *validate.Validator
	resolver  *mail.Resolver
	sender    *mail.Sender
}

func NewServer(cfg config.Config, dbx *sqlx.DB) *Server {
	settingsRepo := repository.NewSettingsRepository(dbx)

	d := &deps{
		customers: repository.NewCustomersRepository(dbx),
		notes:     repository.NewNotesRepository(dbx),
		turnos:    repository.NewAppointmentsRepository(dbx),
		settings:  settingsRepo,
		validator: validate.New(cfg.Validation.DefaultRegion, cfg.Validation.CheckMX),
		resolver:  mail.NewResolver(settingsRepo, nil),
		sender:    mail.NewSender(cfg.Mail.SendTimeout),
	}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(
		echoMid.Recover(),
		echoMid.Logger(),
		echoMid.RequestIDWithConfig(echoMid.RequestIDConfig{Generator: util.New}),
	)

	registerMetricsOnce.Do(func() {
		metrics.MustRegister(prometheus.DefaultRegisterer)
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// routes
	v1 := e.Group("/v1")

	v1.GET("/stats", statsHandler(d))

	v1.POST("/customers", createCustomerHandler(d))
	v1.GET("/customers", listCustomersHandler(d))
	v1.GET("/customers/:id", getCustomerHandler(d))
	v1.GET("/customers/by-email/:email", getCustomerByEmailHandler(d))
	v1.PATCH("/customers/:id", updateCustomerHandler(d))
	v1.POST("/customers/:id/toggle", toggleCustomerHandler(d))
	v1.DELETE("/customers/:id", deleteCustomerHandler(d))

	v1.POST("/notes", createNoteHandler(d))
	v1.GET("/notes", listNotesHandler(d))
	v1.DELETE("/notes/:id", deleteNoteHandler(d))

	v1.POST("/appointments", createAppointmentHandler(d))
	v1.GET("/appointments", listAppointmentsHandler(d))
	v1.GET("/appointments/:id", getAppointmentHandler(d))
	v1.PATCH("/appointments/:id", updateAppointmentHandler(d))
	v1.DELETE("/appointments/:id", deleteAppointmentHandler(d))

	v1.GET("/settings", listSettingsHandler(d))
	v1.PUT("/settings", saveSettingsHandler(d))
	v1.GET("/mail/config", mailConfigHandler(d))
	v1.POST("/mail/send", sendMailHandler(d))

	v1.GET("/export/customers", exportCustomersHandler(d))
	v1.GET("/export/appointments", exportAppointmentsHandler(d))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error            { return s.e.Start(addr) }
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

// Handler exposes the routing tree, used by tests.
func (s *Server) Handler() http.Handler { return s.e }
