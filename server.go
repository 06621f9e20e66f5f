package suedtirolmobil

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/fugjoo/suedtirolmobil-go/config"
	"github.com/fugjoo/suedtirolmobil-go/efa"
	"github.com/fugjoo/suedtirolmobil-go/internal"
	"github.com/fugjoo/suedtirolmobil-go/requestlog"
)

// Server is the HTTP façade over the transit client.
type Server struct {
	app    *fiber.App
	client *efa.Client
	reqLog *requestlog.Logger
	log    *zap.SugaredLogger
}

// NewServer builds the server from the loaded configuration. Call
// config.LoadAppConfig first.
func NewServer() (*Server, error) {
	log := internal.Logger()

	reqLog, err := requestlog.Open(config.Config.RequestLog.Path)
	if err != nil {
		return nil, fmt.Errorf("open request log: %w", err)
	}

	client := efa.New(clientOptions(config.Config, reqLog, log))
	return &Server{
		app:    newApp(client, log),
		client: client,
		reqLog: reqLog,
		log:    log,
	}, nil
}

// clientOptions maps the yaml configuration onto client options. Zero config
// values stay zero so the client fills in its own defaults.
func clientOptions(cfg config.AppConfig, reqLog *requestlog.Logger, log *zap.SugaredLogger) efa.Options {
	return efa.Options{
		BaseURL:            cfg.Backend.BaseURL,
		Language:           cfg.Backend.Language,
		CoordFormat:        cfg.Backend.CoordFormat,
		RequestTimeout:     time.Duration(cfg.Backend.TimeoutMS) * time.Millisecond,
		MinRequestInterval: time.Duration(cfg.Backend.MinIntervalMS) * time.Millisecond,
		MaxConcurrent:      cfg.Backend.MaxConcurrent,
		StopCacheTTL:       time.Duration(cfg.Cache.StopTTLMS) * time.Millisecond,
		DepartureCacheTTL:  time.Duration(cfg.Cache.DepartureTTLMS) * time.Millisecond,
		TripCacheTTL:       time.Duration(cfg.Cache.TripTTLMS) * time.Millisecond,
		Logger:             log,
		Observer:           reqLog,
	}
}

// newApp wires routes and middleware. Split out from NewServer so handler
// tests can run against an app with an injected client.
func newApp(client *efa.Client, log *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if c.Path() != "/api/health" {
			log.Infow("request",
				"method", c.Method(),
				"path", c.Path(),
				"status", c.Response().StatusCode())
		}
		return err
	})
	app.Use(cors.New())

	h := &handlers{client: client, log: log}
	app.Get("/api/health", h.health)
	app.Get("/api/stops", h.stops)
	app.Get("/api/departures", h.departures)
	app.Get("/api/trips", h.trips)
	return app
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", config.Config.Server.Port)
	s.log.Infow("server listening", "addr", addr)
	return s.app.Listen(addr)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then drains open
// connections and closes the request log.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	s.log.Infow("shutdown signal received")
	if err := s.app.ShutdownWithTimeout(10 * time.Second); err != nil {
		s.log.Errorw("server shutdown", "error", err)
	}
	s.reqLog.Close()
}
