// Package server exposes the single-route HTTP surface of the service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"mvdan.cc/xurls/v2"

	"textdigest/internal/domain"
	"textdigest/internal/translator"
)

// Publisher is the slice of the document layer the handler needs.
type Publisher interface {
	Publish(ctx context.Context, title string, requests []domain.Request) (string, error)
}

// TitleFetcher resolves a page title, best-effort.
type TitleFetcher interface {
	Fetch(ctx context.Context, pageURL string) string
}

type Server struct {
	echo       *echo.Echo
	translator translator.Translator
	publisher  Publisher
	titles     TitleFetcher
	log        *slog.Logger
	requests   *prometheus.CounterVec
	urlRe      *regexp.Regexp
}

// New wires the handler with its collaborators. translator or publisher may
// be nil when client bootstrap failed at startup; requests then answer 500
// until the process is restarted with working configuration.
func New(
	t translator.Translator,
	p Publisher,
	titles TitleFetcher,
	log *slog.Logger,
) (*Server, error) {
	urlRe, err := xurls.StrictMatchingScheme("https?://")
	if err != nil {
		return nil, fmt.Errorf("create regexp: %w", err)
	}

	registry := prometheus.NewRegistry()
	requests := promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "textdigest_requests_total",
		Help: "Processed document requests by HTTP status.",
	}, []string{"status"})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if httpErr.Message != nil {
				msg = fmt.Sprint(httpErr.Message)
			}
		}

		req := c.Request()
		log.ErrorContext(req.Context(), "Request failed",
			"error", err,
			"method", req.Method,
			"path", req.URL.Path,
			"status", code)

		if !c.Response().Committed {
			_ = c.JSON(code, errorResponse{Error: msg})
		}
	}

	s := &Server{
		echo:       e,
		translator: t,
		publisher:  p,
		titles:     titles,
		log:        log,
		requests:   requests,
		urlRe:      urlRe,
	}

	e.POST("/", s.handleProcess)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	))

	return s, nil
}

// Handler exposes the routed handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(port string) error {
	return s.echo.Start(":" + port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
