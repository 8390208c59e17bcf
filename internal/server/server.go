// Package server exposes the matching pipeline over HTTP.
package server

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dnlam/staff-matcher/internal/recommend"
	"github.com/dnlam/staff-matcher/internal/requirement"
)

// MatchFunc runs one matching request end to end. The server holds a
// factory-style function rather than a pipeline instance because HR data
// is cached per request, never across requests.
type MatchFunc func(ctx context.Context, description string) (*recommend.Outcome, error)

type Server struct {
	app    *fiber.App
	match  MatchFunc
	logger *zap.Logger
}

type matchRequest struct {
	Description string `json:"description"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(match MatchFunc, logger *zap.Logger) *Server {
	s := &Server{
		app:    fiber.New(fiber.Config{}),
		match:  match,
		logger: logger,
	}

	s.app.Use(s.accessLog())

	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api/v1")
	api.Post("/match", s.handleMatch)

	return s
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	if !strings.HasPrefix(addr, ":") && !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleMatch(c fiber.Ctx) error {
	var req matchRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "description must not be empty"})
	}

	outcome, err := s.match(c.Context(), req.Description)
	if err != nil {
		if requirement.IsInputError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
		}

		s.logger.Error("matching run failed",
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "internal server error"})
	}

	return c.JSON(outcome)
}

const requestIDHeader = "X-Request-ID"

func requestID(c fiber.Ctx) string {
	return c.GetRespHeader(requestIDHeader)
}

func (s *Server) accessLog() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDHeader, rid)

		err := c.Next()

		s.logger.Info("http request",
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}
