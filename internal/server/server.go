package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/easyjobfind/easyjobfind/internal/francetravail"
	"github.com/easyjobfind/easyjobfind/internal/matching"
	"github.com/easyjobfind/easyjobfind/internal/profile"
	"go.uber.org/zap"
)

type profileAnalyzer interface {
	Analyze(ctx context.Context, resumeText string) profile.Profile
}

type offerFinder interface {
	FindMatches(ctx context.Context, p profile.Profile) []matching.ScoredOffer
	FindByKeyword(ctx context.Context, keyword string) []francetravail.Offer
}

// Server exposes the résumé analysis pipeline over HTTP.
type Server struct {
	app      *fiber.App
	logger   *zap.Logger
	analyzer profileAnalyzer
	finder   offerFinder
	maxBytes int64
}

func New(analyzer profileAnalyzer, finder offerFinder, log *zap.Logger) *Server {
	s := &Server{
		logger:   log,
		analyzer: analyzer,
		finder:   finder,
		maxBytes: 15 << 20,
	}

	app := fiber.New(fiber.Config{
		AppName:               "easyjobfind",
		BodyLimit:             int(s.maxBytes) + 1<<20,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", s.root)
	app.Get("/health", s.health)
	app.Post("/analyze", s.analyze)
	app.Get("/jobs/:keyword", s.jobs)

	s.app = app
	return s
}

// Listen blocks serving HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
