package synapse

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/pkg/signature"
)

// NewServer creates the axon server with panic recovery, zstd handling and
// signature verification on every route except /health.
func NewServer(serverConfig *ServerConfig, verifier signature.SignatureVerifier) *Server {
	if serverConfig == nil {
		serverConfig = &ServerConfig{}
	}
	if serverConfig.Host == "" {
		serverConfig.Host = DefaultServerHost
	}
	if serverConfig.BodyLimit == 0 {
		serverConfig.BodyLimit = DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		Prefork:      false,
		ErrorHandler: fiberErrHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    serverConfig.BodyLimit,
	})

	app.Use(recover.New())

	whitelistedRoutes := []string{HealthRoute}
	app.Use(ZstdMiddleware(whitelistedRoutes))
	app.Use(SignatureMiddleware(verifier, whitelistedRoutes))

	return &Server{
		App:    app,
		config: serverConfig,
	}
}

func fiberErrHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	log.Error().
		Err(err).
		Int("status_code", code).
		Str("path", ctx.Path()).
		Str("method", ctx.Method()).
		Msg("Fiber error handler triggered")

	return ctx.Status(code).JSON(createResponse(map[string]interface{}{}, err))
}

// RouterHandler handles a decoded request and produces the response body.
type RouterHandler[Req any, Resp any] func(*fiber.Ctx, Req) (Resp, error)

// ServeRoute registers a POST handler at path that decodes Req and wraps the
// handler's Resp in the standard envelope.
func ServeRoute[Req any, Resp any](s *Server, path string, handler RouterHandler[Req, Resp]) {
	s.App.Post(path, func(c *fiber.Ctx) error {
		var req Req
		if err := c.BodyParser(&req); err != nil {
			log.Error().
				Err(err).
				Str("route", path).
				Msg("Failed to parse request body")
			return c.Status(fiber.StatusBadRequest).
				JSON(createResponse(map[string]interface{}{}, err))
		}

		resp, err := handler(c, req)
		if err != nil {
			log.Error().
				Err(err).
				Str("route", path).
				Msg("Handler returned error")
			var zero Resp
			return c.Status(fiber.StatusInternalServerError).JSON(createResponse(zero, err))
		}

		return c.JSON(createResponse(resp, nil))
	})
}

// ServeHealth registers the unsigned health route.
func ServeHealth(s *Server, handler func(*fiber.Ctx) (HealthResponse, error)) {
	s.App.Get(HealthRoute, func(c *fiber.Ctx) error {
		resp, err := handler(c)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(createResponse(resp, err))
		}
		return c.JSON(createResponse(resp, nil))
	})
}

// Start listens until the context is cancelled, then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.App.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down axon server")
		return s.App.Shutdown()
	}
}
