package app

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/xbt573/pastebin/internal/controller/paste"
	"github.com/xbt573/pastebin/internal/views"
)

type App struct {
	fiber *fiber.App
}

type Options struct {
	BodyLimit uint

	// Views defaults to the embedded templates.
	Views fiber.Views
}

func New(pasteController paste.Controller, opts Options) *App {
	if opts.Views == nil {
		opts.Views = views.New()
	}

	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             int(opts.BodyLimit),
		Views:                 opts.Views,
	})

	f.Use(recover.New())

	f.Get("/", pasteController.Index)
	f.Post("/upload", pasteController.Upload)
	// Keeps "/upload" from being looked up as a paste id.
	f.All("/upload", methodNotAllowed(fiber.MethodPost))
	f.Get("/:id", pasteController.Get)

	f.Use(pasteController.Static)

	return &App{f}
}

func methodNotAllowed(allow string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderAllow, allow)
		return ctx.SendStatus(fiber.StatusMethodNotAllowed)
	}
}

func (a *App) Handler() *fiber.App {
	return a.fiber
}

func (a *App) Listen(addr string, ctx context.Context) error {
	errch := make(chan error, 1)

	go func() {
		errch <- a.fiber.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		return a.fiber.Shutdown()
	case err := <-errch:
		if err != nil {
			return err
		}
	}

	return nil
}
