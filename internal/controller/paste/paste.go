package paste

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/xbt573/pastebin/internal/models"
	pasteService "github.com/xbt573/pastebin/internal/service/paste"
	"github.com/xbt573/pastebin/internal/views"
)

// Sent with 200 when a view fails to render.
const renderFallback = "Woops something went wrong"

type Controller interface {
	Index(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error

	// Static serves files from the static directory for otherwise unmatched paths.
	Static(ctx *fiber.Ctx) error
}

type Options struct {
	StaticDir string
}

type concreteController struct {
	pasteService pasteService.Service
	options      Options
}

type uploadRequest struct {
	Content string `json:"content"`
}

type uploadResponse struct {
	ID string `json:"id"`
}

func New(pasteService pasteService.Service, opts Options) Controller {
	return &concreteController{pasteService, opts}
}

func (c *concreteController) Index(ctx *fiber.Ctx) error {
	return c.render(ctx, "index", fiber.Map{"Title": "pastebin"})
}

func (c *concreteController) Upload(ctx *fiber.Ctx) error {
	var req uploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.SendStatus(fiber.StatusBadRequest)
	}

	paste, err := c.pasteService.Create(ctx.UserContext(), req.Content)
	if err != nil {
		if errors.Is(err, pasteService.ErrInvalidRequest) {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		slog.Error("internal error", "err", err)
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}

	return ctx.JSON(uploadResponse{ID: paste.ID})
}

func (c *concreteController) Get(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	paste, err := c.pasteService.Get(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, pasteService.ErrNotFound) {
			return c.render(ctx, "not_found", fiber.Map{"Title": "not found"})
		}

		slog.Error("internal error", "err", err, "id", id)
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}

	return c.render(ctx, "paste", pasteView(paste))
}

func (c *concreteController) Static(ctx *fiber.Ctx) error {
	if ctx.Method() != fiber.MethodGet && ctx.Method() != fiber.MethodHead {
		return ctx.SendStatus(fiber.StatusMethodNotAllowed)
	}

	// Clean against "/" first so the request can't escape the directory.
	name := filepath.Join(c.options.StaticDir, filepath.Clean("/"+ctx.Path()))

	info, err := os.Stat(name)
	if err == nil && info.IsDir() {
		err = errors.New("is a directory")
	}
	if err != nil {
		// Report the request path, never the location on disk.
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}

		return ctx.Status(fiber.StatusInternalServerError).
			SendString(fmt.Sprintf("Failed to serve files: %s: %v", ctx.Path(), err))
	}

	return ctx.SendFile(name)
}

func (c *concreteController) render(ctx *fiber.Ctx, name string, bind fiber.Map) error {
	if err := ctx.Render(name, bind, views.Layout); err != nil {
		slog.Error("failed to render view", "view", name, "err", err)

		ctx.Type("html", "utf-8")
		return ctx.Status(fiber.StatusOK).SendString(renderFallback)
	}

	return nil
}

func pasteView(paste models.Paste) fiber.Map {
	return fiber.Map{
		"Title":   paste.ID,
		"ID":      paste.ID,
		"Content": paste.Content,
	}
}
