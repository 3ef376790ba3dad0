package paste

import (
	"context"
	"errors"
	"fmt"

	"github.com/xbt573/pastebin/internal/identifier"
	"github.com/xbt573/pastebin/internal/models"
	"github.com/xbt573/pastebin/internal/repository/paste"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

type Service interface {
	// Create stores content under a freshly generated id.
	Create(ctx context.Context, content string) (models.Paste, error)

	Get(ctx context.Context, id string) (models.Paste, error)
}

type Options struct {
	// IDLength defaults to identifier.DefaultLength.
	IDLength int
}

type concreteService struct {
	pasteRepository paste.Repository

	options Options
}

func New(pasteRepository paste.Repository, options Options) Service {
	if options.IDLength <= 0 {
		options.IDLength = identifier.DefaultLength
	}

	return &concreteService{pasteRepository, options}
}

func (c *concreteService) Create(ctx context.Context, content string) (models.Paste, error) {
	if len(content) <= 1 {
		return models.Paste{}, ErrInvalidRequest
	}

	p := models.Paste{
		ID:      identifier.Generate(c.options.IDLength),
		Content: content,
	}

	p, err := c.pasteRepository.Create(ctx, p)
	if err != nil {
		return models.Paste{}, fmt.Errorf("create paste: %w", err)
	}

	return p, nil
}

func (c *concreteService) Get(ctx context.Context, id string) (models.Paste, error) {
	p, err := c.pasteRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paste.ErrNotFound) {
			return models.Paste{}, ErrNotFound
		}

		return models.Paste{}, fmt.Errorf("get paste %q: %w", id, err)
	}

	return p, nil
}
