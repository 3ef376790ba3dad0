package paste

import (
	"context"
	"errors"

	"github.com/xbt573/pastebin/internal/models"
)

var ErrNotFound = errors.New("paste not found")

type Repository interface {
	Create(ctx context.Context, paste models.Paste) (models.Paste, error)
	GetByID(ctx context.Context, id string) (models.Paste, error)

	Close(ctx context.Context) error
}
