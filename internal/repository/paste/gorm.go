package paste

import (
	"context"
	"errors"

	"github.com/xbt573/pastebin/internal/models"
	"gorm.io/gorm"
)

// record is the row layout for SQL backends. RowID only exists because gorm
// wants a primary key; ids are indexed but not unique.
type record struct {
	RowID   uint   `gorm:"primaryKey;autoIncrement"`
	PasteID string `gorm:"column:id;index;not null"`
	Content string `gorm:"not null"`
}

type gormRepository struct {
	db    *gorm.DB
	table string
}

func NewGorm(db *gorm.DB, table string) (Repository, error) {
	if err := db.Table(table).AutoMigrate(&record{}); err != nil {
		return nil, err
	}

	return &gormRepository{db, table}, nil
}

func (g *gormRepository) Create(ctx context.Context, paste models.Paste) (models.Paste, error) {
	row := record{PasteID: paste.ID, Content: paste.Content}

	result := g.db.WithContext(ctx).Table(g.table).Create(&row)

	return paste, result.Error
}

func (g *gormRepository) GetByID(ctx context.Context, id string) (models.Paste, error) {
	var row record

	result := g.db.WithContext(ctx).Table(g.table).Where("id = ?", id).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return models.Paste{}, ErrNotFound
		}

		return models.Paste{}, result.Error
	}

	return models.Paste{ID: row.PasteID, Content: row.Content}, nil
}

func (g *gormRepository) Close(_ context.Context) error {
	db, err := g.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
