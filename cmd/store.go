package cmd

import (
	"context"
	"fmt"
	"time"

	pasteRepository "github.com/xbt573/pastebin/internal/repository/paste"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 15 * time.Second

func openRepository(ctx context.Context, cfg Database) (pasteRepository.Repository, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case MongoDB:
		return openMongo(ctx, cfg)
	case SQLite:
		uri := cfg.URI
		if uri == "" {
			uri = "pastebin.db"
		}
		dialector = sqlite.Open(uri)
	case PostgreSQL:
		dialector = postgres.Open(cfg.URI)
	default:
		return nil, fmt.Errorf("unknown database type: %v", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	return pasteRepository.NewGorm(db, cfg.Collection)
}

func openMongo(ctx context.Context, cfg Database) (pasteRepository.Repository, error) {
	uri, err := cfg.MongoURI()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return pasteRepository.NewMongo(client, cfg.Name, cfg.Collection), nil
}
