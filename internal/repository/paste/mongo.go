package paste

import (
	"context"
	"errors"

	"github.com/xbt573/pastebin/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongo(client *mongo.Client, database, collection string) Repository {
	return &mongoRepository{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

func (m *mongoRepository) Create(ctx context.Context, paste models.Paste) (models.Paste, error) {
	_, err := m.collection.InsertOne(ctx, paste)

	return paste, err
}

func (m *mongoRepository) GetByID(ctx context.Context, id string) (models.Paste, error) {
	var paste models.Paste

	err := m.collection.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&paste)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Paste{}, ErrNotFound
		}

		return models.Paste{}, err
	}

	return paste, nil
}

func (m *mongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
