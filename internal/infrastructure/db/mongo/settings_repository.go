package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rankforge/agency-api/internal/core/domain"
)

const collectionSettings = "settings"

// settingsDocID keys the single site settings document.
const settingsDocID = "site"

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

type settingsDoc struct {
	ID       string          `bson:"_id"`
	Settings domain.Settings `bson:"settings"`
}

func (r *SettingsRepository) Load(ctx context.Context) (*domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc settingsDoc
	err := r.col.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}
	return &doc.Settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s *domain.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := settingsDoc{ID: settingsDocID, Settings: *s}
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, opts)
	return err
}
