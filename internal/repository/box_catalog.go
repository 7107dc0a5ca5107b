// Package repository provides data access for box catalog configurations.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shipquote/rate-service/internal/domain/model"
)

// BoxCatalogConfig represents a box catalog configuration document.
// Exactly one document is active at a time; replacing the catalog
// deactivates the previous version rather than deleting it.
type BoxCatalogConfig struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Boxes     []model.BoxDefinition `bson:"boxes" json:"boxes"`
	Active    bool                  `bson:"active" json:"active"`
	Version   int                   `bson:"version" json:"version"`
	CreatedAt time.Time             `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time             `bson:"updated_at" json:"updated_at"`
	CreatedBy string                `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// BoxCatalogRepository provides methods for box catalog operations.
type BoxCatalogRepository struct {
	collection *mongo.Collection
}

// NewBoxCatalogRepository creates a new box catalog repository.
func NewBoxCatalogRepository(db *MongoDB) *BoxCatalogRepository {
	return &BoxCatalogRepository{
		collection: db.BoxCatalogs,
	}
}

// GetActive returns the active box catalog configuration.
// Returns nil without error when no configuration has been stored yet;
// callers fall back to the built-in catalog.
func (r *BoxCatalogRepository) GetActive(ctx context.Context) (*BoxCatalogConfig, error) {
	var config BoxCatalogConfig
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&config)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// ReplaceActive deactivates the current configuration and inserts a new
// active one with an incremented version.
func (r *BoxCatalogRepository) ReplaceActive(ctx context.Context, boxes []model.BoxDefinition, createdBy string) (*BoxCatalogConfig, error) {
	current, err := r.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	version := 1
	if current != nil {
		version = current.Version + 1
	}

	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}

	config := BoxCatalogConfig{
		ID:        primitive.NewObjectID(),
		Boxes:     boxes,
		Active:    true,
		Version:   version,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		CreatedBy: createdBy,
	}

	_, err = r.collection.InsertOne(ctx, config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// List returns box catalog configurations, newest first.
func (r *BoxCatalogRepository) List(ctx context.Context, limit int) ([]BoxCatalogConfig, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var configs []BoxCatalogConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}

	return configs, nil
}
