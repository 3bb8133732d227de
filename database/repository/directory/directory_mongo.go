package directoryRepo

import (
	"context"
	"fmt"
	"time"

	"lexmap/database"
	"lexmap/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDirectoryRepo implements DirectoryRepository using MongoDB.
type MongoDirectoryRepo struct {
	providers    *mongo.Collection
	institutions *mongo.Collection
}

// NewMongoDirectoryRepo creates a DirectoryRepository backed by the "lexmap"
// database.
func NewMongoDirectoryRepo() DirectoryRepository {
	db := database.MongoClient.Database("lexmap")
	repo := &MongoDirectoryRepo{
		providers:    db.Collection("providers"),
		institutions: db.Collection("institutions"),
	}
	repo.ensureIndexes()
	return repo
}

func (r *MongoDirectoryRepo) GetProviders() ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.providers.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve providers: %w", err)
	}
	defer cursor.Close(ctx)
	var providers []models.Provider
	for cursor.Next(ctx) {
		var p models.Provider
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode provider: %w", err)
		}
		providers = append(providers, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("provider cursor error: %w", err)
	}
	return providers, nil
}

func (r *MongoDirectoryRepo) GetInstitutions() ([]models.Institution, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.institutions.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve institutions: %w", err)
	}
	defer cursor.Close(ctx)
	var institutions []models.Institution
	for cursor.Next(ctx) {
		var inst models.Institution
		if err := cursor.Decode(&inst); err != nil {
			return nil, fmt.Errorf("failed to decode institution: %w", err)
		}
		institutions = append(institutions, inst)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("institution cursor error: %w", err)
	}
	return institutions, nil
}

func (r *MongoDirectoryRepo) UpdateProviderStatus(id string, status models.ProviderStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.providers.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update status for provider %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", id)
	}
	return nil
}

func (r *MongoDirectoryRepo) UpdateConnectionQuality(id string, quality models.ConnectionQuality) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"connectionQuality": quality, "updatedAt": time.Now()}}
	result, err := r.providers.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update connection quality for provider %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", id)
	}
	return nil
}

func (r *MongoDirectoryRepo) SeedIfEmpty(providers []models.Provider, institutions []models.Institution) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	provCount, err := r.providers.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count providers: %w", err)
	}
	instCount, err := r.institutions.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count institutions: %w", err)
	}
	if provCount > 0 || instCount > 0 {
		return nil
	}

	if len(providers) > 0 {
		docs := make([]interface{}, 0, len(providers))
		for _, p := range providers {
			docs = append(docs, p)
		}
		if _, err := r.providers.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to seed providers: %w", err)
		}
	}
	if len(institutions) > 0 {
		docs := make([]interface{}, 0, len(institutions))
		for _, inst := range institutions {
			docs = append(docs, inst)
		}
		if _, err := r.institutions.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to seed institutions: %w", err)
		}
	}
	return nil
}
