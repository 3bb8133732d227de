package directoryRepo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the id and 2dsphere indexes used by directory reads.
func (r *MongoDirectoryRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	geoIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "locationGeo", Value: "2dsphere"}},
	}

	if _, err := r.providers.Indexes().CreateMany(ctx, []mongo.IndexModel{idIndex, geoIndex}); err != nil {
		log.Printf("directory: failed to create provider indexes: %v", err)
	}
	if _, err := r.institutions.Indexes().CreateMany(ctx, []mongo.IndexModel{idIndex, geoIndex}); err != nil {
		log.Printf("directory: failed to create institution indexes: %v", err)
	}
}
