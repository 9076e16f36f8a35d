package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCollectionIndexes creates the indexes backing the repository's
// document conventions on the given collection: the soft-delete flag every
// read filters on, and the created_at/updated_at stamps used for recency
// sorting.
func EnsureCollectionIndexes(ctx context.Context, db Database, collection string) error {
	coll := db.Collection(collection)

	if err := createIndex(ctx, coll, bson.D{{Key: "is_deleted", Value: 1}}, "is_deleted"); err != nil {
		return err
	}
	if err := createIndex(ctx, coll, bson.D{{Key: "created_at", Value: -1}}, "created_at"); err != nil {
		return err
	}
	if err := createIndex(ctx, coll, bson.D{{Key: "updated_at", Value: -1}}, "updated_at"); err != nil {
		return err
	}
	return nil
}

// EnsureUsernameIndex creates the unique index backing GetByUsername.
// Uniqueness is scoped to live documents so a soft-deleted account frees up
// its username. Partial-index filters only accept equality, so the filter
// matches is_deleted: false exactly; Create materializes the flag as false
// on every insert. Already-created indexes are left alone.
func EnsureUsernameIndex(ctx context.Context, db Database, collection string) error {
	coll := db.Collection(collection)

	specs, err := coll.Indexes().ListSpecifications(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes on %s: %w", collection, err)
	}
	for _, spec := range specs {
		if spec != nil && spec.Name == "username_unique" {
			return nil
		}
	}

	model := mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetName("username_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.D{
				{Key: "is_deleted", Value: false},
			}),
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create index username_unique on %s: %w", collection, err)
	}
	return nil
}

// DropCollectionIndexes removes every index on the collection except _id,
// for rebuilding the convention indexes after a schema change.
func DropCollectionIndexes(ctx context.Context, db Database, collection string) error {
	if _, err := db.Collection(collection).Indexes().DropAll(ctx); err != nil {
		return fmt.Errorf("failed to drop indexes on %s: %w", collection, err)
	}
	return nil
}

func createIndex(ctx context.Context, coll Collection, keys bson.D, name string) error {
	model := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create index %s: %w", name, err)
	}
	return nil
}
