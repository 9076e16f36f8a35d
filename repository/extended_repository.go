package repository

import (
	"context"
	"reflect"

	"github.com/Muhammed-Anees-P/go-mongo-generic/domain"
	"github.com/Muhammed-Anees-P/go-mongo-generic/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// SingletonMongoRepository stores one configuration document per type. There
// is no soft delete here: ReplaceAll physically clears the collection.
type SingletonMongoRepository[T any] struct {
	base *BaseMongoRepository[T]
}

// NewSingletonMongoRepository builds a singleton repository over collection.
func NewSingletonMongoRepository[T any](db mongo.Database, collection string, opts ...Option) domain.SingletonRepository[T] {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SingletonMongoRepository[T]{
		base: &BaseMongoRepository[T]{db: db, collection: collection, logger: cfg.logger},
	}
}

// Get returns the first document in the collection.
func (r *SingletonMongoRepository[T]) Get(ctx context.Context) (*T, error) {
	coll := r.base.db.Collection(r.base.collection)
	var config T
	if err := coll.FindOne(ctx, bson.M{}).Decode(&config); err != nil {
		return nil, notFound("configuration not found", err)
	}
	return &config, nil
}

// Upsert writes the document in place, keyed by its id.
func (r *SingletonMongoRepository[T]) Upsert(ctx context.Context, config *T) error {
	if config == nil {
		return badRequest("config cannot be nil", nil)
	}

	r.base.setTimestamps(config, false)

	id := entityID(config)
	if id.IsZero() {
		return badRequest("config id cannot be empty", nil)
	}

	coll := r.base.db.Collection(r.base.collection)
	opts := options.Update().SetUpsert(true)
	if _, err := coll.UpdateOne(ctx, bson.M{domain.FieldID: id}, bson.M{"$set": config}, opts); err != nil {
		return badRequest("failed to upsert config", err)
	}
	return nil
}

// ReplaceAll swaps the collection's contents for configs.
func (r *SingletonMongoRepository[T]) ReplaceAll(ctx context.Context, configs []*T) error {
	coll := r.base.db.Collection(r.base.collection)

	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return badRequest("failed to clear configs", err)
	}
	if len(configs) == 0 {
		return nil
	}

	docs := make([]interface{}, len(configs))
	for i, config := range configs {
		if config == nil {
			return badRequest("config cannot be nil", nil)
		}
		r.base.setTimestamps(config, true)
		docs[i] = config
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return badRequest("failed to insert configs", err)
	}
	return nil
}

// SearchableMongoRepository adds name lookups and sorted reads on top of the
// base repository. The alive guard applies throughout.
type SearchableMongoRepository[T any] struct {
	*BaseMongoRepository[T]
}

// NewSearchableMongoRepository builds a searchable repository over collection.
func NewSearchableMongoRepository[T any](db mongo.Database, collection string, opts ...Option) domain.SearchableRepository[T] {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SearchableMongoRepository[T]{
		BaseMongoRepository: &BaseMongoRepository[T]{db: db, collection: collection, logger: cfg.logger},
	}
}

// GetByName fetches a live document by its name field, or (nil, nil) on a
// miss.
func (r *SearchableMongoRepository[T]) GetByName(ctx context.Context, name string) (*T, error) {
	if name == "" {
		return nil, badRequest("name cannot be empty", nil)
	}
	return r.GetOneByFilter(ctx, bson.M{"name": name})
}

// GetByNamePattern fetches the live documents whose name matches pattern,
// case-insensitively.
func (r *SearchableMongoRepository[T]) GetByNamePattern(ctx context.Context, pattern string) ([]*T, error) {
	if pattern == "" {
		return nil, badRequest("pattern cannot be empty", nil)
	}
	return r.GetByFilter(ctx, bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}})
}

// GetAllSorted returns every live document ordered by order.
func (r *SearchableMongoRepository[T]) GetAllSorted(ctx context.Context, order domain.SortOrder) ([]*T, error) {
	return r.GetPaginatedSorted(ctx, nil, 0, 0, order)
}

// GetPaginatedSorted returns a sorted window of the live documents matching
// filter. A zero limit means no limit.
func (r *SearchableMongoRepository[T]) GetPaginatedSorted(ctx context.Context, filter interface{}, skip, limit int64, order domain.SortOrder) ([]*T, error) {
	if order.Sort == "" {
		return nil, badRequest("sort field cannot be empty", nil)
	}

	opts := options.Find().SetSort(bson.M{order.Sort: order.Direction()})
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	coll := r.db.Collection(r.collection)
	cursor, err := coll.Find(ctx, r.alive(filter), opts)
	if err != nil {
		return nil, notFound("failed to find entities", err)
	}
	return r.drainCursor(ctx, cursor)
}

// AuditableMongoRepository adds timestamp-window reads on top of the base
// repository.
type AuditableMongoRepository[T any] struct {
	*BaseMongoRepository[T]
}

// NewAuditableMongoRepository builds an auditable repository over collection.
func NewAuditableMongoRepository[T any](db mongo.Database, collection string, opts ...Option) domain.AuditableRepository[T] {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &AuditableMongoRepository[T]{
		BaseMongoRepository: &BaseMongoRepository[T]{db: db, collection: collection, logger: cfg.logger},
	}
}

// GetCreatedAfter returns the live documents created strictly after the
// given instant.
func (r *AuditableMongoRepository[T]) GetCreatedAfter(ctx context.Context, after primitive.DateTime) ([]*T, error) {
	return r.GetByFilter(ctx, bson.M{domain.FieldCreatedAt: bson.M{"$gt": after}})
}

// GetUpdatedAfter returns the live documents updated strictly after the
// given instant.
func (r *AuditableMongoRepository[T]) GetUpdatedAfter(ctx context.Context, after primitive.DateTime) ([]*T, error) {
	return r.GetByFilter(ctx, bson.M{domain.FieldUpdatedAt: bson.M{"$gt": after}})
}

// GetCreatedBetween returns the live documents created inside the inclusive
// window [start, end].
func (r *AuditableMongoRepository[T]) GetCreatedBetween(ctx context.Context, start, end primitive.DateTime) ([]*T, error) {
	return r.GetByFilter(ctx, bson.M{domain.FieldCreatedAt: bson.M{"$gte": start, "$lte": end}})
}

// entityID reads the ObjectID out of the entity's id field, mirroring
// setEntityID.
func entityID[T any](entity *T) primitive.ObjectID {
	val := reflect.ValueOf(entity).Elem()
	typ := val.Type()
	if typ.Kind() != reflect.Struct {
		return primitive.NilObjectID
	}

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		name := bsonFieldName(typ.Field(i))
		if !field.CanInterface() || !matchesIDField(name) || !isObjectIDType(field.Type()) {
			continue
		}
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return primitive.NilObjectID
			}
			return field.Elem().Interface().(primitive.ObjectID)
		}
		return field.Interface().(primitive.ObjectID)
	}
	return primitive.NilObjectID
}
