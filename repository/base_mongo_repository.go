package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/Muhammed-Anees-P/go-mongo-generic/domain"
	"github.com/Muhammed-Anees-P/go-mongo-generic/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// BaseMongoRepository is the generic MongoDB-backed implementation of
// domain.BaseRepository. Every method is a single forwarding call to the
// underlying collection: reads carry the alive guard, deletes flip the
// soft-delete flag, and failures are translated into the two domain error
// kinds.
type BaseMongoRepository[T any] struct {
	db         mongo.Database
	collection string
	logger     *zap.Logger
}

// Option configures a BaseMongoRepository.
type Option func(*config)

type config struct {
	logger *zap.Logger
}

// WithLogger attaches a zap logger; operations are traced at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewBaseMongoRepository builds a repository over the given collection.
func NewBaseMongoRepository[T any](db mongo.Database, collection string, opts ...Option) domain.BaseRepository[T] {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &BaseMongoRepository[T]{
		db:         db,
		collection: collection,
		logger:     cfg.logger,
	}
}

// alive wraps filter so soft-deleted documents never match. Documents
// created before the flag existed stay visible, hence $ne instead of a
// straight equality.
func (r *BaseMongoRepository[T]) alive(filter interface{}) bson.M {
	guard := bson.M{domain.FieldIsDeleted: bson.M{"$ne": true}}
	if filter == nil {
		return guard
	}
	return bson.M{"$and": bson.A{filter, guard}}
}

func (r *BaseMongoRepository[T]) debug(op string, fields ...zap.Field) {
	r.logger.Debug(op, append([]zap.Field{zap.String("collection", r.collection)}, fields...)...)
}

// notFound classifies a read-path failure, leaving already-classified
// errors and context errors untouched.
func notFound(message string, err error) error {
	if err != nil && domain.Translated(err) {
		return err
	}
	return domain.NewNotFound(message, err)
}

// badRequest classifies a write-path failure, with the same passthrough.
func badRequest(message string, err error) error {
	if err != nil && domain.Translated(err) {
		return err
	}
	return domain.NewBadRequest(message, err)
}

// Create inserts the entity with created_at/updated_at stamped and the
// soft-delete flag cleared, then writes the generated id back.
func (r *BaseMongoRepository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if entity == nil {
		return nil, badRequest("entity cannot be nil", nil)
	}

	r.setTimestamps(entity, true)
	r.setDeletedFlag(entity, false)

	coll := r.db.Collection(r.collection)
	resultID, err := coll.InsertOne(ctx, entity)
	if err != nil {
		return nil, badRequest("failed to create entity", err)
	}

	if oid, ok := resultID.(primitive.ObjectID); ok {
		r.setEntityID(entity, oid)
	}
	r.debug("create")

	return entity, nil
}

// CreateMany inserts a batch in one call. An empty batch is a no-op.
func (r *BaseMongoRepository[T]) CreateMany(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}

	docs := make([]interface{}, len(entities))
	for i, entity := range entities {
		if entity == nil {
			return badRequest("entity cannot be nil", nil)
		}
		r.setTimestamps(entity, true)
		r.setDeletedFlag(entity, false)
		docs[i] = entity
	}

	coll := r.db.Collection(r.collection)
	resultIDs, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return badRequest("failed to create entities", err)
	}

	for i, id := range resultIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(entities) {
			r.setEntityID(entities[i], oid)
		}
	}
	r.debug("create_many", zap.Int("count", len(entities)))

	return nil
}

// GetByID fetches a live document by id.
func (r *BaseMongoRepository[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	if id.IsZero() {
		return nil, badRequest("id cannot be empty", nil)
	}

	coll := r.db.Collection(r.collection)
	var entity T
	err := coll.FindOne(ctx, r.alive(bson.M{domain.FieldID: id})).Decode(&entity)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, notFound(fmt.Sprintf("entity not found with id: %s", id.Hex()), err)
		}
		return nil, notFound("failed to get entity", err)
	}

	return &entity, nil
}

// GetByUsername fetches a live document by its username field. A miss is
// not an error: (nil, nil) is returned.
func (r *BaseMongoRepository[T]) GetByUsername(ctx context.Context, username string) (*T, error) {
	return r.GetOneByFilter(ctx, bson.M{domain.FieldUsername: username})
}

// GetOneByFilter fetches a single live document, or (nil, nil) when none
// matches.
func (r *BaseMongoRepository[T]) GetOneByFilter(ctx context.Context, filter interface{}) (*T, error) {
	coll := r.db.Collection(r.collection)
	var entity T
	err := coll.FindOne(ctx, r.alive(filter)).Decode(&entity)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, notFound("failed to find entity", err)
	}

	return &entity, nil
}

// GetOneByFilterOrFail is GetOneByFilter with a miss promoted to not-found.
func (r *BaseMongoRepository[T]) GetOneByFilterOrFail(ctx context.Context, filter interface{}) (*T, error) {
	entity, err := r.GetOneByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, notFound("no entity matches the given filter", nil)
	}
	return entity, nil
}

// GetAll returns every live document in the collection.
func (r *BaseMongoRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.GetByFilter(ctx, nil)
}

// GetByFilter returns the live documents matching filter.
func (r *BaseMongoRepository[T]) GetByFilter(ctx context.Context, filter interface{}) ([]*T, error) {
	coll := r.db.Collection(r.collection)
	cursor, err := coll.Find(ctx, r.alive(filter))
	if err != nil {
		return nil, notFound("failed to find entities", err)
	}
	return r.drainCursor(ctx, cursor)
}

// GetPaginated returns a window of the live documents matching filter.
func (r *BaseMongoRepository[T]) GetPaginated(ctx context.Context, filter interface{}, skip, limit int64) ([]*T, error) {
	coll := r.db.Collection(r.collection)
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	cursor, err := coll.Find(ctx, r.alive(filter), opts)
	if err != nil {
		return nil, notFound("failed to find entities", err)
	}
	return r.drainCursor(ctx, cursor)
}

// GetOneByFilterPopulated runs a populated read and returns the first match,
// or (nil, nil) when nothing matches. populate accepts anything
// domain.NormalizePopulate does.
func (r *BaseMongoRepository[T]) GetOneByFilterPopulated(ctx context.Context, filter interface{}, populate interface{}) (*T, error) {
	pipeline := buildPopulatePipeline(r.alive(filter), domain.NormalizePopulate(populate))
	pipeline = append(pipeline, bson.D{{Key: "$limit", Value: 1}})

	coll := r.db.Collection(r.collection)
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, notFound("failed to find entity", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return nil, nil
	}
	var entity T
	if err := cursor.Decode(&entity); err != nil {
		return nil, notFound("failed to decode entity", err)
	}
	r.debug("find_one_populated")
	return &entity, nil
}

// GetByFilterPopulated runs a populated read over all matches.
func (r *BaseMongoRepository[T]) GetByFilterPopulated(ctx context.Context, filter interface{}, populate interface{}) ([]*T, error) {
	pipeline := buildPopulatePipeline(r.alive(filter), domain.NormalizePopulate(populate))

	coll := r.db.Collection(r.collection)
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, notFound("failed to find entities", err)
	}
	r.debug("find_populated")
	return r.drainCursor(ctx, cursor)
}

// UpdateByID applies update to a live document and returns the document as
// it stands after the update. Plain field maps are treated as a $set;
// updated_at is always stamped.
func (r *BaseMongoRepository[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (*T, error) {
	if id.IsZero() {
		return nil, badRequest("id cannot be empty", nil)
	}

	coll := r.db.Collection(r.collection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entity T
	err := coll.FindOneAndUpdate(ctx, r.alive(bson.M{domain.FieldID: id}), withUpdatedAt(update), opts).Decode(&entity)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, notFound(fmt.Sprintf("entity not found with id: %s", id.Hex()), err)
		}
		return nil, badRequest("failed to update entity", err)
	}
	r.debug("update", zap.String("id", id.Hex()))

	return &entity, nil
}

// UpdateMany applies update to every live document matching filter and
// reports how many were modified.
func (r *BaseMongoRepository[T]) UpdateMany(ctx context.Context, filter interface{}, update bson.M) (int64, error) {
	coll := r.db.Collection(r.collection)
	result, err := coll.UpdateMany(ctx, r.alive(filter), withUpdatedAt(update))
	if err != nil {
		return 0, badRequest("failed to update entities", err)
	}
	return result.ModifiedCount, nil
}

// Delete soft-deletes a live document. The document stays in the collection
// with is_deleted set.
func (r *BaseMongoRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	if id.IsZero() {
		return badRequest("id cannot be empty", nil)
	}

	coll := r.db.Collection(r.collection)
	update := bson.M{"$set": bson.M{
		domain.FieldIsDeleted: true,
		domain.FieldUpdatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}}

	var entity T
	err := coll.FindOneAndUpdate(ctx, r.alive(bson.M{domain.FieldID: id}), update).Decode(&entity)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return notFound(fmt.Sprintf("entity not found with id: %s", id.Hex()), err)
		}
		return badRequest("failed to delete entity", err)
	}
	r.debug("soft_delete", zap.String("id", id.Hex()))

	return nil
}

// DeleteManyByFilter soft-deletes every live document matching filter.
func (r *BaseMongoRepository[T]) DeleteManyByFilter(ctx context.Context, filter interface{}) (int64, error) {
	update := bson.M{"$set": bson.M{domain.FieldIsDeleted: true}}

	count, err := r.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	r.debug("soft_delete_many", zap.Int64("count", count))
	return count, nil
}

// Restore brings a soft-deleted document back.
func (r *BaseMongoRepository[T]) Restore(ctx context.Context, id primitive.ObjectID) error {
	if id.IsZero() {
		return badRequest("id cannot be empty", nil)
	}

	coll := r.db.Collection(r.collection)
	filter := bson.M{domain.FieldID: id, domain.FieldIsDeleted: true}
	update := bson.M{"$set": bson.M{
		domain.FieldIsDeleted: false,
		domain.FieldUpdatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}}

	var entity T
	err := coll.FindOneAndUpdate(ctx, filter, update).Decode(&entity)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return notFound(fmt.Sprintf("no deleted entity with id: %s", id.Hex()), err)
		}
		return badRequest("failed to restore entity", err)
	}
	r.debug("restore", zap.String("id", id.Hex()))

	return nil
}

// HardDelete physically removes a document, soft-deleted or not.
func (r *BaseMongoRepository[T]) HardDelete(ctx context.Context, id primitive.ObjectID) error {
	if id.IsZero() {
		return badRequest("id cannot be empty", nil)
	}

	coll := r.db.Collection(r.collection)
	deletedCount, err := coll.DeleteOne(ctx, bson.M{domain.FieldID: id})
	if err != nil {
		return badRequest("failed to delete entity", err)
	}
	if deletedCount == 0 {
		return notFound(fmt.Sprintf("entity not found with id: %s", id.Hex()), nil)
	}
	r.debug("hard_delete", zap.String("id", id.Hex()))

	return nil
}

// Count counts the live documents matching filter.
func (r *BaseMongoRepository[T]) Count(ctx context.Context, filter interface{}) (int64, error) {
	coll := r.db.Collection(r.collection)
	count, err := coll.CountDocuments(ctx, r.alive(filter))
	if err != nil {
		return 0, notFound("failed to count entities", err)
	}
	return count, nil
}

// Exists reports whether a live document with the given id exists.
func (r *BaseMongoRepository[T]) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if id.IsZero() {
		return false, badRequest("id cannot be empty", nil)
	}
	return r.ExistsByFilter(ctx, bson.M{domain.FieldID: id})
}

// ExistsByFilter reports whether any live document matches filter.
func (r *BaseMongoRepository[T]) ExistsByFilter(ctx context.Context, filter interface{}) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BaseMongoRepository[T]) drainCursor(ctx context.Context, cursor mongo.Cursor) ([]*T, error) {
	defer cursor.Close(ctx)

	var entities []*T
	if err := cursor.All(ctx, &entities); err != nil {
		return nil, notFound("failed to decode entities", err)
	}
	return entities, nil
}

// withUpdatedAt normalizes update into operator form and stamps updated_at.
// The caller's maps are copied, never written into.
func withUpdatedAt(update bson.M) bson.M {
	now := primitive.NewDateTimeFromTime(time.Now())

	hasOperator := false
	for key := range update {
		if strings.HasPrefix(key, "$") {
			hasOperator = true
			break
		}
	}

	if !hasOperator {
		set := bson.M{}
		for key, value := range update {
			set[key] = value
		}
		set[domain.FieldUpdatedAt] = now
		return bson.M{"$set": set}
	}

	out := bson.M{}
	for key, value := range update {
		out[key] = value
	}
	set := bson.M{}
	switch existing := out["$set"].(type) {
	case bson.M:
		for key, value := range existing {
			set[key] = value
		}
	case map[string]interface{}:
		for key, value := range existing {
			set[key] = value
		}
	}
	set[domain.FieldUpdatedAt] = now
	out["$set"] = set
	return out
}

// setTimestamps fills created_at/updated_at when the entity declares them.
func (r *BaseMongoRepository[T]) setTimestamps(entity *T, isCreate bool) {
	val := reflect.ValueOf(entity).Elem()
	typ := val.Type()
	if typ.Kind() != reflect.Struct {
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanSet() || field.Type() != reflect.TypeOf(now) {
			continue
		}

		switch bsonFieldName(typ.Field(i)) {
		case domain.FieldCreatedAt:
			if isCreate {
				field.Set(reflect.ValueOf(now))
			}
		case domain.FieldUpdatedAt:
			field.Set(reflect.ValueOf(now))
		}
	}
}

// setDeletedFlag materializes the soft-delete flag when the entity declares
// it. Entities without the field still obey the convention: reads use $ne
// and deletes $set the flag server-side.
func (r *BaseMongoRepository[T]) setDeletedFlag(entity *T, deleted bool) {
	val := reflect.ValueOf(entity).Elem()
	typ := val.Type()
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Bool {
			continue
		}
		if bsonFieldName(typ.Field(i)) == domain.FieldIsDeleted {
			field.SetBool(deleted)
			return
		}
	}
}

// setEntityID writes the generated ObjectID into the entity's id field.
func (r *BaseMongoRepository[T]) setEntityID(entity *T, id primitive.ObjectID) {
	val := reflect.ValueOf(entity).Elem()
	typ := val.Type()
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanSet() {
			continue
		}

		name := bsonFieldName(typ.Field(i))
		if matchesIDField(name) && isObjectIDType(field.Type()) {
			if field.Kind() == reflect.Ptr {
				newID := id
				field.Set(reflect.ValueOf(&newID))
			} else {
				field.Set(reflect.ValueOf(id))
			}
			return
		}
	}
}

func bsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("bson")
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name
}

func matchesIDField(name string) bool {
	return name == domain.FieldID || name == "ID"
}

func isObjectIDType(t reflect.Type) bool {
	return t == reflect.TypeOf(primitive.ObjectID{}) ||
		t == reflect.TypeOf(&primitive.ObjectID{})
}
