package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document field conventions the repository relies on. is_deleted is the
// only structure this module imposes on stored documents; the timestamp and
// id fields are stamped only when the entity declares them.
const (
	FieldID        = "_id"
	FieldIsDeleted = "is_deleted"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldUsername  = "username"
)

// BaseRepository is the generic CRUD contract. All reads exclude
// soft-deleted documents; Delete and DeleteManyByFilter only ever flip the
// is_deleted flag, physical removal goes through HardDelete.
//
// Lookup misses behave as follows: GetByID, UpdateByID, Delete, Restore,
// HardDelete and GetOneByFilterOrFail fail with ErrNotFound, while
// GetByUsername and GetOneByFilter return (nil, nil). Write failures surface
// as ErrBadRequest, read failures as ErrNotFound.
type BaseRepository[T any] interface {
	// Create / batch create
	Create(ctx context.Context, entity *T) (*T, error)
	CreateMany(ctx context.Context, entities []*T) error

	// Single-document reads
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	GetByUsername(ctx context.Context, username string) (*T, error)
	GetOneByFilter(ctx context.Context, filter interface{}) (*T, error)
	GetOneByFilterOrFail(ctx context.Context, filter interface{}) (*T, error)

	// Multi-document reads
	GetAll(ctx context.Context) ([]*T, error)
	GetByFilter(ctx context.Context, filter interface{}) ([]*T, error)
	GetPaginated(ctx context.Context, filter interface{}, skip, limit int64) ([]*T, error)

	// Reads with reference expansion. populate accepts whatever
	// NormalizePopulate accepts: a path string, a PopulateOption, or a
	// slice of either.
	GetOneByFilterPopulated(ctx context.Context, filter interface{}, populate interface{}) (*T, error)
	GetByFilterPopulated(ctx context.Context, filter interface{}, populate interface{}) ([]*T, error)

	// Updates
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (*T, error)
	UpdateMany(ctx context.Context, filter interface{}, update bson.M) (int64, error)

	// Deletion and recovery
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteManyByFilter(ctx context.Context, filter interface{}) (int64, error)
	Restore(ctx context.Context, id primitive.ObjectID) error
	HardDelete(ctx context.Context, id primitive.ObjectID) error

	// Checks
	Count(ctx context.Context, filter interface{}) (int64, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	ExistsByFilter(ctx context.Context, filter interface{}) (bool, error)
}
