package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SingletonRepository manages a collection that holds one configuration
// document per type. Singleton documents bypass the soft-delete convention.
type SingletonRepository[T any] interface {
	Get(ctx context.Context) (*T, error)
	Upsert(ctx context.Context, config *T) error
	ReplaceAll(ctx context.Context, configs []*T) error
}

// SearchableRepository extends BaseRepository with name lookups and sorted
// reads.
type SearchableRepository[T any] interface {
	BaseRepository[T]

	GetByName(ctx context.Context, name string) (*T, error)
	GetByNamePattern(ctx context.Context, pattern string) ([]*T, error)
	GetAllSorted(ctx context.Context, order SortOrder) ([]*T, error)
	GetPaginatedSorted(ctx context.Context, filter interface{}, skip, limit int64, order SortOrder) ([]*T, error)
}

// AuditableRepository extends BaseRepository with timestamp-window reads over
// the created_at/updated_at fields.
type AuditableRepository[T any] interface {
	BaseRepository[T]

	GetCreatedAfter(ctx context.Context, after primitive.DateTime) ([]*T, error)
	GetUpdatedAfter(ctx context.Context, after primitive.DateTime) ([]*T, error)
	GetCreatedBetween(ctx context.Context, start, end primitive.DateTime) ([]*T, error)
}
