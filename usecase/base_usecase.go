package usecase

import (
	"context"
	"time"

	"github.com/Muhammed-Anees-P/go-mongo-generic/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseUsecase is the application-facing layer over a BaseRepository: it
// bounds every call with a timeout and accepts ids as hex strings, so
// transport handlers never touch ObjectIDs directly.
type BaseUsecase[T any] interface {
	Create(ctx context.Context, entity *T) (*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	GetByUsername(ctx context.Context, username string) (*T, error)
	GetAll(ctx context.Context) ([]*T, error)
	GetPaginated(ctx context.Context, page, pageSize int) ([]*T, int64, error)
	UpdateByID(ctx context.Context, id string, updates map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// BaseUsecaseImpl delegates to a BaseRepository with a per-call deadline.
type BaseUsecaseImpl[T any] struct {
	repo    domain.BaseRepository[T]
	timeout time.Duration
}

// NewBaseUsecase wraps repo with the given per-call timeout.
func NewBaseUsecase[T any](repo domain.BaseRepository[T], timeout time.Duration) BaseUsecase[T] {
	return &BaseUsecaseImpl[T]{
		repo:    repo,
		timeout: timeout,
	}
}

// parseID decodes a hex id. Malformed input never reaches the repository.
func parseID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, domain.NewBadRequest("id cannot be empty", nil)
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.NewBadRequest("invalid id format", err)
	}
	return objID, nil
}

func (uc *BaseUsecaseImpl[T]) Create(ctx context.Context, entity *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.repo.Create(ctx, entity)
}

func (uc *BaseUsecaseImpl[T]) GetByID(ctx context.Context, id string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, objID)
}

func (uc *BaseUsecaseImpl[T]) GetByUsername(ctx context.Context, username string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if username == "" {
		return nil, domain.NewBadRequest("username cannot be empty", nil)
	}
	return uc.repo.GetByUsername(ctx, username)
}

func (uc *BaseUsecaseImpl[T]) GetAll(ctx context.Context) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.repo.GetAll(ctx)
}

// GetPaginated returns one page plus the total count of live documents.
// Pages are 1-based; out-of-range inputs are clamped.
func (uc *BaseUsecaseImpl[T]) GetPaginated(ctx context.Context, page, pageSize int) ([]*T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	total, err := uc.repo.Count(ctx, nil)
	if err != nil {
		return nil, 0, err
	}

	skip := int64(page-1) * int64(pageSize)
	entities, err := uc.repo.GetPaginated(ctx, nil, skip, int64(pageSize))
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (uc *BaseUsecaseImpl[T]) UpdateByID(ctx context.Context, id string, updates map[string]interface{}) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, domain.NewBadRequest("updates cannot be empty", nil)
	}
	return uc.repo.UpdateByID(ctx, objID, bson.M(updates))
}

func (uc *BaseUsecaseImpl[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	objID, err := parseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, objID)
}

func (uc *BaseUsecaseImpl[T]) Restore(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	objID, err := parseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Restore(ctx, objID)
}

func (uc *BaseUsecaseImpl[T]) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.repo.Count(ctx, nil)
}

func (uc *BaseUsecaseImpl[T]) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	objID, err := parseID(id)
	if err != nil {
		return false, err
	}
	return uc.repo.Exists(ctx, objID)
}
