package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeIndexView struct {
	models  []mongo.IndexModel
	specs   []*mongo.IndexSpecification
	dropped bool
}

func (f *fakeIndexView) CreateOne(ctx context.Context, model mongo.IndexModel) (string, error) {
	f.models = append(f.models, model)
	if model.Options != nil && model.Options.Name != nil {
		return *model.Options.Name, nil
	}
	return "", nil
}

func (f *fakeIndexView) DropAll(ctx context.Context) (bson.Raw, error) {
	f.dropped = true
	return nil, nil
}

func (f *fakeIndexView) ListSpecifications(ctx context.Context) ([]*mongo.IndexSpecification, error) {
	return f.specs, nil
}

// indexOnlyCollection exposes just the index view; everything else panics if
// reached.
type indexOnlyCollection struct {
	Collection
	iv IndexView
}

func (c *indexOnlyCollection) Indexes() IndexView { return c.iv }

type indexOnlyDatabase struct {
	coll Collection
}

func (d *indexOnlyDatabase) Collection(string) Collection { return d.coll }

func newIndexFakes() (*fakeIndexView, Database) {
	iv := &fakeIndexView{}
	return iv, &indexOnlyDatabase{coll: &indexOnlyCollection{iv: iv}}
}

func TestEnsureUsernameIndex_PartialFilterShape(t *testing.T) {
	iv, db := newIndexFakes()

	err := EnsureUsernameIndex(context.Background(), db, "users")

	require.NoError(t, err)
	require.Len(t, iv.models, 1)

	model := iv.models[0]
	assert.Equal(t, bson.D{{Key: "username", Value: 1}}, model.Keys)
	require.NotNil(t, model.Options)
	require.NotNil(t, model.Options.Unique)
	assert.True(t, *model.Options.Unique)
	assert.Equal(t, "username_unique", *model.Options.Name)

	// Partial-index filters only accept equality operators, so the flag
	// is matched against false directly.
	assert.Equal(t,
		bson.D{{Key: "is_deleted", Value: false}},
		model.Options.PartialFilterExpression)
}

func TestEnsureUsernameIndex_SkipsExistingIndex(t *testing.T) {
	iv, db := newIndexFakes()
	iv.specs = []*mongo.IndexSpecification{{Name: "username_unique"}}

	err := EnsureUsernameIndex(context.Background(), db, "users")

	require.NoError(t, err)
	assert.Empty(t, iv.models)
}

func TestEnsureCollectionIndexes_CreatesConventionIndexes(t *testing.T) {
	iv, db := newIndexFakes()

	err := EnsureCollectionIndexes(context.Background(), db, "users")

	require.NoError(t, err)
	require.Len(t, iv.models, 3)

	names := make([]string, 0, len(iv.models))
	for _, model := range iv.models {
		names = append(names, *model.Options.Name)
	}
	assert.Equal(t, []string{"is_deleted", "created_at", "updated_at"}, names)
	assert.Equal(t, bson.D{{Key: "is_deleted", Value: 1}}, iv.models[0].Keys)
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, iv.models[1].Keys)
}

func TestDropCollectionIndexes(t *testing.T) {
	iv, db := newIndexFakes()

	err := DropCollectionIndexes(context.Background(), db, "users")

	require.NoError(t, err)
	assert.True(t, iv.dropped)
}
