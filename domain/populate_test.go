package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePopulate_AbsentStaysAbsent(t *testing.T) {
	assert.Nil(t, NormalizePopulate(nil))
}

func TestNormalizePopulate_StringWrapped(t *testing.T) {
	got := NormalizePopulate("author")

	require.Len(t, got, 1)
	assert.Equal(t, PopulateOption{Path: "author"}, got[0])
}

func TestNormalizePopulate_OptionWrapped(t *testing.T) {
	opt := PopulateOption{Path: "author", From: "users", Single: true}

	got := NormalizePopulate(opt)

	require.Len(t, got, 1)
	assert.Equal(t, opt, got[0])
}

func TestNormalizePopulate_PointerOptionWrapped(t *testing.T) {
	opt := &PopulateOption{Path: "tags"}

	got := NormalizePopulate(opt)

	require.Len(t, got, 1)
	assert.Equal(t, *opt, got[0])

	assert.Nil(t, NormalizePopulate((*PopulateOption)(nil)))
}

func TestNormalizePopulate_SliceIsIdentity(t *testing.T) {
	opts := []PopulateOption{{Path: "author"}, {Path: "tags"}}

	got := NormalizePopulate(opts)

	// Identity, not a copy.
	require.Len(t, got, 2)
	assert.Same(t, &opts[0], &got[0])
}

func TestNormalizePopulate_StringSliceConverted(t *testing.T) {
	got := NormalizePopulate([]string{"author", "tags"})

	require.Len(t, got, 2)
	assert.Equal(t, "author", got[0].Path)
	assert.Equal(t, "tags", got[1].Path)
}

func TestNormalizePopulate_MixedSliceConverted(t *testing.T) {
	got := NormalizePopulate([]interface{}{"author", PopulateOption{Path: "tags", Single: true}})

	require.Len(t, got, 2)
	assert.Equal(t, "author", got[0].Path)
	assert.Equal(t, PopulateOption{Path: "tags", Single: true}, got[1])
}

func TestNormalizePopulate_UnsupportedYieldsNil(t *testing.T) {
	assert.Nil(t, NormalizePopulate(42))
	assert.Nil(t, NormalizePopulate(map[string]string{"path": "author"}))
}

func TestApplyDefaults(t *testing.T) {
	got := PopulateOption{Path: "author"}.ApplyDefaults()

	assert.Equal(t, "author", got.From)
	assert.Equal(t, "author", got.LocalField)
	assert.Equal(t, FieldID, got.ForeignField)
}

func TestApplyDefaults_ExplicitValuesKept(t *testing.T) {
	opt := PopulateOption{
		Path:         "author",
		From:         "users",
		LocalField:   "author_id",
		ForeignField: "user_id",
	}

	assert.Equal(t, opt, opt.ApplyDefaults())
}
