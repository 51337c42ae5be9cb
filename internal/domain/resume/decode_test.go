package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResolvesSkillItems(t *testing.T) {
	doc, err := Decode([]byte(`{
		"_id": {"$oid": "64b7f0c2e4b0a1a2b3c4d5e6"},
		"userId": "user-1",
		"summary": "Backend engineer",
		"skills": [
			{"category": "Languages", "items": ["Go", {"name": "Rust"}, {"label": "SQL"}, 42, {"level": 3}]},
			"not-a-category",
			{"category": "Empty"}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "64b7f0c2e4b0a1a2b3c4d5e6", doc.ID)
	assert.Equal(t, "user-1", doc.UserID)
	assert.Equal(t, "Backend engineer", doc.Summary)
	require.Len(t, doc.Skills, 2)
	assert.Equal(t, []string{"Go", "Rust", "SQL"}, doc.Skills[0].Items)
	assert.Empty(t, doc.Skills[1].Items)
}

func TestDecodeToleratesMalformedFields(t *testing.T) {
	doc, err := Decode([]byte(`{"skills": "oops", "summary": 17}`))
	require.NoError(t, err)

	assert.Empty(t, doc.Skills)
	assert.Empty(t, doc.Summary)
}

func TestDecodeRejectsNonObject(t *testing.T) {
	_, err := Decode([]byte(`"just a string"`))
	assert.Error(t, err)
}

func TestDecodeManyAcceptsArrayOrObject(t *testing.T) {
	docs, err := DecodeMany([]byte(`[{"summary": "one"}, 5, {"summary": "two"}]`))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "two", docs[1].Summary)

	docs, err = DecodeMany([]byte(`{"summary": "single"}`))
	require.NoError(t, err)
	require.Len(t, docs, 1)
}
