package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		in    string
		field string
		dir   int
		ok    bool
	}{
		{"price_asc", "effectivePrice", 1, true},
		{"price_desc", "effectivePrice", -1, true},
		{"rating_desc", "rating", -1, true},
		{"createdAt_asc", "createdAt", 1, true},
		// Lenient forms: bare field or unknown suffix sort descending.
		{"price", "effectivePrice", -1, true},
		{"rating", "rating", -1, true},
		{"name_up", "name", -1, true},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		field, dir, ok := parseSort(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.field, field, tt.in)
		assert.Equal(t, tt.dir, dir, tt.in)
	}
}

func TestSortStage_Default(t *testing.T) {
	sort := sortStage(SearchFilter{})
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sort)
}

func TestSortStage_KeywordPutsRelevanceFirst(t *testing.T) {
	sort := sortStage(SearchFilter{Keyword: "galaxy", Sort: "price_asc"})

	assert.Len(t, sort, 2)
	assert.Equal(t, "score", sort[0].Key)
	assert.Equal(t, bson.E{Key: "effectivePrice", Value: 1}, sort[1])
}

func TestSortStage_BareFieldSortsDescending(t *testing.T) {
	sort := sortStage(SearchFilter{Sort: "rating"})
	assert.Equal(t, bson.D{{Key: "rating", Value: -1}}, sort)
}

func TestCategoryLookupIsLeftJoin(t *testing.T) {
	stages := categoryLookup()

	assert.Len(t, stages, 2)
	unwind := stages[1]["$unwind"].(bson.M)
	assert.Equal(t, true, unwind["preserveNullAndEmptyArrays"],
		"products with a missing category must survive the join")
}
