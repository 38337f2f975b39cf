package search

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/petiverse/petiversebackend/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func parse(t *testing.T, raw string) ProductQuery {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	q, err := ParseProductQuery(values)
	require.NoError(t, err)
	return q
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  bson.M
	}{
		{"empty", "", bson.M{}},
		{"blank values are absent", "name=&category=%20&price_min=", bson.M{}},
		{
			"name is a case-insensitive substring",
			"name=Bella",
			bson.M{"name": bson.M{"$regex": "Bella", "$options": "i"}},
		},
		{
			"regex metacharacters are literal",
			"name=a.b*(c)",
			bson.M{"name": bson.M{"$regex": `a\.b\*\(c\)`, "$options": "i"}},
		},
		{"category is exact", "category=dog", bson.M{"category": "dog"}},
		{
			"both bounds make one range",
			"price_min=10&price_max=100",
			bson.M{"price": bson.M{"$gte": 10.0, "$lte": 100.0}},
		},
		{"lower bound only", "price_min=5.5", bson.M{"price": bson.M{"$gte": 5.5}}},
		{"upper bound only", "price_max=20", bson.M{"price": bson.M{"$lte": 20.0}}},
		{"zero lower bound is kept", "price_min=0", bson.M{"price": bson.M{"$gte": 0.0}}},
		{"zero upper bound is kept", "price_max=0", bson.M{"price": bson.M{"$lte": 0.0}}},
		{
			"everything combined",
			"name=ret&category=dog&price_min=10&price_max=100",
			bson.M{
				"name":     bson.M{"$regex": "ret", "$options": "i"},
				"category": "dog",
				"price":    bson.M{"$gte": 10.0, "$lte": 100.0},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parse(t, tc.query).Filter())
		})
	}
}

func TestInvertedRangeIsPassedThrough(t *testing.T) {
	f := parse(t, "price_min=100&price_max=10").Filter()
	assert.Equal(t, bson.M{"$gte": 100.0, "$lte": 10.0}, f["price"])
}

func TestParseRejectsNonNumericPrice(t *testing.T) {
	for _, raw := range []string{"price_min=cheap", "price_max=1e"} {
		values, _ := url.ParseQuery(raw)
		_, err := ParseProductQuery(values)
		require.Error(t, err, raw)

		var appErr *apperrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	}
}
