// Package search builds the Mongo filter behind GET /search/products.
package search

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/petiverse/petiversebackend/apperrors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ResultCap bounds every search, including the unfiltered scan.
const ResultCap = 100

// ProductQuery holds the optional search parameters. A nil price bound is
// absent; zero is a real bound.
type ProductQuery struct {
	Name     string
	Category string
	PriceMin *float64
	PriceMax *float64
}

// ParseProductQuery reads name, category, price_min and price_max from the
// query string. A price that does not parse as a number is a 422.
func ParseProductQuery(values url.Values) (ProductQuery, error) {
	q := ProductQuery{
		Name:     strings.TrimSpace(values.Get("name")),
		Category: strings.TrimSpace(values.Get("category")),
	}

	var err error
	if q.PriceMin, err = parsePrice(values, "price_min"); err != nil {
		return ProductQuery{}, err
	}
	if q.PriceMax, err = parsePrice(values, "price_max"); err != nil {
		return ProductQuery{}, err
	}
	return q, nil
}

func parsePrice(values url.Values, key string) (*float64, error) {
	if !values.Has(key) {
		return nil, nil
	}
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.Field(key, "must be a valid number")
	}
	return &v, nil
}

// Filter translates the query into a single predicate over the products
// collection. An empty query yields an empty filter.
func (q ProductQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q.Name), "$options": "i"}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}

	price := bson.M{}
	if q.PriceMin != nil {
		price["$gte"] = *q.PriceMin
	}
	if q.PriceMax != nil {
		price["$lte"] = *q.PriceMax
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}
