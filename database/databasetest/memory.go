// Package databasetest provides an in-memory database.Collection for tests.
// It understands the filter subset the service emits: field equality,
// $regex with $options "i", $gte, $lte and $in.
package databasetest

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/petiverse/petiversebackend/database"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory keeps documents as bson.M in insertion order.
type Memory[T any] struct {
	mu   sync.Mutex
	docs []bson.M

	// Err, when set, is returned from every call.
	Err error
	// LastFilter records the filter of the most recent Find.
	LastFilter bson.M
	// LastSkip and LastLimit record the paging of the most recent Find.
	LastSkip, LastLimit int64
}

var _ database.Collection[struct{}] = (*Memory[struct{}])(nil)

func New[T any]() *Memory[T] {
	return &Memory[T]{}
}

// Len reports how many documents are stored.
func (m *Memory[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func (m *Memory[T]) Insert(_ context.Context, doc *T) (bson.ObjectID, error) {
	if m.Err != nil {
		return bson.NilObjectID, m.Err
	}
	raw, err := toM(doc)
	if err != nil {
		return bson.NilObjectID, err
	}
	id, ok := raw["_id"].(bson.ObjectID)
	if !ok || id.IsZero() {
		id = bson.NewObjectID()
		raw["_id"] = id
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, raw)
	return id, nil
}

func (m *Memory[T]) FindByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	return m.FindOne(ctx, bson.M{"_id": id})
}

func (m *Memory[T]) FindOne(_ context.Context, filter bson.M) (*T, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if Match(d, filter) {
			return fromM[T](d)
		}
	}
	return nil, database.ErrNotFound
}

func (m *Memory[T]) Find(_ context.Context, filter bson.M, skip, limit int64) ([]T, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastFilter, m.LastSkip, m.LastLimit = filter, skip, limit

	out := make([]T, 0)
	var seen int64
	for _, d := range m.docs {
		if !Match(d, filter) {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		doc, err := fromM[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (m *Memory[T]) UpdateByID(_ context.Context, id bson.ObjectID, doc *T) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	set, err := toM(doc)
	if err != nil {
		return 0, err
	}
	delete(set, "_id")

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d["_id"] == id {
			for k, v := range set {
				d[k] = v
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (m *Memory[T]) DeleteByID(_ context.Context, id bson.ObjectID) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.docs {
		if d["_id"] == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Match reports whether doc satisfies filter.
func Match(doc, filter bson.M) bool {
	for field, cond := range filter {
		value := doc[field]
		ops, isOps := cond.(bson.M)
		if !isOps {
			if !equal(value, cond) {
				return false
			}
			continue
		}
		for op, arg := range ops {
			switch op {
			case "$regex":
				s, ok := value.(string)
				if !ok {
					return false
				}
				pattern := fmt.Sprint(arg)
				if opt, _ := ops["$options"].(string); strings.Contains(opt, "i") {
					pattern = "(?i)" + pattern
				}
				if !regexp.MustCompile(pattern).MatchString(s) {
					return false
				}
			case "$options":
			case "$gte", "$lte":
				v, ok1 := number(value)
				a, ok2 := number(arg)
				if !ok1 || !ok2 {
					return false
				}
				if op == "$gte" && v < a || op == "$lte" && v > a {
					return false
				}
			case "$in":
				found := false
				for _, candidate := range arg.(bson.A) {
					if equal(value, candidate) {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			default:
				panic("databasetest: unsupported operator " + op)
			}
		}
	}
	return true
}

func equal(a, b any) bool {
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return x == y
		}
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toM(doc any) (bson.M, error) {
	b, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromM[T any](m bson.M) (*T, error) {
	b, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := bson.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
