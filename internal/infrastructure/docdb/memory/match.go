package memory

import (
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// toD normalizes any BSON-marshalable value into a detached bson.D.
func toD(v interface{}) (bson.D, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cannot encode document: %w", err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode document: %w", err)
	}
	return doc, nil
}

func lookup(doc bson.D, key string) (interface{}, bool) {
	for _, e := range doc {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// parseFilter accepts equality filters only, either {field: value} or
// {field: {$eq: value}}. Any other operator is rejected.
func parseFilter(filter interface{}) (bson.D, error) {
	if filter == nil {
		return nil, nil
	}
	criteria, err := toD(filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	for i, e := range criteria {
		if strings.HasPrefix(e.Key, "$") {
			return nil, fmt.Errorf("unsupported filter operator %s", e.Key)
		}
		expr, ok := e.Value.(bson.D)
		if !ok || len(expr) == 0 || !strings.HasPrefix(expr[0].Key, "$") {
			continue
		}
		if len(expr) != 1 || expr[0].Key != "$eq" {
			return nil, fmt.Errorf("unsupported filter operator %s on %s", expr[0].Key, e.Key)
		}
		criteria[i].Value = expr[0].Value
	}
	return criteria, nil
}

func matches(doc, criteria bson.D) bool {
	for _, c := range criteria {
		v, ok := lookup(doc, c.Key)
		if !ok || !valuesEqual(v, c.Value) {
			return false
		}
	}
	return true
}

// parseSet extracts the fields of a {$set: {...}} update.
func parseSet(update interface{}) (bson.D, error) {
	doc, err := toD(update)
	if err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}
	if len(doc) != 1 || doc[0].Key != "$set" {
		return nil, fmt.Errorf("unsupported update: only $set is supported")
	}
	set, ok := doc[0].Value.(bson.D)
	if !ok {
		return nil, fmt.Errorf("invalid update: $set must be a document")
	}
	return set, nil
}

// applySet returns a copy of doc with the set fields replaced or appended.
func applySet(doc, set bson.D) (bson.D, bool) {
	updated := make(bson.D, len(doc))
	copy(updated, doc)

	modified := false
	for _, s := range set {
		found := false
		for i := range updated {
			if updated[i].Key == s.Key {
				found = true
				if !valuesEqual(updated[i].Value, s.Value) {
					updated[i].Value = s.Value
					modified = true
				}
				break
			}
		}
		if !found {
			updated = append(updated, s)
			modified = true
		}
	}
	return updated, modified
}

// valuesEqual compares numbers by value across widths, everything else deeply.
func valuesEqual(a, b interface{}) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
