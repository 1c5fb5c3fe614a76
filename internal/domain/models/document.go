// Package models contains the document model and its serialization boundary.
package models

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.mongodb.org/mongo-driver/bson"
)

// Document is a schemaless record: an ordered mapping of field names to values.
// The storage layer assigns the _id field unless the caller supplies one.
type Document = bson.D

// IDField is the identity field of every stored document.
const IDField = "_id"

// FromStruct converts a struct (or map) into a Document using its bson tags.
func FromStruct(v interface{}) (Document, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}

	var doc Document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %T: %w", v, err)
	}
	return doc, nil
}

// FromJSON converts a JSON object into a Document, keeping field order.
func FromJSON(raw string) (Document, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("invalid JSON")
	}
	return FromJSONResult(gjson.Parse(raw))
}

// FromJSONResult converts a parsed JSON object into a Document.
func FromJSONResult(r gjson.Result) (Document, error) {
	if !r.IsObject() {
		return nil, fmt.Errorf("expected a JSON object, got %s", r.Type)
	}

	doc := Document{}
	r.ForEach(func(key, value gjson.Result) bool {
		doc = append(doc, bson.E{Key: key.String(), Value: ValueFromJSON(value)})
		return true
	})
	return doc, nil
}

// ValueFromJSON maps a JSON value to its document value. Integral numbers
// become int64, other numbers float64, objects Documents and arrays bson.A.
func ValueFromJSON(r gjson.Result) interface{} {
	switch {
	case r.IsObject():
		doc, _ := FromJSONResult(r)
		return doc
	case r.IsArray():
		arr := bson.A{}
		for _, item := range r.Array() {
			arr = append(arr, ValueFromJSON(item))
		}
		return arr
	}

	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.True, gjson.False:
		return r.Bool()
	case gjson.Number:
		if isIntegral(r.Raw) {
			return r.Int()
		}
		return r.Float()
	default:
		return r.String()
	}
}

// ParseValue interprets s as a JSON scalar when possible, else as a plain
// string: "33" is a number, "true" a boolean, "\"33\"" and "Pesho" strings.
func ParseValue(s string) interface{} {
	if gjson.Valid(s) {
		return ValueFromJSON(gjson.Parse(s))
	}
	return s
}

func isIntegral(raw string) bool {
	return !strings.ContainsAny(raw, ".eE")
}

// Lookup returns the value of a top-level field.
func Lookup(doc Document, field string) (interface{}, bool) {
	for _, e := range doc {
		if e.Key == field {
			return e.Value, true
		}
	}
	return nil, false
}

// EqualityFilter matches documents whose field equals value exactly. The
// value sits under $eq so a document value is compared, never run as an operator.
func EqualityFilter(field string, value interface{}) Document {
	return Document{{Key: field, Value: Document{{Key: "$eq", Value: value}}}}
}

// IsOperator reports whether name would be read as a query or update operator.
func IsOperator(name string) bool {
	return strings.HasPrefix(name, "$")
}

// ToJSON renders a document as relaxed extended JSON, preserving field order.
func ToJSON(doc Document) ([]byte, error) {
	return bson.MarshalExtJSON(doc, false, false)
}
