// Package store provides the document store clients behind the recipe
// handlers. Every operation is a single round trip to the backing store.
package store

import (
	"context"
	"errors"
	"reflect"

	"recipes_backend/models"
)

// DefaultCollection is the collection holding recipe documents.
const DefaultCollection = "recipes"

// ErrNonNumeric is returned when an increment targets a field holding a
// non-numeric value.
var ErrNonNumeric = errors.New("cannot increment a non-numeric field")

// Filter is an equality filter on top-level string fields. An empty filter
// matches every document.
type Filter map[string]string

// Store is a collection-scoped document store.
type Store interface {
	// ValidID reports whether id is in the store's native identifier encoding.
	ValidID(id string) bool

	FindAll(ctx context.Context, filter Filter) ([]models.Recipe, error)
	// FindOne returns nil and no error when no document has the given id.
	FindOne(ctx context.Context, id string) (models.Recipe, error)
	InsertOne(ctx context.Context, doc models.Recipe) (string, error)
	// UpdateOne sets the given fields and returns the number of modified
	// documents, which is zero both for absent documents and for updates that
	// change nothing.
	UpdateOne(ctx context.Context, id string, fields models.Recipe) (int64, error)
	IncrementField(ctx context.Context, id, field string, delta int64) (int64, error)
	DeleteOne(ctx context.Context, id string) (int64, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// hasChanges reports whether applying update to current would modify at
// least one field.
func hasChanges(current, update map[string]interface{}) bool {
	for k, v := range update {
		old, ok := current[k]
		if !ok || !reflect.DeepEqual(old, v) {
			return true
		}
	}
	return false
}
