package store

import (
	"context"
	"fmt"
	"sync"

	"recipes_backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store. Ids use the MongoDB ObjectID encoding so the
// HTTP surface behaves like the Mongo backend.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string]models.Recipe
	order []string
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]models.Recipe)}
}

func (m *Memory) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (m *Memory) FindAll(_ context.Context, filter Filter) ([]models.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recipes := []models.Recipe{}
	for _, id := range m.order {
		doc := m.docs[id]
		if matches(doc, filter) {
			recipes = append(recipes, withID(id, doc))
		}
	}
	return recipes, nil
}

func (m *Memory) FindOne(_ context.Context, id string) (models.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	return withID(id, doc), nil
}

func (m *Memory) InsertOne(_ context.Context, doc models.Recipe) (string, error) {
	id := primitive.NewObjectID().Hex()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = cloneValue(map[string]interface{}(doc.WithoutID())).(map[string]interface{})
	m.order = append(m.order, id)
	return id, nil
}

func (m *Memory) UpdateOne(_ context.Context, id string, fields models.Recipe) (int64, error) {
	fields = fields.WithoutID()

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok || !hasChanges(doc, fields) {
		return 0, nil
	}
	for k, v := range fields {
		doc[k] = cloneValue(v)
	}
	return 1, nil
}

func (m *Memory) IncrementField(_ context.Context, id, field string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return 0, nil
	}
	switch v := doc[field].(type) {
	case nil:
		doc[field] = delta
	case int64:
		doc[field] = v + delta
	case int32:
		doc[field] = int64(v) + delta
	case int:
		doc[field] = int64(v) + delta
	case float64:
		doc[field] = v + float64(delta)
	default:
		return 0, fmt.Errorf("increment %s of recipe %s: %w", field, id, ErrNonNumeric)
	}
	return 1, nil
}

func (m *Memory) DeleteOne(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return 0, nil
	}
	delete(m.docs, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (m *Memory) Ping(context.Context) error  { return nil }
func (m *Memory) Close(context.Context) error { return nil }

func matches(doc models.Recipe, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func withID(id string, doc models.Recipe) models.Recipe {
	out := cloneValue(map[string]interface{}(doc)).(map[string]interface{})
	out[models.IDField] = id
	return out
}

// cloneValue deep-copies the JSON shaped values stored in documents.
func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case models.Recipe:
		return cloneValue(map[string]interface{}(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
