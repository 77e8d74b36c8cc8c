package store

import (
	"context"
	"fmt"
	"sort"

	"recipes_backend/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreIDLength is the length of Firestore auto-generated document ids.
const firestoreIDLength = 20

// Firestore is a Store backed by a Cloud Firestore collection. Credentials are
// resolved the usual way, e.g. through GOOGLE_APPLICATION_CREDENTIALS.
type Firestore struct {
	client     *firestore.Client
	collection string
}

// NewFirestore creates a Firestore client for the given project.
func NewFirestore(ctx context.Context, projectID, collection string) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &Firestore{client: client, collection: collection}, nil
}

func (f *Firestore) col() *firestore.CollectionRef {
	return f.client.Collection(f.collection)
}

// ValidID accepts the alphanumeric 20 character ids Firestore generates.
func (f *Firestore) ValidID(id string) bool {
	if len(id) != firestoreIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func (f *Firestore) FindAll(ctx context.Context, filter Filter) ([]models.Recipe, error) {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := f.col().Query
	for _, k := range keys {
		q = q.Where(k, "==", filter[k])
	}

	recipes := []models.Recipe{}
	iter := q.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list recipes: %w", err)
		}
		recipes = append(recipes, fromSnapshot(doc))
	}
	return recipes, nil
}

func (f *Firestore) FindOne(ctx context.Context, id string) (models.Recipe, error) {
	doc, err := f.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe %s: %w", id, err)
	}
	return fromSnapshot(doc), nil
}

func (f *Firestore) InsertOne(ctx context.Context, doc models.Recipe) (string, error) {
	ref := f.col().NewDoc()
	if _, err := ref.Create(ctx, map[string]interface{}(doc.WithoutID())); err != nil {
		return "", fmt.Errorf("create recipe: %w", err)
	}
	return ref.ID, nil
}

// UpdateOne merges fields into the document inside a transaction so that
// absent documents and no-op updates both report zero modifications.
func (f *Firestore) UpdateOne(ctx context.Context, id string, fields models.Recipe) (int64, error) {
	fields = fields.WithoutID()
	if len(fields) == 0 {
		return 0, nil
	}

	ref := f.col().Doc(id)
	var modified int64
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		modified = 0
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return nil
		}
		if err != nil {
			return err
		}
		if !hasChanges(snap.Data(), fields) {
			return nil
		}
		modified = 1
		return tx.Set(ref, map[string]interface{}(fields), firestore.MergeAll)
	})
	if err != nil {
		return 0, fmt.Errorf("update recipe %s: %w", id, err)
	}
	return modified, nil
}

func (f *Firestore) IncrementField(ctx context.Context, id, field string, delta int64) (int64, error) {
	_, err := f.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(delta)},
	})
	if status.Code(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("increment %s of recipe %s: %w", field, id, err)
	}
	return 1, nil
}

func (f *Firestore) DeleteOne(ctx context.Context, id string) (int64, error) {
	_, err := f.col().Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("delete recipe %s: %w", id, err)
	}
	return 1, nil
}

func (f *Firestore) Ping(ctx context.Context) error {
	iter := f.col().Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

func (f *Firestore) Close(context.Context) error {
	return f.client.Close()
}

func fromSnapshot(doc *firestore.DocumentSnapshot) models.Recipe {
	recipe := models.Recipe(doc.Data())
	recipe[models.IDField] = doc.Ref.ID
	return recipe
}
