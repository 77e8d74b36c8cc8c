package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"recipes_backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a Store backed by a MongoDB collection.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoURI builds an Atlas style connection string from credentials and a
// cluster host.
func MongoURI(user, password, host string) string {
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, password),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

// NewMongo connects to uri and verifies the connection with a ping.
func NewMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if collection == "" {
		collection = DefaultCollection
	}
	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (m *Mongo) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (m *Mongo) FindAll(ctx context.Context, filter Filter) ([]models.Recipe, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cursor, err := m.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find recipes: %w", err)
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}

	recipes := make([]models.Recipe, 0, len(docs))
	for _, doc := range docs {
		recipes = append(recipes, fromBSON(doc))
	}
	return recipes, nil
}

func (m *Mongo) FindOne(ctx context.Context, id string) (models.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	err = m.collection.FindOne(ctx, bson.M{models.IDField: oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recipe %s: %w", id, err)
	}
	return fromBSON(doc), nil
}

func (m *Mongo) InsertOne(ctx context.Context, doc models.Recipe) (string, error) {
	res, err := m.collection.InsertOne(ctx, bson.M(doc.WithoutID()))
	if err != nil {
		return "", fmt.Errorf("insert recipe: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprint(res.InsertedID), nil
	}
	return oid.Hex(), nil
}

func (m *Mongo) UpdateOne(ctx context.Context, id string, fields models.Recipe) (int64, error) {
	fields = fields.WithoutID()
	if len(fields) == 0 {
		return 0, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}

	res, err := m.collection.UpdateOne(ctx, bson.M{models.IDField: oid}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return 0, fmt.Errorf("update recipe %s: %w", id, err)
	}
	return res.ModifiedCount, nil
}

func (m *Mongo) IncrementField(ctx context.Context, id, field string, delta int64) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}

	res, err := m.collection.UpdateOne(ctx, bson.M{models.IDField: oid}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return 0, fmt.Errorf("increment %s of recipe %s: %w", field, id, err)
	}
	return res.ModifiedCount, nil
}

func (m *Mongo) DeleteOne(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}

	res, err := m.collection.DeleteOne(ctx, bson.M{models.IDField: oid})
	if err != nil {
		return 0, fmt.Errorf("delete recipe %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// fromBSON converts a decoded document into a Recipe with a hex string id.
func fromBSON(doc bson.M) models.Recipe {
	recipe := models.Recipe(doc)
	if oid, ok := doc[models.IDField].(primitive.ObjectID); ok {
		recipe[models.IDField] = oid.Hex()
	}
	return recipe
}
