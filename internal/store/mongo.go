package store

import (
	"context"
	"errors"
	"fmt"

	"inventory-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	productsCollection = "products"
	countersCollection = "counters"
	productsCounterID  = "products"
	defaultMongoDB     = "inventory"
)

// MongoStore keeps records in a MongoDB collection. Ids come from a counter
// document incremented with findOneAndUpdate, so concurrent creates never
// compute the same id.
type MongoStore struct {
	client   *mongo.Client
	products *mongo.Collection
	counters *mongo.Collection
}

// OpenMongo connects to uri, ensures the unique id index and seeds the id
// counter from the largest existing id.
func OpenMongo(ctx context.Context, uri string) (*MongoStore, error) {
	dbName, err := mongoDatabaseName(uri)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	db := client.Database(dbName)
	s := &MongoStore{
		client:   client,
		products: db.Collection(productsCollection),
		counters: db.Collection(countersCollection),
	}

	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := s.ensureSchema(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureSchema(ctx context.Context) error {
	_, err := s.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("id_unique"),
	})
	if err != nil {
		return fmt.Errorf("create id index: %w", err)
	}

	maxID, err := s.maxID(ctx)
	if err != nil {
		return err
	}

	// $max keeps the counter when it is already ahead of the collection.
	_, err = s.counters.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: productsCounterID}},
		bson.D{{Key: "$max", Value: bson.D{{Key: "seq", Value: maxID}}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("seed id counter: %w", err)
	}
	return nil
}

func (s *MongoStore) maxID(ctx context.Context) (int64, error) {
	var top models.ProductRecord
	err := s.products.FindOne(ctx, bson.D{},
		options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}).SetProjection(bson.D{{Key: "id", Value: 1}}),
	).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find max id: %w", err)
	}
	return top.ID, nil
}

func (s *MongoStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: productsCounterID}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next id: %w", err)
	}
	return counter.Seq, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.ProductRecord, error) {
	cur, err := s.products.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	out := make([]models.ProductRecord, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Create(ctx context.Context, p models.Product) (models.ProductRecord, error) {
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		id, err := s.nextID(ctx)
		if err != nil {
			return models.ProductRecord{}, err
		}
		rec := newRecord(id, p)
		_, err = s.products.InsertOne(ctx, rec)
		if err == nil {
			return rec, nil
		}
		if err = translateMongoErr(err); !errors.Is(err, ErrDuplicateID) {
			return models.ProductRecord{}, fmt.Errorf("insert product: %w", err)
		}
	}
	return models.ProductRecord{}, ErrDuplicateID
}

func (s *MongoStore) Update(ctx context.Context, id int64, p models.Product) (models.ProductRecord, error) {
	var rec models.ProductRecord
	err := s.products.FindOneAndUpdate(ctx,
		bson.D{{Key: "id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "product", Value: p}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		return models.ProductRecord{}, translateMongoErr(err)
	}
	return rec, nil
}

func (s *MongoStore) Delete(ctx context.Context, id int64) (models.ProductRecord, error) {
	var rec models.ProductRecord
	if err := s.products.FindOneAndDelete(ctx, bson.D{{Key: "id", Value: id}}).Decode(&rec); err != nil {
		return models.ProductRecord{}, translateMongoErr(err)
	}
	return rec, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func translateMongoErr(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicateID, err)
	default:
		return err
	}
}

// mongoDatabaseName takes the database from the URI path, e.g.
// mongodb://localhost:27017/assignment13.
func mongoDatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid MONGO_URI: %w", err)
	}
	if cs.Database == "" {
		return defaultMongoDB, nil
	}
	return cs.Database, nil
}
