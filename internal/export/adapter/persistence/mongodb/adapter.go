package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Hexagonal interfaces over the MongoDB driver ---

// ClientInterface is a connected client bound to a default database.
type ClientInterface interface {
	DefaultDatabase() DatabaseInterface
	Database(name string) DatabaseInterface
}

type DatabaseInterface interface {
	Name() string
	Collection(name string) CollectionInterface
}

type CollectionInterface interface {
	Name() string
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (CursorInterface, error)
}

type CursorInterface interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Close(ctx context.Context) error
	Err() error
}

// MongoClient adapts *mongo.Client to ClientInterface.
type MongoClient struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoClient binds client to the database named defaultDatabase.
func NewMongoClient(client *mongo.Client, defaultDatabase string) *MongoClient {
	return &MongoClient{
		client:   client,
		database: client.Database(defaultDatabase),
	}
}

func (m *MongoClient) DefaultDatabase() DatabaseInterface {
	return NewMongoDatabaseAdapter(m.database)
}

func (m *MongoClient) Database(name string) DatabaseInterface {
	return NewMongoDatabaseAdapter(m.client.Database(name))
}

// Raw returns the underlying driver client.
func (m *MongoClient) Raw() *mongo.Client {
	return m.client
}

type MongoDatabaseAdapter struct {
	db *mongo.Database
}

func NewMongoDatabaseAdapter(db *mongo.Database) *MongoDatabaseAdapter {
	return &MongoDatabaseAdapter{db: db}
}

func (m *MongoDatabaseAdapter) Name() string { return m.db.Name() }

func (m *MongoDatabaseAdapter) Collection(name string) CollectionInterface {
	return NewMongoCollectionAdapter(m.db.Collection(name))
}

type MongoCollectionAdapter struct {
	col *mongo.Collection
}

func NewMongoCollectionAdapter(col *mongo.Collection) *MongoCollectionAdapter {
	return &MongoCollectionAdapter{col: col}
}

func (m *MongoCollectionAdapter) Name() string { return m.col.Name() }

func (m *MongoCollectionAdapter) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (CursorInterface, error) {
	cur, err := m.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return NewMongoCursorAdapter(cur), nil
}

type MongoCursorAdapter struct {
	cur *mongo.Cursor
}

func NewMongoCursorAdapter(cur *mongo.Cursor) *MongoCursorAdapter {
	return &MongoCursorAdapter{cur: cur}
}

func (m *MongoCursorAdapter) Next(ctx context.Context) bool   { return m.cur.Next(ctx) }
func (m *MongoCursorAdapter) Decode(val interface{}) error    { return m.cur.Decode(val) }
func (m *MongoCursorAdapter) Close(ctx context.Context) error { return m.cur.Close(ctx) }
func (m *MongoCursorAdapter) Err() error                      { return m.cur.Err() }
