package testutil

import (
	"context"

	"collection-export/internal/export/adapter/persistence/mongodb"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MockClient is a mock implementation of mongodb.ClientInterface.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) DefaultDatabase() mongodb.DatabaseInterface {
	args := m.Called()
	return args.Get(0).(mongodb.DatabaseInterface)
}

func (m *MockClient) Database(name string) mongodb.DatabaseInterface {
	args := m.Called(name)
	return args.Get(0).(mongodb.DatabaseInterface)
}

// MockDatabase is a mock implementation of mongodb.DatabaseInterface.
type MockDatabase struct {
	mock.Mock
}

func (m *MockDatabase) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDatabase) Collection(name string) mongodb.CollectionInterface {
	args := m.Called(name)
	return args.Get(0).(mongodb.CollectionInterface)
}

// MockCollection is a mock implementation of mongodb.CollectionInterface.
type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (mongodb.CursorInterface, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(mongodb.CursorInterface), args.Error(1)
}

// MockCursor is a mock implementation of mongodb.CursorInterface.
type MockCursor struct {
	mock.Mock
}

func (m *MockCursor) Next(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockCursor) Decode(val interface{}) error {
	args := m.Called(val)
	return args.Error(0)
}

func (m *MockCursor) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCursor) Err() error {
	args := m.Called()
	return args.Error(0)
}

// NewDocumentCursor returns a real driver cursor over docs, wrapped for the
// adapter interfaces.
func NewDocumentCursor(docs ...bson.D) mongodb.CursorInterface {
	raw := make([]interface{}, len(docs))
	for i, d := range docs {
		raw[i] = d
	}
	cur, err := mongo.NewCursorFromDocuments(raw, nil, nil)
	if err != nil {
		panic(err)
	}
	return mongodb.NewMongoCursorAdapter(cur)
}

// CollectionWithDocuments returns a MockCollection whose Find yields docs.
func CollectionWithDocuments(name string, docs ...bson.D) *MockCollection {
	col := &MockCollection{}
	col.On("Name").Return(name).Maybe()
	col.On("Find", mock.Anything, mock.Anything).Return(NewDocumentCursor(docs...), nil).Once()
	return col
}

// DatabaseWith returns a MockDatabase that resolves name to col.
func DatabaseWith(dbName, colName string, col mongodb.CollectionInterface) *MockDatabase {
	db := &MockDatabase{}
	db.On("Name").Return(dbName).Maybe()
	db.On("Collection", colName).Return(col)
	return db
}
