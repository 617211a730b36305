package mongodb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"collection-export/internal/export/config"
	apperrors "collection-export/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ClientFactory = Connect
var _ ClientInterface = (*MongoClient)(nil)

type mockCollection struct {
	mock.Mock
}

func (m *mockCollection) Name() string { return "widgets" }

func (m *mockCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (CursorInterface, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(CursorInterface), args.Error(1)
}

type mockCursor struct {
	mock.Mock
}

func (m *mockCursor) Next(ctx context.Context) bool   { return m.Called(ctx).Bool(0) }
func (m *mockCursor) Decode(val interface{}) error    { return m.Called(val).Error(0) }
func (m *mockCursor) Close(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *mockCursor) Err() error                      { return m.Called().Error(0) }

func documentCursor(t *testing.T, docs ...bson.D) CursorInterface {
	t.Helper()
	raw := make([]interface{}, len(docs))
	for i, d := range docs {
		raw[i] = d
	}
	cur, err := mongo.NewCursorFromDocuments(raw, nil, nil)
	require.NoError(t, err)
	return NewMongoCursorAdapter(cur)
}

func lazyClient(t *testing.T) *mongo.Client {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client
}

func TestReadAll_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	col := &mockCollection{}
	col.On("Find", ctx, bson.D{}).Return(documentCursor(t,
		bson.D{{Key: "b", Value: "1"}, {Key: "a", Value: "2"}},
		bson.D{{Key: "c", Value: int32(3)}},
	), nil)

	docs, err := ReadAll(ctx, col)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0][0].Key)
	assert.Equal(t, "a", docs[0][1].Key)
	assert.Equal(t, int32(3), docs[1][0].Value)
	col.AssertExpectations(t)
}

func TestReadAll_Empty(t *testing.T) {
	ctx := context.Background()
	col := &mockCollection{}
	col.On("Find", ctx, bson.D{}).Return(documentCursor(t), nil)

	docs, err := ReadAll(ctx, col)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NotNil(t, docs)
}

// raiseSite returns the location recorded on err when it was raised.
func raiseSite(t *testing.T, err error) *apperrors.SourceLocation {
	t.Helper()
	var located interface{ Location() *apperrors.SourceLocation }
	require.True(t, errors.As(err, &located))
	require.NotNil(t, located.Location())
	return located.Location()
}

func TestReadAll_FindError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("server selection timeout")
	col := &mockCollection{}
	col.On("Find", ctx, bson.D{}).Return(nil, boom)

	_, err := ReadAll(ctx, col)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "widgets")

	loc := raiseSite(t, err)
	assert.Equal(t, "reader.go", filepath.Base(loc.File))
	assert.Contains(t, loc.Function, "ReadAll")
}

func TestReadAll_DecodeErrorClosesCursor(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("corrupt document")
	cur := &mockCursor{}
	cur.On("Next", ctx).Return(true).Once()
	cur.On("Decode", mock.Anything).Return(boom)
	cur.On("Close", ctx).Return(nil)

	col := &mockCollection{}
	col.On("Find", ctx, bson.D{}).Return(cur, nil)

	_, err := ReadAll(ctx, col)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "reader.go", filepath.Base(raiseSite(t, err).File))
	cur.AssertCalled(t, "Close", ctx)
}

func TestReadAll_CursorError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	cur := &mockCursor{}
	cur.On("Next", ctx).Return(false)
	cur.On("Err").Return(boom)
	cur.On("Close", ctx).Return(nil)

	col := &mockCollection{}
	col.On("Find", ctx, bson.D{}).Return(cur, nil)

	_, err := ReadAll(ctx, col)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "reader.go", filepath.Base(raiseSite(t, err).File))
	cur.AssertExpectations(t)
}

func TestMongoClient_Resolution(t *testing.T) {
	client := NewMongoClient(lazyClient(t), "Proj1")

	assert.Equal(t, "Proj1", client.DefaultDatabase().Name())
	assert.Equal(t, "Other", client.Database("Other").Name())
	assert.Equal(t, "visa", client.Database("Other").Collection("visa").Name())
	assert.NotNil(t, client.Raw())
}

func TestSharedConnector_ReusesClientPerURI(t *testing.T) {
	dials := 0
	s := NewSharedConnector()
	s.dial = func(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
		dials++
		return mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDBURI))
	}

	cfg := &config.Config{MongoDBURI: "mongodb://localhost:27017", DatabaseName: "Proj1"}
	other := &config.Config{MongoDBURI: "mongodb://localhost:27017", DatabaseName: "Other"}

	a, err := s.Connect(context.Background(), cfg)
	require.NoError(t, err)
	b, err := s.Connect(context.Background(), other)
	require.NoError(t, err)

	assert.Equal(t, 1, dials)
	assert.Equal(t, 1, s.Len())
	assert.Same(t, a.(*MongoClient).Raw(), b.(*MongoClient).Raw())
	assert.Equal(t, "Other", b.DefaultDatabase().Name())

	require.NoError(t, s.CloseAll(context.Background()))
	assert.Equal(t, 0, s.Len())
}

func TestSharedConnector_DialError(t *testing.T) {
	boom := errors.New("no reachable servers")
	s := NewSharedConnector()
	s.dial = func(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
		return nil, boom
	}

	_, err := s.Connect(context.Background(), &config.Config{MongoDBURI: "mongodb://nowhere:1"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len())
}

func TestSharedConnector_InvalidConfig(t *testing.T) {
	s := NewSharedConnector()

	_, err := s.Connect(context.Background(), nil)
	assert.True(t, apperrors.IsValidation(err))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = s.Connect(context.Background(), &config.Config{})
	assert.ErrorContains(t, err, "MONGODB_URI")
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "connection.go", filepath.Base(raiseSite(t, err).File))
	assert.Equal(t, 0, s.Len())
}

func TestConnect_BadURI(t *testing.T) {
	_, err := NewSharedConnector().Connect(context.Background(), &config.Config{
		MongoDBURI:     "not-a-mongo-uri",
		ConnectTimeout: time.Second,
	})
	assert.ErrorContains(t, err, "failed to connect to MongoDB")
	assert.ErrorIs(t, err, apperrors.ErrConnection)
	assert.True(t, apperrors.IsConnection(err))
}
