package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"collection-export/internal/export/config"
	apperrors "collection-export/internal/shared/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ClientFactory opens a client bound to cfg.DatabaseName.
type ClientFactory func(ctx context.Context, cfg *config.Config) (ClientInterface, error)

// SharedConnector keeps one driver client per URI so every exporter in the
// process shares the same connection pool.
type SharedConnector struct {
	mu      sync.Mutex
	clients map[string]*mongo.Client
	dial    func(ctx context.Context, cfg *config.Config) (*mongo.Client, error)
}

// NewSharedConnector creates a connector that dials and pings on first use.
func NewSharedConnector() *SharedConnector {
	return &SharedConnector{
		clients: make(map[string]*mongo.Client),
		dial:    dialAndPing,
	}
}

// Connect returns a client for cfg, reusing an open connection to the same URI.
func (s *SharedConnector) Connect(ctx context.Context, cfg *config.Config) (ClientInterface, error) {
	if cfg == nil {
		return nil, apperrors.Trace(apperrors.NewValidationError("mongodb: nil config").WithCause(apperrors.ErrInvalidInput))
	}
	if cfg.MongoDBURI == "" {
		return nil, apperrors.Trace(apperrors.NewValidationError("mongodb: MONGODB_URI is not set").WithCause(apperrors.ErrInvalidInput))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[cfg.MongoDBURI]; ok {
		return NewMongoClient(client, cfg.DatabaseName), nil
	}

	client, err := s.dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.clients[cfg.MongoDBURI] = client
	return NewMongoClient(client, cfg.DatabaseName), nil
}

// CloseAll disconnects every shared client. The connector can be reused afterwards.
func (s *SharedConnector) CloseAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for uri, client := range s.clients {
		if err := client.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect MongoDB: %w", err))
		}
		delete(s.clients, uri)
	}
	return errors.Join(errs...)
}

// Len returns the number of open shared clients.
func (s *SharedConnector) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func dialAndPing(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoDBURI).
		SetAppName(cfg.AppName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, apperrors.Tracef("failed to connect to MongoDB: %w: %w", apperrors.ErrConnection, err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.Tracef("failed to ping MongoDB: %w: %w", apperrors.ErrConnection, err)
	}
	return client, nil
}

var defaultConnector = NewSharedConnector()

// Connect is the default ClientFactory, backed by a process-wide SharedConnector.
func Connect(ctx context.Context, cfg *config.Config) (ClientInterface, error) {
	return defaultConnector.Connect(ctx, cfg)
}

// CloseAll disconnects the clients opened through Connect.
func CloseAll(ctx context.Context) error {
	return defaultConnector.CloseAll(ctx)
}
