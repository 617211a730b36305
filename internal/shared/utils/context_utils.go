package utils

import (
	"context"
	"errors"

	"collection-export/internal/shared/contextkeys"

	"github.com/google/uuid"
)

// Common context errors
var (
	ErrRequestIDNotFound   = errors.New("requestID not found in context")
	ErrRequestIDNotString  = errors.New("requestID in context is not a string")
	ErrDatabaseNotFound    = errors.New("database not found in context")
	ErrDatabaseNotString   = errors.New("database in context is not a string")
	ErrCollectionNotFound  = errors.New("collection not found in context")
	ErrCollectionNotString = errors.New("collection in context is not a string")
)

func getString(ctx context.Context, key interface{}, missing, notString error) (string, error) {
	val := ctx.Value(key)
	if val == nil {
		return "", missing
	}
	s, ok := val.(string)
	if !ok {
		return "", notString
	}
	return s, nil
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	return getString(ctx, contextkeys.RequestIDKey, ErrRequestIDNotFound, ErrRequestIDNotString)
}

// GetDatabaseFromContext retrieves the database name from the context.
func GetDatabaseFromContext(ctx context.Context) (string, error) {
	return getString(ctx, contextkeys.DatabaseKey, ErrDatabaseNotFound, ErrDatabaseNotString)
}

// GetCollectionFromContext retrieves the collection name from the context.
func GetCollectionFromContext(ctx context.Context) (string, error) {
	return getString(ctx, contextkeys.CollectionKey, ErrCollectionNotFound, ErrCollectionNotString)
}

// WithRequestID sets the request ID in the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithDatabase sets the database name in the context
func WithDatabase(ctx context.Context, database string) context.Context {
	return context.WithValue(ctx, contextkeys.DatabaseKey, database)
}

// WithCollection sets the collection name in the context
func WithCollection(ctx context.Context, collection string) context.Context {
	return context.WithValue(ctx, contextkeys.CollectionKey, collection)
}

// WithComponent sets the component in the context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// WithOperation sets the operation in the context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}

// EnsureRequestID returns ctx unchanged if it already carries a request ID,
// otherwise a child context with a freshly generated one.
func EnsureRequestID(ctx context.Context) context.Context {
	if id, err := GetRequestIDFromContext(ctx); err == nil && id != "" {
		return ctx
	}
	return WithRequestID(ctx, uuid.NewString())
}

// GetRequestIDOrDefault returns the request ID from context or the provided default
func GetRequestIDOrDefault(ctx context.Context, def string) string {
	if id, err := GetRequestIDFromContext(ctx); err == nil {
		return id
	}
	return def
}
