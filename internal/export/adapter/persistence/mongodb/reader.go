package mongodb

import (
	"context"

	apperrors "collection-export/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
)

// ReadAll drains every document of col in the store's natural order. Each
// document keeps its field order. Errors carry the line they were raised at.
func ReadAll(ctx context.Context, col CollectionInterface) ([]bson.D, error) {
	cur, err := col.Find(ctx, bson.D{})
	if err != nil {
		return nil, apperrors.Tracef("failed to query collection %s: %w", col.Name(), err)
	}
	defer cur.Close(ctx)

	docs := make([]bson.D, 0)
	for cur.Next(ctx) {
		var doc bson.D
		if err := cur.Decode(&doc); err != nil {
			return nil, apperrors.Tracef("failed to decode document from %s: %w", col.Name(), err)
		}
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, apperrors.Tracef("cursor error on %s: %w", col.Name(), err)
	}
	return docs, nil
}
