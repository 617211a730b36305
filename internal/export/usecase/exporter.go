package usecase

import (
	"context"
	"strings"

	"collection-export/internal/export/adapter/persistence/mongodb"
	"collection-export/internal/export/config"
	"collection-export/internal/export/domain/model"
	apperrors "collection-export/internal/shared/errors"
	"collection-export/internal/shared/logger"
	"collection-export/internal/shared/utils"
)

const componentName = "collection-exporter"

// CollectionExporterInterface exports whole collections as tables.
type CollectionExporterInterface interface {
	ExportCollectionAsTable(ctx context.Context, collectionName, databaseName string) (*model.Table, error)
}

// CollectionExporter reads MongoDB collections into tables. It is safe for
// concurrent use; every call is an independent read.
type CollectionExporter struct {
	client   mongodb.ClientInterface
	database mongodb.DatabaseInterface
	log      logger.Logger
}

// NewCollectionExporter connects through factory and binds the database named
// by cfg.DatabaseName. Any failure is returned as a *errors.WrappedError.
func NewCollectionExporter(ctx context.Context, cfg *config.Config, factory mongodb.ClientFactory, log logger.Logger) (*CollectionExporter, error) {
	if log == nil {
		log = logger.Default()
	}
	if cfg == nil {
		return nil, apperrors.Wrap(apperrors.NewValidationError("exporter config is required").WithComponent(componentName))
	}
	if factory == nil {
		factory = mongodb.Connect
	}

	client, err := factory(ctx, cfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.NewConnectionError("failed to connect to MongoDB").
			WithCause(err).
			WithComponent(componentName).
			WithDetail("database", cfg.DatabaseName))
	}

	return NewCollectionExporterWithClient(client, log), nil
}

// NewCollectionExporterWithClient builds an exporter around an already
// connected client.
func NewCollectionExporterWithClient(client mongodb.ClientInterface, log logger.Logger) *CollectionExporter {
	if log == nil {
		log = logger.Default()
	}
	return &CollectionExporter{
		client:   client,
		database: client.DefaultDatabase(),
		log:      log.WithComponent(componentName),
	}
}

// ExportCollectionAsTable loads every document of collectionName into a table.
// An empty databaseName reads from the database bound at construction;
// otherwise that database is resolved from the same client, and a
// whitespace-only name is rejected. The "id" column
// is dropped and every "na" cell becomes nil. Errors are *errors.WrappedError.
func (e *CollectionExporter) ExportCollectionAsTable(ctx context.Context, collectionName, databaseName string) (*model.Table, error) {
	if strings.TrimSpace(collectionName) == "" {
		return nil, apperrors.Wrap(apperrors.NewValidationError("collection name is required").
			WithCause(apperrors.ErrInvalidCollectionName).
			WithComponent(componentName))
	}
	if databaseName != "" && strings.TrimSpace(databaseName) == "" {
		return nil, apperrors.Wrap(apperrors.NewValidationError("database name is blank").
			WithCause(apperrors.ErrInvalidDatabaseName).
			WithComponent(componentName))
	}

	collection := e.resolveCollection(collectionName, databaseName)

	ctx = utils.EnsureRequestID(ctx)
	ctx = utils.WithComponent(ctx, componentName)
	ctx = utils.WithOperation(ctx, "export_collection")
	ctx = utils.WithDatabase(ctx, e.databaseName(databaseName))
	ctx = utils.WithCollection(ctx, collectionName)
	log := e.log.WithContext(ctx)

	log.Info("Fetching data from MongoDB.")

	docs, err := mongodb.ReadAll(ctx, collection)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.NewInfrastructureError("failed to fetch collection").
			WithCause(err).
			WithComponent(componentName).
			WithDetail("collection", collectionName))
	}

	table := model.NewTableFromDocuments(docs)
	log.Infof("Data fetched with len: %d", table.Len())

	table.DropColumn(model.IDColumn)
	table.ReplaceValue(model.MissingMarker, nil)
	return table, nil
}

func (e *CollectionExporter) resolveCollection(collectionName, databaseName string) mongodb.CollectionInterface {
	if databaseName == "" {
		return e.database.Collection(collectionName)
	}
	return e.client.Database(databaseName).Collection(collectionName)
}

func (e *CollectionExporter) databaseName(databaseName string) string {
	if databaseName != "" {
		return databaseName
	}
	return e.database.Name()
}
