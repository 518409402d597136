package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/rowboatlabs/workflowkit/types"
)

// MongoWorkflowStore is a MongoDB-based implementation of WorkflowStore.
// Each (project, variant) pair is one document, upserted on save.
type MongoWorkflowStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type workflowDocument struct {
	ProjectID string         `bson:"projectId"`
	Variant   Variant        `bson:"variant"`
	Workflow  types.Workflow `bson:"workflow"`
	SavedAt   time.Time      `bson:"savedAt"`
}

// NewMongoWorkflowStore creates a new MongoDB-based workflow store.
func NewMongoWorkflowStore(config StoreConfig) (*MongoWorkflowStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(config.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	database := config.Mongo.Database
	if database == "" {
		database = "workflowkit"
	}
	collection := config.Mongo.Collection
	if collection == "" {
		collection = "workflows"
	}

	return &MongoWorkflowStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoWorkflowStore) filter(projectID string, variant Variant) bson.M {
	return bson.M{"projectId": projectID, "variant": variant}
}

func (s *MongoWorkflowStore) upsert(ctx context.Context, projectID string, variant Variant, w types.Workflow) error {
	doc := workflowDocument{
		ProjectID: projectID,
		Variant:   variant,
		Workflow:  w,
		SavedAt:   time.Now().UTC(),
	}
	_, err := s.collection.ReplaceOne(ctx,
		s.filter(projectID, variant),
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoWorkflowStore) find(ctx context.Context, projectID string, variant Variant) (types.Workflow, error) {
	var doc workflowDocument
	err := s.collection.FindOne(ctx, s.filter(projectID, variant)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Workflow{}, ErrNotFound
	}
	if err != nil {
		return types.Workflow{}, err
	}
	return doc.Workflow, nil
}

// SaveDraft overwrites the project's draft workflow.
func (s *MongoWorkflowStore) SaveDraft(ctx context.Context, projectID string, w types.Workflow) error {
	if projectID == "" {
		return ErrInvalidInput
	}
	return s.upsert(ctx, projectID, VariantDraft, w)
}

// Publish promotes the current draft to the live variant.
func (s *MongoWorkflowStore) Publish(ctx context.Context, projectID string) error {
	draft, err := s.find(ctx, projectID, VariantDraft)
	if err != nil {
		return err
	}
	return s.upsert(ctx, projectID, VariantLive, draft)
}

// LoadDraft returns the project's draft workflow.
func (s *MongoWorkflowStore) LoadDraft(ctx context.Context, projectID string) (types.Workflow, error) {
	return s.find(ctx, projectID, VariantDraft)
}

// LoadLive returns the project's published workflow.
func (s *MongoWorkflowStore) LoadLive(ctx context.Context, projectID string) (types.Workflow, error) {
	return s.find(ctx, projectID, VariantLive)
}

// Delete removes both variants of the project's workflow.
func (s *MongoWorkflowStore) Delete(ctx context.Context, projectID string) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{"projectId": projectID})
	return err
}

// Close closes the store.
func (s *MongoWorkflowStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping checks if the store is healthy.
func (s *MongoWorkflowStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Ensure MongoWorkflowStore implements WorkflowStore
var _ WorkflowStore = (*MongoWorkflowStore)(nil)
