package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

const scenarioCollection = "scenarios"

// MongoDBRepository stores scenarios in a MongoDB collection keyed by scenario id.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: scenarioCollection,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// ListScenarios returns every stored scenario, oldest first.
func (r *MongoDBRepository) ListScenarios(ctx context.Context) ([]models.Scenario, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer cursor.Close(ctx)

	scenarios := make([]models.Scenario, 0)
	if err := cursor.All(ctx, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to decode scenarios: %w", err)
	}
	return scenarios, nil
}

// GetScenario loads one scenario by id.
func (r *MongoDBRepository) GetScenario(ctx context.Context, id string) (models.Scenario, error) {
	var scenario models.Scenario
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&scenario)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Scenario{}, models.ErrScenarioNotFound
	}
	if err != nil {
		return models.Scenario{}, fmt.Errorf("failed to load scenario %s: %w", id, err)
	}
	return scenario, nil
}

// SaveScenario inserts the scenario or replaces the stored one with the same id.
func (r *MongoDBRepository) SaveScenario(ctx context.Context, scenario models.Scenario) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection().ReplaceOne(ctx, bson.M{"_id": scenario.ID}, scenario, opts)
	if err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", scenario.ID, err)
	}
	return nil
}

// DeleteScenario removes a scenario by id.
func (r *MongoDBRepository) DeleteScenario(ctx context.Context, id string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrScenarioNotFound
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
