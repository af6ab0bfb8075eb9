package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ak/pantry/internal/infrastructure/config"
	"github.com/ak/pantry/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoDB wraps the MongoDB client and database
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	config   config.MongoDBConfig
	logger   *logger.Logger
}

// NewMongoDB creates a new MongoDB connection
func NewMongoDB(cfg config.MongoDBConfig, log *logger.Logger) (*MongoDB, error) {
	return &MongoDB{
		config: cfg,
		logger: log.WithComponent("mongodb"),
	}, nil
}

// Connect establishes connection to MongoDB
func (m *MongoDB) Connect(ctx context.Context) error {
	clientOpts := options.Client().
		ApplyURI(m.config.URI).
		SetMaxPoolSize(m.config.MaxPoolSize).
		SetMinPoolSize(m.config.MinPoolSize).
		SetConnectTimeout(m.config.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.client = client
	m.database = client.Database(m.config.Database)
	m.logger.Info("Connected to MongoDB", zap.String("database", m.config.Database))

	// Create indexes
	if err := m.createIndexes(ctx); err != nil {
		m.logger.Warn("Failed to create some indexes", zap.Error(err))
	}

	return nil
}

// Close closes the MongoDB connection
func (m *MongoDB) Close(ctx context.Context) error {
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}
	return nil
}

// Database returns the database instance
func (m *MongoDB) Database() *mongo.Database {
	return m.database
}

// Client returns the client instance
func (m *MongoDB) Client() *mongo.Client {
	return m.client
}

// Collection returns a collection by name
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// Collections
const (
	CollectionHouseholds        = "households"
	CollectionUsers             = "users"
	CollectionStockItems        = "stock_items"
	CollectionMeals             = "meals"
	CollectionMealItems         = "meal_items"
	CollectionShoppingLists     = "shopping_lists"
	CollectionShoppingListItems = "shopping_list_items"
)

// createIndexes creates necessary indexes for all collections.
// Stock item names are deliberately NOT unique per household: duplicates can
// appear through concurrent adds and the reconciliation engine tolerates them.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "household_id", Value: 1}}},
		},
		CollectionStockItems: {
			{Keys: bson.D{{Key: "household_id", Value: 1}, {Key: "name_lower", Value: 1}}},
		},
		CollectionMeals: {
			{Keys: bson.D{{Key: "household_id", Value: 1}, {Key: "active", Value: 1}}},
		},
		CollectionMealItems: {
			{Keys: bson.D{{Key: "meal_id", Value: 1}}},
			{Keys: bson.D{{Key: "household_id", Value: 1}}},
		},
		CollectionShoppingLists: {
			{Keys: bson.D{{Key: "household_id", Value: 1}, {Key: "active", Value: 1}}},
		},
		CollectionShoppingListItems: {
			{Keys: bson.D{{Key: "list_id", Value: 1}, {Key: "name_lower", Value: 1}}},
		},
	}

	for collection, idxModels := range indexes {
		coll := m.database.Collection(collection)
		for _, idx := range idxModels {
			_, err := coll.Indexes().CreateOne(ctx, idx)
			if err != nil {
				m.logger.Warn("Failed to create index",
					zap.String("collection", collection),
					zap.Error(err))
			}
		}
	}

	return nil
}

// Health checks if MongoDB is healthy
func (m *MongoDB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}
