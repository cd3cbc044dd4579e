package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"equipment-backend/internal/platform/config"
)

// Collection names.
const (
	Projects      = "projects"
	ToolGroups    = "toolgroups"
	Tools         = "tools"
	RentedTools   = "rentedtools"
	Returns       = "returns"
	DailyReports  = "dailyreports"
	SalaryReports = "salaryreports"
)

// Connect opens the Mongo client and pings it. The cleanup func disconnects.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, func(), error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.PoolSize).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout).
		SetHeartbeatInterval(30 * time.Second).
		SetMaxConnIdleTime(30 * time.Second)

	cli, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cli.Disconnect(ctx)
	}
	if err := cli.Ping(ctx, nil); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return cli, cleanup, nil
}

// EnsureIndexes creates the lookup indexes used by listing and reference checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	idx := map[string][]mongo.IndexModel{
		Projects: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "supervisor", Value: 1}}},
		},
		ToolGroups: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		Tools: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "toolGroup", Value: 1}}},
			{Keys: bson.D{{Key: "project", Value: 1}}},
		},
		RentedTools: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "project", Value: 1}}},
		},
		Returns: {
			{Keys: bson.D{{Key: "returnDate", Value: -1}}},
		},
		DailyReports: {
			{Keys: bson.D{{Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "worker", Value: 1}}},
			{Keys: bson.D{{Key: "places.project", Value: 1}}},
		},
		SalaryReports: {
			{Keys: bson.D{{Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "worker", Value: 1}}},
			{Keys: bson.D{{Key: "workDays.places.project", Value: 1}}},
		},
	}
	for name, models := range idx {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
