package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RefGuard answers "is anything still pointing at this record?" before a delete.
type RefGuard struct {
	db *mongo.Database
}

func NewRefGuard(db *mongo.Database) *RefGuard {
	return &RefGuard{db: db}
}

type refQuery struct {
	coll  string
	field string
}

var (
	userRefs = []refQuery{
		{Projects, "supervisor"},
		{DailyReports, "worker"},
		{SalaryReports, "worker"},
	}
	projectRefs = []refQuery{
		{Tools, "project"},
		{RentedTools, "project"},
		{DailyReports, "places.project"},
		{SalaryReports, "workDays.places.project"},
	}
	toolGroupRefs = []refQuery{
		{Tools, "toolGroup"},
	}
)

func (g *RefGuard) UserReferenced(ctx context.Context, id string) (bool, error) {
	return g.referenced(ctx, id, userRefs)
}

func (g *RefGuard) ProjectReferenced(ctx context.Context, id string) (bool, error) {
	return g.referenced(ctx, id, projectRefs)
}

func (g *RefGuard) ToolGroupReferenced(ctx context.Context, id string) (bool, error) {
	return g.referenced(ctx, id, toolGroupRefs)
}

func (g *RefGuard) referenced(ctx context.Context, id string, refs []refQuery) (bool, error) {
	for _, r := range refs {
		n, err := g.db.Collection(r.coll).CountDocuments(ctx,
			bson.D{{Key: r.field, Value: id}}, options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("count %s.%s: %w", r.coll, r.field, err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}
