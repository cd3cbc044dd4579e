package projects

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"equipment-backend/internal/platform/docstore"
)

type Project struct {
	ID            string    `bson:"_id"`
	Name          string    `bson:"name"`
	Address       string    `bson:"address"`
	ProjectNumber int64     `bson:"projectNumber"`
	Active        bool      `bson:"active"`
	Supervisor    string    `bson:"supervisor"`
	StartDate     time.Time `bson:"startDate"`
	EndDate       time.Time `bson:"endDate"`
}

func (p Project) DocID() string { return p.ID }

type Store = docstore.Store[Project]

// NewStore returns the Mongo-backed store, listed by name.
func NewStore(db *mongo.Database) *docstore.Collection[Project] {
	return docstore.NewCollection[Project](db.Collection(docstore.Projects), bson.D{{Key: "name", Value: 1}})
}

// ByName orders projects the way NewStore lists them.
func ByName(a, b Project) bool { return a.Name < b.Name }
