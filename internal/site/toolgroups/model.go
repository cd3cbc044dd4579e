package toolgroups

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"equipment-backend/internal/platform/docstore"
)

type ToolGroup struct {
	ID          string `bson:"_id" json:"_id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
}

func (g ToolGroup) DocID() string { return g.ID }

type Store = docstore.Store[ToolGroup]

func NewStore(db *mongo.Database) *docstore.Collection[ToolGroup] {
	return docstore.NewCollection[ToolGroup](db.Collection(docstore.ToolGroups), bson.D{{Key: "name", Value: 1}})
}

func ByName(a, b ToolGroup) bool { return a.Name < b.Name }

type ToolGroupRequest struct {
	Name        string `json:"name" validate:"required,min=5,max=100"`
	Description string `json:"description" validate:"required,min=5,max=150"`
}

// Summary is embedded by tools; it is the whole group.
type Summary = ToolGroup
