package tools

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/site/projects"
	"equipment-backend/internal/site/toolgroups"
)

type Tool struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	SerieNumber int64  `bson:"serieNumber"`
	ToolGroup   string `bson:"toolGroup"`
	Project     string `bson:"project,omitempty"`
	Available   bool   `bson:"available"`
	Reparation  bool   `bson:"reparation"`
}

func (t Tool) DocID() string { return t.ID }

type Store = docstore.Store[Tool]

func NewStore(db *mongo.Database) *docstore.Collection[Tool] {
	return docstore.NewCollection[Tool](db.Collection(docstore.Tools), bson.D{{Key: "name", Value: 1}})
}

func ByName(a, b Tool) bool { return a.Name < b.Name }

// ===== DTO =====

type ToolRequest struct {
	Name        string  `json:"name" validate:"required,min=5,max=50"`
	SerieNumber *int64  `json:"serieNumber" validate:"required"`
	ToolGroup   string  `json:"toolGroup" validate:"required,ulid"`
	Project     *string `json:"project" validate:"omitempty,ulid"`
	Available   *bool   `json:"available"`
	Reparation  *bool   `json:"reparation"`
}

type ToolResponse struct {
	ID          string              `json:"_id"`
	Name        string              `json:"name"`
	SerieNumber int64               `json:"serieNumber"`
	ToolGroup   *toolgroups.Summary `json:"toolGroup"`
	Project     *projects.Summary   `json:"project"`
	Available   bool                `json:"available"`
	Reparation  bool                `json:"reparation"`
}
