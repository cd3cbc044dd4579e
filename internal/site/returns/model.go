package returns

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/site/projects"
)

// ToolSnapshot is a copy of the rented tool taken when it came back.
type ToolSnapshot struct {
	Name      string    `bson:"name"`
	Project   string    `bson:"project"`
	RentStart time.Time `bson:"rentStart"`
	RentedTo  string    `bson:"rentedTo"`
}

type Return struct {
	ID            string       `bson:"_id"`
	Tool          ToolSnapshot `bson:"tool"`
	RentedTool    string       `bson:"rentedTool"`
	RentStartDate time.Time    `bson:"rentStartDate"`
	ReturnDate    time.Time    `bson:"returnDate"`
	RentCompany   string       `bson:"rentCompany"`
}

func (r Return) DocID() string { return r.ID }

type Store = docstore.Store[Return]

// NewStore lists the newest return first.
func NewStore(db *mongo.Database) *docstore.Collection[Return] {
	return docstore.NewCollection[Return](db.Collection(docstore.Returns), bson.D{{Key: "returnDate", Value: -1}})
}

func NewestFirst(a, b Return) bool { return a.ReturnDate.After(b.ReturnDate) }

// ===== DTO =====

type ReturnRequest struct {
	Tool string `json:"tool" validate:"required,ulid"`
}

type ToolSnapshotResponse struct {
	Name      string            `json:"name"`
	Project   *projects.Summary `json:"project"`
	RentStart time.Time         `json:"rentStart"`
	RentedTo  string            `json:"rentedTo"`
}

type ReturnResponse struct {
	ID            string               `json:"_id"`
	Tool          ToolSnapshotResponse `json:"tool"`
	RentedTool    string               `json:"rentedTool"`
	RentStartDate time.Time            `json:"rentStartDate"`
	ReturnDate    time.Time            `json:"returnDate"`
	RentCompany   string               `json:"rentCompany"`
}
