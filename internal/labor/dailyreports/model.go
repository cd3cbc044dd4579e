package dailyreports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"equipment-backend/internal/labor/worklog"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/platform/docstore"
)

type DailyReport struct {
	ID     string          `bson:"_id"`
	Worker string          `bson:"worker"`
	Date   time.Time       `bson:"date"`
	Places []worklog.Place `bson:"places"`
}

func (r DailyReport) DocID() string { return r.ID }

type Store = docstore.Store[DailyReport]

// NewStore lists reports by date, oldest first. Equal dates keep the store's order.
func NewStore(db *mongo.Database) *docstore.Collection[DailyReport] {
	return docstore.NewCollection[DailyReport](db.Collection(docstore.DailyReports), bson.D{{Key: "date", Value: 1}})
}

func ByDate(a, b DailyReport) bool { return a.Date.Before(b.Date) }

// ===== DTO =====

type DailyReportRequest struct {
	Worker string                 `json:"worker" validate:"required,ulid"`
	Date   string                 `json:"date" validate:"required,date"`
	Places []worklog.PlaceRequest `json:"places" validate:"dive"`
}

type DailyReportResponse struct {
	ID     string                  `json:"_id"`
	Worker *auth.UserSummary       `json:"worker"`
	Date   time.Time               `json:"date"`
	Places []worklog.PlaceResponse `json:"places"`
}
