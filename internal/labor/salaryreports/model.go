package salaryreports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"equipment-backend/internal/labor/worklog"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/platform/docstore"
)

type WorkDay struct {
	Date   time.Time       `bson:"date"`
	Places []worklog.Place `bson:"places"`
}

type SalaryReport struct {
	ID       string    `bson:"_id"`
	Worker   string    `bson:"worker"`
	Date     time.Time `bson:"date"`
	WorkDays []WorkDay `bson:"workDays"`
}

func (r SalaryReport) DocID() string { return r.ID }

// projectIDs walks every place of every work day.
func (r SalaryReport) projectIDs() []string {
	var out []string
	for _, d := range r.WorkDays {
		out = append(out, worklog.ProjectIDs(d.Places)...)
	}
	return out
}

type Store = docstore.Store[SalaryReport]

func NewStore(db *mongo.Database) *docstore.Collection[SalaryReport] {
	return docstore.NewCollection[SalaryReport](db.Collection(docstore.SalaryReports), bson.D{{Key: "date", Value: 1}})
}

func ByDate(a, b SalaryReport) bool { return a.Date.Before(b.Date) }

// ===== DTO =====

type WorkDayRequest struct {
	Date   string                 `json:"date" validate:"required,date"`
	Places []worklog.PlaceRequest `json:"places" validate:"dive"`
}

type SalaryReportRequest struct {
	Worker   string           `json:"worker" validate:"required,ulid"`
	Date     string           `json:"date" validate:"required,date"`
	WorkDays []WorkDayRequest `json:"workDays" validate:"dive"`
}

type WorkDayResponse struct {
	Date   time.Time               `json:"date"`
	Places []worklog.PlaceResponse `json:"places"`
}

type SalaryReportResponse struct {
	ID       string            `json:"_id"`
	Worker   *auth.UserSummary `json:"worker"`
	Date     time.Time         `json:"date"`
	WorkDays []WorkDayResponse `json:"workDays"`
}
