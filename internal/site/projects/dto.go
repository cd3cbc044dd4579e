package projects

import (
	"time"

	"equipment-backend/internal/platform/auth"
)

// ===== Request =====

type ProjectRequest struct {
	Name          string `json:"name" validate:"required,min=5,max=50"`
	Address       string `json:"address" validate:"required,min=5,max=50"`
	ProjectNumber *int64 `json:"projectNumber" validate:"required"`
	Active        *bool  `json:"active"`
	Supervisor    string `json:"supervisor" validate:"required,ulid"`
	StartDate     string `json:"startDate" validate:"required,date"`
	EndDate       string `json:"endDate" validate:"required,date"`
}

// ===== Response =====

type ProjectResponse struct {
	ID            string            `json:"_id"`
	Name          string            `json:"name"`
	Address       string            `json:"address"`
	ProjectNumber int64             `json:"projectNumber"`
	Active        bool              `json:"active"`
	Supervisor    *auth.UserSummary `json:"supervisor"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       time.Time         `json:"endDate"`
}

// Summary is the projection other resources embed for a project reference.
type Summary struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ProjectNumber int64  `json:"projectNumber"`
}

func toResponse(p Project, supervisors map[string]auth.UserSummary) ProjectResponse {
	res := ProjectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Address:       p.Address,
		ProjectNumber: p.ProjectNumber,
		Active:        p.Active,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
	}
	if s, ok := supervisors[p.Supervisor]; ok {
		res.Supervisor = &s
	}
	return res
}

func toSummary(p Project) Summary {
	return Summary{ID: p.ID, Name: p.Name, Address: p.Address, ProjectNumber: p.ProjectNumber}
}
