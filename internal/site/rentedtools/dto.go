package rentedtools

import (
	"time"

	"equipment-backend/internal/site/projects"
)

type RentedToolRequest struct {
	Name      string  `json:"name" validate:"required,min=5,max=50"`
	RentedTo  string  `json:"rentedTo" validate:"required,min=5,max=50"`
	RentStart string  `json:"rentStart" validate:"required,date"`
	RentEnd   *string `json:"rentEnd" validate:"omitempty,date"`
	Project   string  `json:"project" validate:"required,ulid"`
}

type RentedToolResponse struct {
	ID         string            `json:"_id"`
	Name       string            `json:"name"`
	RentedTo   string            `json:"rentedTo"`
	RentStart  time.Time         `json:"rentStart"`
	RentEnd    *time.Time        `json:"rentEnd,omitempty"`
	Project    *projects.Summary `json:"project"`
	ReturnedAt *time.Time        `json:"returnedAt,omitempty"`
}
