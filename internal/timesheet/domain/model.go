package domain

import (
	"time"

	staffing "github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// Entry is a timesheet booking: hours worked by a consultant on a task on
// one calendar day.
type Entry struct {
	ID           string          `json:"id"`
	ConsultantID string          `json:"consultant_id"`
	TaskID       string          `json:"task_id"`
	WorkDate     time.Time       `json:"work_date"`
	Hours        float64         `json:"hours"`
	Note         string          `json:"note,omitempty"`
	Status       staffing.Status `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateEntryRequest carries the candidate values for a new entry. The work
// date arrives as a string and is parsed by the service.
type CreateEntryRequest struct {
	ConsultantID string
	TaskID       string
	WorkDate     string
	Hours        float64
	Note         string
}

// UpdateEntryRequest carries a partial entry update.
type UpdateEntryRequest struct {
	WorkDate *string
	Hours    *float64
	Note     *string
}
