package domain

import "time"

// DateLayout is the wire format for calendar dates. Parsed dates are
// normalized to midnight UTC before any comparison.
const DateLayout = "2006-01-02"

// Consultant is a staffable person. Owned by the consultants module; the
// staffing core only reads its existence and status.
type Consultant struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the display name used when enriching assignments.
func (c *Consultant) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Role is a staffing role (e.g. backend developer, tech lead).
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Client is the customer a project is delivered for.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project belongs to a client and owns at most one team.
type Project struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectTeam is the project-level group assignments attach to. A project
// has at most one Active team.
type ProjectTeam struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Assignment links a consultant to a project team under a role for a date
// range at a dedication percentage.
type Assignment struct {
	ID           string    `json:"id"`
	ConsultantID string    `json:"consultant_id"`
	TeamID       string    `json:"team_id"`
	RoleID       string    `json:"role_id"`
	Dedication   int       `json:"dedication"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EnrichedAssignment is an assignment joined with the display names of its
// referents, as returned by the create/get flows.
type EnrichedAssignment struct {
	Assignment
	ConsultantName string `json:"consultant_name"`
	RoleName       string `json:"role_name"`
	ProjectName    string `json:"project_name"`
}

// Task belongs to a project and is what timesheet entries are booked against.
type Task struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAssignmentRequest carries the candidate values for a new assignment.
// Dates arrive as strings and are parsed by the validator.
type CreateAssignmentRequest struct {
	ConsultantID string
	TeamID       string
	RoleID       string
	Dedication   int
	StartDate    string
	EndDate      string
}

// UpdateAssignmentRequest carries a partial update. Nil fields keep the
// existing value; the merge computes effective values before re-validation.
type UpdateAssignmentRequest struct {
	RoleID     *string
	Dedication *int
	StartDate  *string
	EndDate    *string
}

// CreateTeamRequest carries the candidate values for a new project team.
type CreateTeamRequest struct {
	ProjectID string
	Name      string
	StartDate string
	EndDate   string
}

// UpdateTeamRequest carries a partial team update.
type UpdateTeamRequest struct {
	Name      *string
	StartDate *string
	EndDate   *string
}
