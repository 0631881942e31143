package domain

// Request types for the supporting CRUD modules. Pointer fields on the
// update variants keep "not supplied" distinct from a zero value.

type CreateConsultantRequest struct {
	FirstName string
	LastName  string
	Email     string
}

type UpdateConsultantRequest struct {
	FirstName *string
	LastName  *string
	Email     *string
}

type CreateRoleRequest struct {
	Name string
}

type UpdateRoleRequest struct {
	Name *string
}

type CreateClientRequest struct {
	Name  string
	Email string
}

type UpdateClientRequest struct {
	Name  *string
	Email *string
}

type CreateProjectRequest struct {
	ClientID string
	Name     string
}

type UpdateProjectRequest struct {
	Name *string
}

type CreateTaskRequest struct {
	ProjectID string
	Name      string
}

type UpdateTaskRequest struct {
	Name *string
}
