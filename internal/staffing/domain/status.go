package domain

// Status is the lifecycle state of a staffing record. Records are never
// physically removed; deletion flips the status to StatusDeleted, which is
// terminal.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDeleted:
		return true
	}
	return false
}
