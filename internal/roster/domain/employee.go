package domain

// Employee is one roster record. Fields are stored exactly as persisted; the
// service layer owns normalization and format rules.
type Employee struct {
	ID         string // 6-digit numeric string, unique within the roster
	Name       string
	Department string
	Role       string
}
