package models

import "time"

// Status is the active flag shared by accounts and employees
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Account is a login identity with its stored password hash
type Account struct {
	ID           string
	Login        string
	PasswordHash string
	Status       Status
	EmployeeID   *string
	Employee     *Employee // Populated when EmployeeID is set
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Employee is the optional staff record linked to an account
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	SystemAccess bool
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the account may log in at all
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// IsActive reports whether the employee is still active
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// Snapshot builds the secret-free view of the account stored in a session
func (a *Account) Snapshot() Snapshot {
	snap := Snapshot{
		AccountID:  a.ID,
		Login:      a.Login,
		EmployeeID: a.EmployeeID,
	}
	if a.Employee != nil {
		first, last, email := a.Employee.FirstName, a.Employee.LastName, a.Employee.Email
		snap.FirstName = &first
		snap.LastName = &last
		snap.Email = &email
	}
	return snap
}
