package model

import "time"

// Role is a worker's function inside the agency.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleProjectManager Role = "PROJECT_MANAGER"
	RoleDeveloper      Role = "DEVELOPER"
	RoleDesigner       Role = "DESIGNER"
	RoleQC             Role = "QC"
)

// EmploymentKind distinguishes payroll workers from contractors.
type EmploymentKind string

const (
	EmploymentInHouse    EmploymentKind = "IN_HOUSE"
	EmploymentFreelancer EmploymentKind = "FREELANCER"
)

type Worker struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Role         Role           `json:"role"`
	Employment   EmploymentKind `json:"employment"`
	// MonthlySalary is expressed in the base currency. No conversion is
	// applied before the hourly rate derivation.
	MonthlySalary *float64  `json:"monthly_salary,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
