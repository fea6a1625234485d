// Package models defines the HR records: departments, employees and the
// per-employee leave and performance rows. The record store owns these; every
// operation re-reads current state rather than holding long-lived copies.
package models

import (
	"strings"
	"time"
)

// Department groups employees. Names are unique case-insensitively.
type Department struct {
	ID          int64
	Name        string
	Established time.Time
}

// Employee belongs to one department and optionally reports to a manager,
// which is a plain foreign key back into the employee table. The
// (FirstName, LastName) pair is unique case-insensitively.
type Employee struct {
	ID             int64
	FirstName      string
	LastName       string
	Position       string
	DepartmentID   int64
	EnrollmentDate time.Time
	Salary         float64
	ManagerID      *int64
}

// FullName joins first and last name with a single space, the form the
// resolver splits on.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Leave is one balance row per (employee, type). Type is stored upper-cased;
// Amount is a signed day count that business rules keep non-negative.
type Leave struct {
	EmployeeID int64
	Type       string
	Amount     int
}

// Performance is one rating row per (employee, type). Rating is nullable:
// partially populated rows exist in the wild and the blend rule tolerates
// them.
type Performance struct {
	EmployeeID int64
	Type       string
	Rating     *int
}

// NormalizeType upper-cases a leave or performance type the way the store
// keys them.
func NormalizeType(t string) string {
	return strings.ToUpper(t)
}
