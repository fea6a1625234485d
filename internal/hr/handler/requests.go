package handler

import (
	"time"

	"minehub/internal/validate"
)

// DepartmentRequest is the body for POST /departments.
type DepartmentRequest struct {
	DepartmentName  string    `json:"departmentName"`
	DateEstablished time.Time `json:"dateEstablished"`
}

func (req DepartmentRequest) Validate(now time.Time) error {
	var rules validate.Rules
	rules.Length("Department Name", req.DepartmentName, 2, 20)
	rules.PastYear("Date Established", req.DateEstablished, now)
	return rules.Err()
}

// EmployeeRequest is the body for POST /employees and PUT /employees/update.
// Department and Manager are names resolved by the service; Manager may be
// empty.
type EmployeeRequest struct {
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Position       string    `json:"position"`
	Department     string    `json:"department"`
	Manager        string    `json:"manager"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Salary         float64   `json:"salary"`
}

func (req EmployeeRequest) Validate(now time.Time) error {
	var rules validate.Rules
	rules.Length("First Name", req.FirstName, 2, 20)
	rules.Length("Last Name", req.LastName, 2, 20)
	rules.Length("Position", req.Position, 2, 20)
	rules.Length("Department", req.Department, 2, 20)
	rules.PastYear("Enrollment Date", req.EnrollmentDate, now)
	rules.NonNegative("Salary", req.Salary)
	return rules.Err()
}

// LeaveRequest is the body for POST and PATCH /leave.
type LeaveRequest struct {
	EmployeeName string `json:"employeeName"`
	LeaveType    string `json:"leaveType"`
	Amount       int    `json:"amount"`
}

func (req LeaveRequest) Validate() error {
	var rules validate.Rules
	rules.Length("Employee Name", req.EmployeeName, 2, 20)
	rules.Length("Leave Type", req.LeaveType, 2, 20)
	rules.IntBetween("Amount", req.Amount, -180, 180)
	return rules.Err()
}

// PerformanceRequest is the body for PUT /performance.
type PerformanceRequest struct {
	EmployeeName    string `json:"employeeName"`
	PerformanceType string `json:"performanceType"`
	Rating          int    `json:"rating"`
}

func (req PerformanceRequest) Validate() error {
	var rules validate.Rules
	rules.Length("Employee Name", req.EmployeeName, 2, 20)
	rules.Length("Performance Type", req.PerformanceType, 2, 20)
	rules.IntBetween("Rating", req.Rating, 0, 10)
	return rules.Err()
}

// DepartmentResponse mirrors the department list and detail rows.
type DepartmentResponse struct {
	DepartmentName  string    `json:"departmentName"`
	DateEstablished time.Time `json:"dateEstablished"`
}

// EmployeeSummaryResponse is one employee list row.
type EmployeeSummaryResponse struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// EmployeeDetailResponse is the single-employee view.
type EmployeeDetailResponse struct {
	Name           string    `json:"name"`
	Position       string    `json:"position"`
	Department     string    `json:"department"`
	Manager        string    `json:"manager"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

// LeaveResponse is one leave balance row.
type LeaveResponse struct {
	EmployeeName string `json:"employeeName"`
	LeaveType    string `json:"leaveType"`
	Amount       int    `json:"amount"`
}

// PerformanceResponse is one rating row. Rating is null for rows without one.
type PerformanceResponse struct {
	EmployeeName    string `json:"employeeName"`
	PerformanceType string `json:"performanceType"`
	Rating          *int   `json:"rating"`
}
