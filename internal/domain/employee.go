package domain

import (
	"fmt"
	"time"
)

// EmployeeNumberLength is the fixed length of an employee number.
const EmployeeNumberLength = 7

// Role enumerates authorization levels. Unknown values are carried verbatim.
type Role string

const (
	RoleGeneral Role = "general"
	RoleAdmin   Role = "admin"
)

// Employee is the identity record used for authentication.
type Employee struct {
	ID             string
	EmployeeNumber string
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	CompanyCode    string
	DepartmentCode *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicProfile is the client-safe view of an Employee.
type PublicProfile struct {
	ID             string
	EmployeeNumber string
	Name           string
	Email          string
	Role           Role
	CompanyCode    string
	DepartmentCode *string
	IsActive       bool
}

// Public strips the credential from the record.
func (e *Employee) Public() PublicProfile {
	return PublicProfile{
		ID:             e.ID,
		EmployeeNumber: e.EmployeeNumber,
		Name:           e.Name,
		Email:          e.Email,
		Role:           e.Role,
		CompanyCode:    e.CompanyCode,
		DepartmentCode: e.DepartmentCode,
		IsActive:       e.IsActive,
	}
}

// ValidateEmployeeNumber checks the fixed-length numeric format.
func ValidateEmployeeNumber(number string) error {
	if len(number) != EmployeeNumberLength {
		return fmt.Errorf("employee number must be %d characters", EmployeeNumberLength)
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return fmt.Errorf("employee number must be numeric")
		}
	}
	return nil
}
