package dto

import "github.com/kintai-system/attendance-api/internal/domain"

// UserResponse is the public view of an employee.
type UserResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	CompanyCode    string  `json:"company_code"`
	DepartmentCode *string `json:"department_code"`
	IsActive       bool    `json:"is_active"`
}

// NewUserResponse converts a profile into its wire form.
func NewUserResponse(p domain.PublicProfile) UserResponse {
	return UserResponse{
		ID:             p.ID,
		EmployeeNumber: p.EmployeeNumber,
		Name:           p.Name,
		Email:          p.Email,
		Role:           string(p.Role),
		CompanyCode:    p.CompanyCode,
		DepartmentCode: p.DepartmentCode,
		IsActive:       p.IsActive,
	}
}

// UserListResponse payload for GET /api/users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}
