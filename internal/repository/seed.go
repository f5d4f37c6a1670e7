package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kintai-system/attendance-api/internal/domain"
)

// DemoEmployee pairs a seed record with its plaintext password.
type DemoEmployee struct {
	Employee domain.Employee
	Password string
}

// DemoEmployees returns the two accounts available in development environments.
func DemoEmployees() []DemoEmployee {
	dev := "DEV"
	admin := "ADMIN"
	return []DemoEmployee{
		{
			Employee: domain.Employee{
				ID:             "user_001",
				EmployeeNumber: "1000001",
				Name:           "山田太郎",
				Email:          "yamada@company.jp",
				Role:           domain.RoleGeneral,
				CompanyCode:    "1",
				DepartmentCode: &dev,
				IsActive:       true,
			},
			Password: "password123",
		},
		{
			Employee: domain.Employee{
				ID:             "admin_001",
				EmployeeNumber: "2000001",
				Name:           "管理者太郎",
				Email:          "admin@company.jp",
				Role:           domain.RoleAdmin,
				CompanyCode:    "2",
				DepartmentCode: &admin,
				IsActive:       true,
			},
			Password: "admin123",
		},
	}
}

// SeedEmployees hashes and inserts the given accounts. Existing employee
// numbers are left untouched. It returns how many rows were created.
func SeedEmployees(ctx context.Context, repo EmployeeRepository, hash func(string) (string, error), seeds []DemoEmployee) (int, error) {
	created := 0
	for _, seed := range seeds {
		employee := seed.Employee
		if err := domain.ValidateEmployeeNumber(employee.EmployeeNumber); err != nil {
			return created, fmt.Errorf("seed employee %q: %w", employee.EmployeeNumber, err)
		}
		hashed, err := hash(seed.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", employee.EmployeeNumber, err)
		}
		employee.PasswordHash = hashed

		if err := repo.Create(ctx, &employee); err != nil {
			if errors.Is(err, ErrConflict) {
				continue
			}
			return created, fmt.Errorf("seed employee %s: %w", employee.EmployeeNumber, err)
		}
		created++
	}
	return created, nil
}
