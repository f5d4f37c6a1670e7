package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kintai-system/attendance-api/internal/domain"
)

var (
	// ErrNotFound is returned when no employee matches the lookup.
	ErrNotFound = errors.New("employee not found")
	// ErrConflict is returned when the employee number is already taken.
	ErrConflict = errors.New("employee number already exists")
)

// EmployeeRepository defines persistence access for employee identities.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, employee_number, name, email, password_hash, role, company_code,
        department_code, is_active, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (id, employee_number, name, email, password_hash, role,
            company_code, department_code, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (employee_number) DO NOTHING
        RETURNING created_at, updated_at`

	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		employee.ID,
		employee.EmployeeNumber,
		employee.Name,
		employee.Email,
		employee.PasswordHash,
		string(employee.Role),
		employee.CompanyCode,
		employee.DepartmentCode,
		employee.IsActive,
	).Scan(&employee.CreatedAt, &employee.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrConflict
	}
	return err
}

func (r *employeeRepository) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_number=$1`
	return scanEmployee(r.pool.QueryRow(ctx, query, employeeNumber))
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	var role string
	if err := row.Scan(
		&employee.ID,
		&employee.EmployeeNumber,
		&employee.Name,
		&employee.Email,
		&employee.PasswordHash,
		&role,
		&employee.CompanyCode,
		&employee.DepartmentCode,
		&employee.IsActive,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	employee.Role = domain.Role(role)
	return &employee, nil
}
