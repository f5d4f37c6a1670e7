package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kintai-system/attendance-api/internal/domain"
)

// MemoryEmployeeRepository serves employees from process memory. It backs
// local development and tests when no database is configured.
type MemoryEmployeeRepository struct {
	mu       sync.RWMutex
	byID     map[string]*domain.Employee
	byNumber map[string]*domain.Employee
}

// NewMemoryEmployeeRepository returns an empty store.
func NewMemoryEmployeeRepository() *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{
		byID:     make(map[string]*domain.Employee),
		byNumber: make(map[string]*domain.Employee),
	}
}

func (r *MemoryEmployeeRepository) Create(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[employee.EmployeeNumber]; exists {
		return ErrConflict
	}
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	stored := *employee
	r.byID[stored.ID] = &stored
	r.byNumber[stored.EmployeeNumber] = &stored
	return nil
}

func (r *MemoryEmployeeRepository) GetByEmployeeNumber(_ context.Context, employeeNumber string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyOrNotFound(r.byNumber[employeeNumber])
}

// SetActive flips the active flag, e.g. when an administrator disables an account.
func (r *MemoryEmployeeRepository) SetActive(id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	employee.IsActive = active
	employee.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes an employee.
func (r *MemoryEmployeeRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byNumber, employee.EmployeeNumber)
	return nil
}

func copyOrNotFound(employee *domain.Employee) (*domain.Employee, error) {
	if employee == nil {
		return nil, ErrNotFound
	}
	out := *employee
	return &out, nil
}
