package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/kintai-system/attendance-api/internal/domain"
)

// BreakerSettings tunes the circuit breaker around the employee store.
type BreakerSettings struct {
	MaxFailures int
	OpenTimeout time.Duration
}

type breakerEmployeeRepository struct {
	next EmployeeRepository
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerEmployeeRepository guards next with a circuit breaker. Lookups of
// unknown employees and conflicts count as successes.
func NewBreakerEmployeeRepository(next EmployeeRepository, settings BreakerSettings, logger *zap.Logger) EmployeeRepository {
	if settings.MaxFailures <= 0 {
		settings.MaxFailures = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "employee-store",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(settings.MaxFailures)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &breakerEmployeeRepository{next: next, cb: cb}
}

func (r *breakerEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.next.Create(ctx, employee)
	})
	return err
}

func (r *breakerEmployeeRepository) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*domain.Employee, error) {
	return r.lookup(func() (*domain.Employee, error) { return r.next.GetByEmployeeNumber(ctx, employeeNumber) })
}

func (r *breakerEmployeeRepository) lookup(fn func() (*domain.Employee, error)) (*domain.Employee, error) {
	res, err := r.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Employee), nil
}
