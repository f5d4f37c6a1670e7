package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kintai-system/attendance-api/internal/domain"
)

type flakyRepository struct {
	err   error
	calls int
}

func (f *flakyRepository) Create(context.Context, *domain.Employee) error {
	f.calls++
	return f.err
}

func (f *flakyRepository) GetByEmployeeNumber(context.Context, string) (*domain.Employee, error) {
	f.calls++
	return nil, f.err
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	backend := &flakyRepository{err: errors.New("connection refused")}
	repo := NewBreakerEmployeeRepository(backend, BreakerSettings{MaxFailures: 3, OpenTimeout: time.Minute}, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := repo.GetByEmployeeNumber(ctx, "1000001")
		require.EqualError(t, err, "connection refused")
	}

	_, err := repo.GetByEmployeeNumber(ctx, "1000001")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, backend.calls)
}

func TestBreakerIgnoresNotFound(t *testing.T) {
	ctx := context.Background()
	backend := &flakyRepository{err: ErrNotFound}
	repo := NewBreakerEmployeeRepository(backend, BreakerSettings{MaxFailures: 2}, nil)

	for i := 0; i < 5; i++ {
		_, err := repo.GetByEmployeeNumber(ctx, "9999999")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 5, backend.calls)
}

func TestBreakerPassesThroughResults(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryEmployeeRepository()
	repo := NewBreakerEmployeeRepository(mem, BreakerSettings{}, nil)

	require.NoError(t, repo.Create(ctx, &domain.Employee{ID: "e1", EmployeeNumber: "4000001"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.Employee{EmployeeNumber: "4000001"}), ErrConflict)

	got, err := repo.GetByEmployeeNumber(ctx, "4000001")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
}
