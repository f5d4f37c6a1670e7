package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmployeeNumber(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		wantErr bool
	}{
		{name: "valid", number: "1000001"},
		{name: "too short", number: "100001", wantErr: true},
		{name: "too long", number: "10000011", wantErr: true},
		{name: "non numeric", number: "10a0001", wantErr: true},
		{name: "empty", number: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmployeeNumber(tt.number)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPublicDropsCredential(t *testing.T) {
	dept := "DEV"
	e := &Employee{
		ID:             "user_001",
		EmployeeNumber: "1000001",
		Name:           "山田太郎",
		Email:          "yamada@company.jp",
		PasswordHash:   "$2a$12$secret",
		Role:           RoleGeneral,
		CompanyCode:    "1",
		DepartmentCode: &dept,
		IsActive:       true,
	}

	p := e.Public()
	assert.Equal(t, e.ID, p.ID)
	assert.Equal(t, e.Email, p.Email)
	assert.Equal(t, RoleGeneral, p.Role)
	assert.Equal(t, "DEV", *p.DepartmentCode)
	assert.NotContains(t, []any{p.ID, p.Name, p.Email, p.CompanyCode}, e.PasswordHash)
}
