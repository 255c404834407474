package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, email, department, hourly_rate, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, id).Scan(
			&emp.ID, &emp.FullName, &emp.Email, &emp.Department,
			&emp.HourlyRate, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetHourlyRate implements employee.EmployeeRepository.
func (r *employeeRepository) GetHourlyRate(ctx context.Context, id string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT hourly_rate FROM employees WHERE id = $1`

	var rate decimal.Decimal
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, id).Scan(&rate)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, employee.ErrEmployeeNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get hourly rate: %w", err)
	}

	return rate, nil
}
