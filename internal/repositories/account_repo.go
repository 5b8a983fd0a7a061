package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/BradenHooton/gestaopro/internal/database"
	"github.com/BradenHooton/gestaopro/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{pool: db.Pool}
}

// GetByLogin loads an account joined with its employee, if linked.
// Returns models.ErrNotFound when no account has this login.
func (r *AccountRepository) GetByLogin(ctx context.Context, login string) (*models.Account, error) {
	query := `
		SELECT
			a.id, a.login, a.password_hash, a.status, a.employee_id, a.created_at, a.updated_at,
			e.first_name, e.last_name, e.email, e.system_access, e.status
		FROM accounts a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.login = $1
		LIMIT 1
	`

	var account models.Account
	var (
		firstName, lastName, email, employeeStatus *string
		systemAccess                               *bool
	)

	err := r.pool.QueryRow(ctx, query, login).Scan(
		&account.ID, &account.Login, &account.PasswordHash, &account.Status,
		&account.EmployeeID, &account.CreatedAt, &account.UpdatedAt,
		&firstName, &lastName, &email, &systemAccess, &employeeStatus,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if account.EmployeeID != nil && employeeStatus != nil {
		account.Employee = &models.Employee{
			ID:           *account.EmployeeID,
			FirstName:    deref(firstName),
			LastName:     deref(lastName),
			Email:        deref(email),
			SystemAccess: systemAccess != nil && *systemAccess,
			Status:       models.Status(*employeeStatus),
		}
	}

	return &account, nil
}

// Create inserts an account; an attached Employee without an ID is inserted first
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	now := time.Now()

	if account.Employee != nil && account.Employee.ID == "" {
		if _, err := r.CreateEmployee(ctx, account.Employee); err != nil {
			return nil, err
		}
	}
	if account.Employee != nil {
		account.EmployeeID = &account.Employee.ID
	}

	account.ID = uuid.New().String()
	account.CreatedAt = now
	account.UpdatedAt = now
	if account.Status == "" {
		account.Status = models.StatusActive
	}

	query := `
		INSERT INTO accounts (id, login, password_hash, status, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID, account.Login, account.PasswordHash, account.Status,
		account.EmployeeID, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", database.MapPostgresError(err))
	}

	return account, nil
}

func (r *AccountRepository) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	now := time.Now()
	employee.ID = uuid.New().String()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	if employee.Status == "" {
		employee.Status = models.StatusActive
	}

	query := `
		INSERT INTO employees (id, first_name, last_name, email, system_access, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		employee.ID, employee.FirstName, employee.LastName, employee.Email,
		employee.SystemAccess, employee.Status, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", database.MapPostgresError(err))
	}

	return employee, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
