package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	"github.com/twinxhq/twinx-pos/internal/models"
	"github.com/twinxhq/twinx-pos/internal/utils/mapping"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for employee data
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeRepositoryFacade
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `employee_id, username, password_hash, first_name, last_name, email, phone,
	employee_code, job_title, role, permissions, is_active, is_locked, failed_login_attempts,
	last_login_at, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.Username,
		&m.PasswordHash,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.EmployeeCode,
		&m.JobTitle,
		&m.Role,
		&m.PermissionsJSON,
		&m.IsActive,
		&m.IsLocked,
		&m.FailedLoginAttempts,
		&m.LastLoginAt,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEmployee persists a new employee.
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee *domain.Employee) error {
	m, err := mapping.ToModelEmployee(*employee)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode permissions for employee "+employee.EmployeeID, err)
	}

	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.Username,
		m.PasswordHash,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.EmployeeCode,
		m.JobTitle,
		m.Role,
		m.PermissionsJSON,
		m.IsActive,
		m.IsLocked,
		m.FailedLoginAttempts,
		m.LastLoginAt,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("username %s already exists: %w", employee.Username, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert employee "+m.EmployeeID, err)
	}

	return nil
}

// FindEmployeeByID retrieves an employee by their unique identifier.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1 AND deleted_at IS NULL;`
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employee by ID "+employeeID, err)
	}

	employee := mapping.ToDomainEmployee(m)
	return &employee, nil
}

// FindEmployeeByUsername retrieves an employee by username.
func (r *PgxEmployeeRepository) FindEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE username = $1 AND deleted_at IS NULL;`
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employee by username", err)
	}

	employee := mapping.ToDomainEmployee(m)
	return &employee, nil
}

// ListEmployees retrieves active employees, ordered by name.
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY first_name, last_name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
		}
		employees = append(employees, mapping.ToDomainEmployee(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}

	return employees, nil
}

// UpdateEmployee updates the mutable profile fields of an employee.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee *domain.Employee) error {
	m, err := mapping.ToModelEmployee(*employee)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode permissions for employee "+employee.EmployeeID, err)
	}

	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone = $5, job_title = $6,
		    role = $7, permissions = $8, is_active = $9, is_locked = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	commandTag, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.JobTitle,
		m.Role,
		m.PermissionsJSON,
		m.IsActive,
		m.IsLocked,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update employee "+m.EmployeeID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("employee " + m.EmployeeID)
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *PgxEmployeeRepository) UpdatePassword(ctx context.Context, employeeID string, passwordHash string, updatedBy string) error {
	query := `
		UPDATE employees
		SET password_hash = $2, last_updated_at = $3, last_updated_by = $4
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	commandTag, err := r.Pool.Exec(ctx, query, employeeID, passwordHash, time.Now(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update password for employee "+employeeID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("employee " + employeeID)
	}

	return nil
}

// RecordLoginSuccess clears the failed-attempt counter and stamps last login.
func (r *PgxEmployeeRepository) RecordLoginSuccess(ctx context.Context, employeeID string, at time.Time) error {
	query := `
		UPDATE employees
		SET failed_login_attempts = 0, last_login_at = $2
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	commandTag, err := r.Pool.Exec(ctx, query, employeeID, at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record login for employee "+employeeID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("employee " + employeeID)
	}

	return nil
}

// RecordLoginFailure increments the failed-attempt counter and locks the
// account when the counter reaches lockAfter, in a single statement so
// concurrent failures cannot skip the lock threshold.
func (r *PgxEmployeeRepository) RecordLoginFailure(ctx context.Context, employeeID string, lockAfter int) (int, error) {
	query := `
		UPDATE employees
		SET failed_login_attempts = failed_login_attempts + 1,
		    is_locked = is_locked OR (failed_login_attempts + 1 >= $2)
		WHERE employee_id = $1 AND deleted_at IS NULL
		RETURNING failed_login_attempts;
	`
	var attempts int
	err := r.Pool.QueryRow(ctx, query, employeeID, lockAfter).Scan(&attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, apperrors.NewAppError(500, "failed to record login failure for employee "+employeeID, err)
	}

	return attempts, nil
}
