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

type PgxAttendanceRepository struct {
	BaseRepository
}

// newPgxAttendanceRepository creates a new repository for attendance records
func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceRepositoryFacade {
	return &PgxAttendanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAttendanceRepository implements portsrepo.AttendanceRepositoryFacade
var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

const attendanceColumns = `attendance_id, employee_id, clock_in_at, clock_out_at, method, worked_minutes, notes`

func scanAttendance(row pgx.Row) (models.AttendanceRecord, error) {
	var m models.AttendanceRecord
	err := row.Scan(
		&m.AttendanceID,
		&m.EmployeeID,
		&m.ClockInAt,
		&m.ClockOutAt,
		&m.Method,
		&m.WorkedMinutes,
		&m.Notes,
	)
	return m, err
}

// SaveClockIn persists a new record with an open clock-in. A partial unique
// index on (employee_id) WHERE clock_out_at IS NULL rejects a double
// clock-in at the database level.
func (r *PgxAttendanceRepository) SaveClockIn(ctx context.Context, record *domain.AttendanceRecord) error {
	m := mapping.ToModelAttendance(*record)
	query := `
		INSERT INTO attendance_records (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AttendanceID,
		m.EmployeeID,
		m.ClockInAt,
		m.ClockOutAt,
		m.Method,
		m.WorkedMinutes,
		m.Notes,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("employee %s is already clocked in: %w", record.EmployeeID, apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to insert attendance record "+m.AttendanceID, err)
	}

	return nil
}

// SaveClockOut stamps the clock-out time and worked minutes on an open record.
func (r *PgxAttendanceRepository) SaveClockOut(ctx context.Context, recordID string, clockOutAt time.Time, workedMinutes int) error {
	query := `
		UPDATE attendance_records
		SET clock_out_at = $2, worked_minutes = $3
		WHERE attendance_id = $1 AND clock_out_at IS NULL;
	`
	commandTag, err := r.Pool.Exec(ctx, query, recordID, clockOutAt, workedMinutes)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update attendance record "+recordID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("attendance record %s is not open: %w", recordID, apperrors.ErrConflict)
	}

	return nil
}

// FindOpenRecordByEmployee retrieves the employee's open record, if any.
func (r *PgxAttendanceRepository) FindOpenRecordByEmployee(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND clock_out_at IS NULL;`
	m, err := scanAttendance(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open record for employee "+employeeID, err)
	}

	record := mapping.ToDomainAttendance(m)
	return &record, nil
}

// ListRecordsByDate retrieves all records whose clock-in falls on the given day.
func (r *PgxAttendanceRepository) ListRecordsByDate(ctx context.Context, day time.Time) ([]domain.AttendanceRecord, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE clock_in_at >= $1 AND clock_in_at < $2
		ORDER BY clock_in_at;
	`
	rows, err := r.Pool.Query(ctx, query, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attendance records", err)
	}
	defer rows.Close()

	return collectAttendanceRecords(rows)
}

// ListRecordsByEmployee retrieves an employee's records within a date range.
func (r *PgxAttendanceRepository) ListRecordsByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.AttendanceRecord, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND clock_in_at >= $2 AND clock_in_at < $3
		ORDER BY clock_in_at;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attendance for employee "+employeeID, err)
	}
	defer rows.Close()

	return collectAttendanceRecords(rows)
}

func collectAttendanceRecords(rows pgx.Rows) ([]domain.AttendanceRecord, error) {
	records := []domain.AttendanceRecord{}
	for rows.Next() {
		m, err := scanAttendance(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attendance row", err)
		}
		records = append(records, mapping.ToDomainAttendance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attendance rows", err)
	}
	return records, nil
}
