package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/employee"
	pgdb "github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/db/postgres"
)

const employeeColumns = `id, company_id, COALESCE(contract_id::text, ''), name, integration_status,
               aso_date, aso_validity_days, integration_validity_days, integration_date,
               aso_expires_at, integration_expires_at,
               job_function, job_role, sector, integration_unit, activity_unit,
               schedule_justification, version, created_at, updated_at`

// EmployeeRepository は PostgreSQL を利用した従業員永続化の実装です。論理削除済みの行は対象外です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// FindByID は ID で従業員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return r.findOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND deleted_at IS NULL`, id)
}

// LockByID は行ロックを取得して従業員を返します。
func (r *EmployeeRepository) LockByID(ctx context.Context, id string) (*employee.Employee, error) {
	return r.findOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
}

// LockMany は ID 昇順で行ロックを取得します。ロック順を固定して一括予約同士のデッドロックを避けます。
func (r *EmployeeRepository) LockMany(ctx context.Context, ids []string) ([]*employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE id::text = ANY($1) AND deleted_at IS NULL
         ORDER BY id
         FOR UPDATE`, ids)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0, len(ids))
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return employees, nil
}

// Update は version が一致する場合のみ状態と有効期限を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET contract_id = NULLIF($1, '')::uuid,
               integration_status = $2,
               aso_date = $3,
               aso_validity_days = $4,
               integration_validity_days = $5,
               integration_date = $6,
               aso_expires_at = $7,
               integration_expires_at = $8,
               job_function = $9,
               job_role = $10,
               sector = $11,
               integration_unit = $12,
               activity_unit = $13,
               schedule_justification = $14,
               version = version + 1,
               updated_at = $15
         WHERE id = $16 AND version = $17 AND deleted_at IS NULL
        RETURNING `+employeeColumns,
		e.ContractID,
		string(e.IntegrationStatus),
		nullableDate(e.AsoDate),
		nullableInt(e.AsoValidityDays),
		nullableInt(e.IntegrationValidityDays),
		nullableTimestamp(e.IntegrationDate),
		nullableDate(e.AsoExpiresAt),
		nullableDate(e.IntegrationExpiresAt),
		e.Assignment.Function,
		e.Assignment.Role,
		e.Assignment.Sector,
		e.Assignment.IntegrationUnit,
		e.Assignment.ActivityUnit,
		e.ScheduleJustification,
		e.UpdatedAt,
		e.ID,
		e.Version,
	)

	updated, err := scanEmployee(row)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		if _, findErr := r.FindByID(ctx, e.ID); findErr == nil {
			return nil, employee.ErrVersionMismatch
		}
		return nil, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

func (r *EmployeeRepository) findOne(ctx context.Context, query string, args ...any) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanEmployee(exec.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		e                    employee.Employee
		status               string
		asoDate              sql.NullTime
		asoDays              sql.NullInt32
		integrationDays      sql.NullInt32
		integrationDate      sql.NullTime
		asoExpiresAt         sql.NullTime
		integrationExpiresAt sql.NullTime
	)

	if err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.ContractID,
		&e.Name,
		&status,
		&asoDate,
		&asoDays,
		&integrationDays,
		&integrationDate,
		&asoExpiresAt,
		&integrationExpiresAt,
		&e.Assignment.Function,
		&e.Assignment.Role,
		&e.Assignment.Sector,
		&e.Assignment.IntegrationUnit,
		&e.Assignment.ActivityUnit,
		&e.ScheduleJustification,
		&e.Version,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	parsed, err := employee.ParseIntegrationStatus(status)
	if err != nil {
		return nil, err
	}
	e.IntegrationStatus = parsed
	e.AsoDate = datePtr(asoDate)
	e.AsoValidityDays = intPtr(asoDays)
	e.IntegrationValidityDays = intPtr(integrationDays)
	e.IntegrationDate = timestampPtr(integrationDate)
	e.AsoExpiresAt = datePtr(asoExpiresAt)
	e.IntegrationExpiresAt = datePtr(integrationExpiresAt)
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case invalidTextCode:
			return employee.ErrEmployeeNotFound
		case foreignKeyViolationCode:
			return employee.ErrInvalidID
		}
	}
	return err
}

func nullableDate(value *time.Time) any {
	if value == nil {
		return nil
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

func nullableTimestamp(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC()
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return int32(*value)
}

func datePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func timestampPtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

func intPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}
