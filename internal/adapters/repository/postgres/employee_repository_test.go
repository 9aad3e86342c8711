package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/employee"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var employeeColumnNames = []string{
	"id", "company_id", "contract_id", "name", "integration_status",
	"aso_date", "aso_validity_days", "integration_validity_days", "integration_date",
	"aso_expires_at", "integration_expires_at",
	"job_function", "job_role", "sector", "integration_unit", "activity_unit",
	"schedule_justification", "version", "created_at", "updated_at",
}

func TestEmployeeRepository_LockByID_ScansNullableColumns(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)
	aso := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	integration := time.Date(2024, 1, 16, 13, 30, 0, 0, time.UTC)
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(employeeColumnNames).
		AddRow("emp-1", "company-1", "contract-1", "Maria", "REALIZADA",
			aso, int32(365), int32(180), integration,
			aso.AddDate(0, 0, 365), nil,
			"Soldadora", "Operacional", "Manutencao", "Unidade A", "Unidade B",
			"", int64(4), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("deleted_at IS NULL FOR UPDATE")).
		WithArgs("emp-1").
		WillReturnRows(rows)

	e, err := repo.LockByID(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("LockByID returned error: %v", err)
	}
	if e.IntegrationStatus != employee.StatusCompleted || e.Version != 4 {
		t.Fatalf("unexpected employee %+v", e)
	}
	if e.AsoValidityDays == nil || *e.AsoValidityDays != 365 || e.IntegrationValidityDays == nil || *e.IntegrationValidityDays != 180 {
		t.Fatalf("expected frozen validity days, got %v %v", e.AsoValidityDays, e.IntegrationValidityDays)
	}
	if e.IntegrationDate == nil || !e.IntegrationDate.Equal(integration) {
		t.Fatalf("unexpected integration date %v", e.IntegrationDate)
	}
	if e.IntegrationExpiresAt != nil {
		t.Fatalf("expected nil integration expiry, got %v", e.IntegrationExpiresAt)
	}
	if e.Assignment.Function != "Soldadora" || e.Assignment.ActivityUnit != "Unidade B" {
		t.Fatalf("unexpected assignment %+v", e.Assignment)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_LockMany(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	ids := []string{"emp-2", "emp-1", "emp-9"}

	rows := pgxmock.NewRows(employeeColumnNames).
		AddRow("emp-1", "company-1", "", "Ana", "PENDENTE", nil, nil, nil, nil, nil, nil, "", "", "", "", "", "", int64(1), now, now).
		AddRow("emp-2", "company-1", "", "Bia", "APROVADO", nil, nil, nil, nil, nil, nil, "", "", "", "", "", "", int64(2), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id")).
		WithArgs(ids).
		WillReturnRows(rows)

	locked, err := repo.LockMany(context.Background(), ids)
	if err != nil {
		t.Fatalf("LockMany returned error: %v", err)
	}
	if len(locked) != 2 || locked[0].ID != "emp-1" || locked[1].ID != "emp-2" {
		t.Fatalf("unexpected locked employees %+v", locked)
	}
	if locked[0].AsoDate != nil || locked[0].AsoValidityDays != nil {
		t.Fatalf("expected nil optional fields, got %+v", locked[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_LockMany_Empty(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	locked, err := NewEmployeeRepository(mock).LockMany(context.Background(), nil)
	if err != nil || locked != nil {
		t.Fatalf("expected no query for empty ids, got %v %v", locked, err)
	}
}

func TestEmployeeRepository_Update_VersionMismatch(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE employees")).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows(employeeColumnNames).
			AddRow("emp-1", "company-1", "", "Ana", "AGENDADA", nil, nil, nil, now, nil, nil, "", "", "", "", "", "", int64(3), now, now))

	_, err = repo.Update(context.Background(), &employee.Employee{
		ID:                "emp-1",
		IntegrationStatus: employee.StatusScheduled,
		Version:           2,
		UpdatedAt:         now,
	})
	if !errors.Is(err, employee.ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindByID_SoftDeletedIsNotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("deleted_at IS NULL")).
		WithArgs("emp-gone").
		WillReturnRows(pgxmock.NewRows(employeeColumnNames))

	_, err = NewEmployeeRepository(mock).FindByID(context.Background(), "emp-gone")
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestScanEmployee_RejectsDerivedStatus(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...any) error {
		*(dest[4].(*string)) = "VENCIDO"
		return nil
	}}
	if _, err := scanEmployee(row); !errors.Is(err, employee.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for a derived status, got %v", err)
	}
}

func TestTranslateEmployeePgError(t *testing.T) {
	t.Parallel()

	if !errors.Is(translateEmployeePgError(&pgconn.PgError{Code: invalidTextCode}), employee.ErrEmployeeNotFound) {
		t.Fatal("expected malformed id to map to ErrEmployeeNotFound")
	}
	other := errors.New("other")
	if translateEmployeePgError(other) != other {
		t.Fatal("unexpected translation for generic error")
	}
}

type stubRow struct {
	scanFn func(dest ...any) error
}

func (s stubRow) Scan(dest ...any) error {
	return s.scanFn(dest...)
}
