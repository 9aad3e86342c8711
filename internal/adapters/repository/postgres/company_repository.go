package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/document"
	pgdb "github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/db/postgres"
)

// CompanyRepository は書類の所有者(協力会社と契約)を解決します。
type CompanyRepository struct {
	pool pgdb.Queryer
}

// NewCompanyRepository は CompanyRepository を生成します。
func NewCompanyRepository(pool pgdb.Queryer) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// EmployeeOwner は従業員が所属する協力会社と契約を返します。論理削除済みの従業員は見つかりません。
func (r *CompanyRepository) EmployeeOwner(ctx context.Context, employeeID string) (*document.Owner, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT company_id, COALESCE(contract_id::text, '')
          FROM employees
         WHERE id = $1 AND deleted_at IS NULL
    `, employeeID)
	return scanOwner(row)
}

// ContractOwner は契約を保有する協力会社を返します。
func (r *CompanyRepository) ContractOwner(ctx context.Context, contractID string) (*document.Owner, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT company_id, id
          FROM contracts
         WHERE id = $1
    `, contractID)
	return scanOwner(row)
}

func scanOwner(row pgx.Row) (*document.Owner, error) {
	var owner document.Owner
	if err := row.Scan(&owner.CompanyID, &owner.ContractID); err != nil {
		return nil, translateOwnerPgError(err)
	}
	return &owner, nil
}

func translateOwnerPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return document.ErrOwnerNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextCode {
		return document.ErrOwnerNotFound
	}
	return err
}
