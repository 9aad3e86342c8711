package postgres

import (
	"context"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/catalog"
	pgdb "github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/db/postgres"
)

// CatalogRepository は必須書類カタログを読み取ります。
type CatalogRepository struct {
	pool pgdb.Queryer
}

// NewCatalogRepository は CatalogRepository を生成します。
func NewCatalogRepository(pool pgdb.Queryer) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListRequired は全契約共通の書類と contractID 固有の書類を返します。contractID が空なら共通書類のみです。
func (r *CatalogRepository) ListRequired(ctx context.Context, contractID string) ([]*catalog.RequiredDocument, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name, COALESCE(contract_id::text, ''), position
          FROM required_documents
         WHERE contract_id IS NULL OR contract_id::text = $1
         ORDER BY position, name
    `, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*catalog.RequiredDocument, 0)
	for rows.Next() {
		var d catalog.RequiredDocument
		if err := rows.Scan(&d.ID, &d.Name, &d.ContractID, &d.Position); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
