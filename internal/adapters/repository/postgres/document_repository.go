package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/document"
	pgdb "github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	invalidTextCode         = "22P02"
)

const documentColumns = `id, class, owner_id, company_id, doc_type, competence, status, file_ref, file_hash,
               submitted_at, observation, version, created_at, updated_at`

// DocumentRepository は PostgreSQL を利用した書類永続化の実装です。
type DocumentRepository struct {
	pool pgdb.Queryer
}

// NewDocumentRepository は DocumentRepository を生成します。
func NewDocumentRepository(pool pgdb.Queryer) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Create は書類を新規作成します。自然キーが重複した場合は ErrDocumentKeyExists を返します。
func (r *DocumentRepository) Create(ctx context.Context, d *document.Document) (*document.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO documents (class, owner_id, company_id, doc_type, competence, status, file_ref, file_hash,
                               submitted_at, observation, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, $12)
        RETURNING `+documentColumns,
		string(d.Class),
		d.OwnerID,
		d.CompanyID,
		d.Type,
		d.Competence,
		string(d.Status),
		d.FileRef,
		d.FileHash,
		d.SubmittedAt,
		d.Observation,
		d.CreatedAt,
		d.UpdatedAt,
	)

	created, err := scanDocument(row)
	if err != nil {
		return nil, translateDocumentPgError(err)
	}
	return created, nil
}

// Update は version が一致する場合のみ書類を更新します。
func (r *DocumentRepository) Update(ctx context.Context, d *document.Document) (*document.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE documents
           SET status = $1,
               file_ref = $2,
               file_hash = $3,
               submitted_at = $4,
               observation = $5,
               version = version + 1,
               updated_at = $6
         WHERE id = $7 AND version = $8
        RETURNING `+documentColumns,
		string(d.Status),
		d.FileRef,
		d.FileHash,
		d.SubmittedAt,
		d.Observation,
		d.UpdatedAt,
		d.ID,
		d.Version,
	)

	updated, err := scanDocument(row)
	if errors.Is(err, document.ErrDocumentNotFound) {
		// 行が存在するならバージョン不一致
		if _, findErr := r.FindByID(ctx, d.ID); findErr == nil {
			return nil, document.ErrVersionMismatch
		}
		return nil, document.ErrDocumentNotFound
	}
	if err != nil {
		return nil, translateDocumentPgError(err)
	}
	return updated, nil
}

// FindByID は ID で書類を取得します。
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*document.Document, error) {
	return r.findOne(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// LockByID は行ロックを取得して書類を返します。
func (r *DocumentRepository) LockByID(ctx context.Context, id string) (*document.Document, error) {
	return r.findOne(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

// FindByKey は自然キーで書類を行ロック付きで取得します。
func (r *DocumentRepository) FindByKey(ctx context.Context, key document.Key) (*document.Document, error) {
	return r.findOne(ctx, `
        SELECT `+documentColumns+`
          FROM documents
         WHERE class = $1 AND owner_id = $2 AND doc_type = $3 AND competence = $4
         FOR UPDATE`,
		string(key.Class), key.OwnerID, key.Type, key.Competence,
	)
}

// ListByEmployee は従業員書類を更新日時の新しい順に返します。
func (r *DocumentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*document.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+documentColumns+`
          FROM documents
         WHERE class = $1 AND owner_id = $2
         ORDER BY updated_at DESC, id DESC`,
		string(document.ClassAttachment), employeeID,
	)
	if err != nil {
		return nil, translateDocumentPgError(err)
	}
	defer rows.Close()

	docs := make([]*document.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, translateDocumentPgError(err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, translateDocumentPgError(err)
	}
	return docs, nil
}

func (r *DocumentRepository) findOne(ctx context.Context, query string, args ...any) (*document.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanDocument(exec.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateDocumentPgError(err)
	}
	return found, nil
}

func scanDocument(row pgx.Row) (*document.Document, error) {
	var (
		d           document.Document
		class       string
		status      string
		submittedAt time.Time
	)
	if err := row.Scan(
		&d.ID,
		&class,
		&d.OwnerID,
		&d.CompanyID,
		&d.Type,
		&d.Competence,
		&status,
		&d.FileRef,
		&d.FileHash,
		&submittedAt,
		&d.Observation,
		&d.Version,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrDocumentNotFound
		}
		return nil, err
	}

	parsed, err := document.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	d.Class = document.Class(class)
	d.Status = parsed
	d.SubmittedAt = submittedAt.UTC()
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return &d, nil
}

func translateDocumentPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return document.ErrDocumentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return document.ErrDocumentKeyExists
		case foreignKeyViolationCode:
			return document.ErrOwnerNotFound
		case invalidTextCode:
			// uuid として解釈できない ID は存在しない書類と同じ扱い
			return document.ErrDocumentNotFound
		}
	}
	return err
}
