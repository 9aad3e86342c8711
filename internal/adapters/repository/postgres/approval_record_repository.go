package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	pgdb "github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/db/postgres"
)

// ApprovalRecordRepository は追記専用の承認履歴を保存します。
type ApprovalRecordRepository struct {
	pool pgdb.Queryer
}

// NewApprovalRecordRepository は ApprovalRecordRepository を生成します。
func NewApprovalRecordRepository(pool pgdb.Queryer) *ApprovalRecordRepository {
	return &ApprovalRecordRepository{pool: pool}
}

// Append は履歴を 1 件追記します。遷移と同じトランザクションで呼ばれる前提です。
func (r *ApprovalRecordRepository) Append(ctx context.Context, rec *audit.Record) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO approval_records (id, subject_kind, subject_id, actor_id, profile_name, event, status, observation, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `,
		rec.ID,
		string(rec.SubjectKind),
		rec.SubjectID,
		rec.ActorID,
		rec.ProfileName,
		string(rec.Event),
		rec.Status,
		rec.Observation,
		rec.CreatedAt,
	)
	return err
}

// ListBySubject は対象の履歴を追記順(seq)に返します。同時刻の記録も追記順を保ちます。
func (r *ApprovalRecordRepository) ListBySubject(ctx context.Context, kind audit.SubjectKind, subjectID string) ([]*audit.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, subject_kind, subject_id, actor_id, profile_name, event, status, observation, created_at
          FROM approval_records
         WHERE subject_kind = $1 AND subject_id = $2
         ORDER BY seq
    `, string(kind), subjectID)
	if err != nil {
		return nil, translateRecordPgError(err)
	}
	defer rows.Close()

	records := make([]*audit.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, translateRecordPgError(err)
	}
	return records, nil
}

func scanRecord(row pgx.Row) (*audit.Record, error) {
	var (
		rec   audit.Record
		kind  string
		event string
	)
	if err := row.Scan(
		&rec.ID,
		&kind,
		&rec.SubjectID,
		&rec.ActorID,
		&rec.ProfileName,
		&event,
		&rec.Status,
		&rec.Observation,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	rec.SubjectKind = audit.SubjectKind(kind)
	rec.Event = audit.Event(event)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

func translateRecordPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextCode {
		return audit.ErrInvalidSubject
	}
	return err
}
