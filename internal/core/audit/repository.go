package audit

import "context"

// Repository は承認履歴の永続化の抽象です。更新・削除は提供しません。
type Repository interface {
	Append(ctx context.Context, record *Record) error
	ListBySubject(ctx context.Context, kind SubjectKind, subjectID string) ([]*Record, error)
}

// Publisher はコミット済みの履歴を外部へ配信します。
type Publisher interface {
	Publish(ctx context.Context, records []*Record) error
}
