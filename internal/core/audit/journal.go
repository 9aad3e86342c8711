package audit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrInvalidSubject = errors.New("audit: invalid subject")

// Journal は遷移と同じトランザクションで履歴を追記し、コミット後に配信します。
type Journal struct {
	repo      Repository
	publisher Publisher
	logger    zerolog.Logger
	newID     func() string
}

// Option は Journal の構成オプションです。
type Option func(*Journal)

// WithPublisher はコミット後の配信先を設定します。
func WithPublisher(p Publisher) Option {
	return func(j *Journal) { j.publisher = p }
}

// WithLogger はロガーを設定します。
func WithLogger(l zerolog.Logger) Option {
	return func(j *Journal) { j.logger = l }
}

// WithIDGenerator は ID 生成関数を差し替えます。
func WithIDGenerator(fn func() string) Option {
	return func(j *Journal) { j.newID = fn }
}

// NewJournal は Journal を生成します。
func NewJournal(repo Repository, opts ...Option) *Journal {
	j := &Journal{repo: repo, logger: zerolog.Nop(), newID: uuid.NewString}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Append は ID を採番して履歴を追記します。
func (j *Journal) Append(ctx context.Context, rec *Record) error {
	if rec == nil || rec.SubjectKind == "" || strings.TrimSpace(rec.SubjectID) == "" {
		return ErrInvalidSubject
	}
	if rec.ID == "" {
		rec.ID = j.newID()
	}
	if err := j.repo.Append(ctx, rec); err != nil {
		return fmt.Errorf("audit: append %s %s: %w", rec.SubjectKind, rec.SubjectID, err)
	}
	return nil
}

// Publish はコミット済みの履歴を配信します。失敗はログに残すのみで遷移は失敗させません。
func (j *Journal) Publish(ctx context.Context, records []*Record) {
	if j.publisher == nil || len(records) == 0 {
		return
	}
	if err := j.publisher.Publish(ctx, records); err != nil {
		j.logger.Warn().Err(err).Int("records", len(records)).Msg("audit publish failed")
	}
}

// History は対象の履歴を古い順に返します。
func (j *Journal) History(ctx context.Context, kind SubjectKind, subjectID string) ([]*Record, error) {
	subjectID = strings.TrimSpace(subjectID)
	if kind == "" || subjectID == "" {
		return nil, ErrInvalidSubject
	}
	records, err := j.repo.ListBySubject(ctx, kind, subjectID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(a, b int) bool {
		return records[a].CreatedAt.Before(records[b].CreatedAt)
	})
	return records, nil
}
