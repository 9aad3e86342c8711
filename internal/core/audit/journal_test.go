package audit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memoryRepo struct {
	records []*Record
	err     error
}

func (m *memoryRepo) Append(_ context.Context, rec *Record) error {
	if m.err != nil {
		return m.err
	}
	clone := *rec
	m.records = append(m.records, &clone)
	return nil
}

func (m *memoryRepo) ListBySubject(_ context.Context, kind SubjectKind, id string) ([]*Record, error) {
	var out []*Record
	for _, r := range m.records {
		if r.SubjectKind == kind && r.SubjectID == id {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	batches [][]*Record
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, records []*Record) error {
	p.batches = append(p.batches, records)
	return p.err
}

func TestJournal_AppendAssignsID(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	j := NewJournal(repo, WithIDGenerator(func() string { return "rec-1" }))

	rec := &Record{SubjectKind: SubjectAttachment, SubjectID: "doc-1", Event: EventSubmit, Status: "AGUARDANDO"}
	if err := j.Append(context.Background(), rec); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if rec.ID != "rec-1" || len(repo.records) != 1 || repo.records[0].ID != "rec-1" {
		t.Fatalf("expected generated id to be stored, got %+v", repo.records)
	}
}

func TestJournal_AppendRejectsMissingSubject(t *testing.T) {
	t.Parallel()

	j := NewJournal(&memoryRepo{})
	if err := j.Append(context.Background(), &Record{SubjectKind: SubjectEmployee}); !errors.Is(err, ErrInvalidSubject) {
		t.Fatalf("expected ErrInvalidSubject, got %v", err)
	}
}

func TestJournal_HistoryIsOrderedOldestFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &memoryRepo{records: []*Record{
		{ID: "b", SubjectKind: SubjectEmployee, SubjectID: "emp-1", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "a", SubjectKind: SubjectEmployee, SubjectID: "emp-1", CreatedAt: base},
		{ID: "x", SubjectKind: SubjectEmployee, SubjectID: "emp-2", CreatedAt: base},
	}}
	j := NewJournal(repo)

	history, err := j.History(context.Background(), SubjectEmployee, "emp-1")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 2 || history[0].ID != "a" || history[1].ID != "b" {
		t.Fatalf("unexpected history order: %+v", history)
	}
}

func TestJournal_PublishFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{err: errors.New("nats down")}
	j := NewJournal(&memoryRepo{}, WithPublisher(pub))

	j.Publish(context.Background(), []*Record{{ID: "r"}})
	j.Publish(context.Background(), nil)

	if len(pub.batches) != 1 {
		t.Fatalf("expected a single publish call, got %d", len(pub.batches))
	}
}
