package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/resilience"
	"github.com/rs/zerolog"
)

type message struct {
	subject string
	data    []byte
}

type fakeConn struct {
	failures []error
	sent     []message
	closed   bool
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if len(c.failures) > 0 {
		err := c.failures[0]
		c.failures = c.failures[1:]
		return err
	}
	c.sent = append(c.sent, message{subject: subject, data: data})
	return nil
}

func (c *fakeConn) FlushTimeout(time.Duration) error { return nil }

func (c *fakeConn) Close() { c.closed = true }

type countingObserver struct {
	ok, failed int
}

func (o *countingObserver) ObservePublish(records int, err error) {
	if err != nil {
		o.failed += records
		return
	}
	o.ok += records
}

func sampleRecords() []*audit.Record {
	at := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	return []*audit.Record{
		{ID: "rec-1", SubjectKind: audit.SubjectEmployee, SubjectID: "emp-1", ActorID: "company-1", ProfileName: "PRESTADORA",
			Event: audit.EventSchedule, Status: "AGUARDANDO_APROVACAO", Observation: "turno extra", CreatedAt: at},
		{ID: "rec-2", SubjectKind: audit.SubjectAttachment, SubjectID: "doc-1", ActorID: "user-1", ProfileName: "SESMT",
			Event: audit.EventApprove, Status: "APROVADO", CreatedAt: at},
	}
}

func TestPublisher_PublishesJSONPerSubjectKind(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	observer := &countingObserver{}
	p := NewPublisher(conn, "compliance.approvals", Options{Observer: observer, Logger: zerolog.Nop()})

	if err := p.Publish(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if len(conn.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(conn.sent))
	}
	if conn.sent[0].subject != "compliance.approvals.funcionario" || conn.sent[1].subject != "compliance.approvals.anexo" {
		t.Fatalf("unexpected subjects %q %q", conn.sent[0].subject, conn.sent[1].subject)
	}

	var evt Event
	if err := json.Unmarshal(conn.sent[0].data, &evt); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if evt.Event != "schedule" || evt.Observation != "turno extra" || evt.ProfileName != "PRESTADORA" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if observer.ok != 2 || observer.failed != 0 {
		t.Fatalf("unexpected observer counts %+v", observer)
	}
}

func TestPublisher_RetriesTransientErrors(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{failures: []error{nats.ErrTimeout}}
	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
	}, zerolog.Nop())
	p := NewPublisher(conn, "compliance.approvals", Options{Executor: exec, Logger: zerolog.Nop()})

	if err := p.Publish(context.Background(), sampleRecords()[:1]); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if len(conn.sent) != 1 {
		t.Fatalf("expected the retried message to be sent, got %d", len(conn.sent))
	}
}

func TestPublisher_StopsOnPermanentError(t *testing.T) {
	t.Parallel()

	errBad := errors.New("nats: invalid subject")
	conn := &fakeConn{failures: []error{errBad}}
	observer := &countingObserver{}
	exec := resilience.NewExecutor(resilience.Config{RetryMaxAttempts: 3, RetryInitialBackoff: time.Millisecond}, zerolog.Nop())
	p := NewPublisher(conn, "compliance.approvals", Options{Executor: exec, Observer: observer, Logger: zerolog.Nop()})

	err := p.Publish(context.Background(), sampleRecords())
	if !errors.Is(err, errBad) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if len(conn.sent) != 0 {
		t.Fatalf("expected nothing sent, got %d", len(conn.sent))
	}
	if observer.failed != 2 {
		t.Fatalf("expected 2 failed records, got %d", observer.failed)
	}
}

func TestPublisher_Close(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	NewPublisher(conn, "s", Options{Logger: zerolog.Nop()}).Close()
	if !conn.closed {
		t.Fatal("expected connection to be closed")
	}
}
