package employee

import (
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/document"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/settings"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/validity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestNext_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from    IntegrationStatus
		action  Action
		want    IntegrationStatus
		noop    bool
		wantErr bool
	}{
		{from: StatusPending, action: ActionSchedule, want: StatusAwaitingApproval},
		{from: StatusApproved, action: ActionSchedule, want: StatusAwaitingApproval},
		{from: StatusAbsent, action: ActionSchedule, want: StatusAwaitingApproval},
		{from: StatusExpired, action: ActionSchedule, want: StatusAwaitingApproval},
		{from: StatusScheduled, action: ActionSchedule, wantErr: true},
		{from: StatusCompleted, action: ActionSchedule, wantErr: true},
		{from: StatusPending, action: ActionApprove, want: StatusApproved},
		{from: StatusAbsent, action: ActionApprove, want: StatusApproved},
		{from: StatusExpired, action: ActionApprove, want: StatusApproved},
		{from: StatusApproved, action: ActionApprove, wantErr: true},
		{from: StatusAwaitingApproval, action: ActionConfirmSchedule, want: StatusScheduled},
		{from: StatusPending, action: ActionConfirmSchedule, wantErr: true},
		{from: StatusAwaitingApproval, action: ActionDeclineSchedule, want: StatusPending},
		{from: StatusScheduled, action: ActionDeclineSchedule, wantErr: true},
		{from: StatusScheduled, action: ActionConfirmPresence, want: StatusCompleted},
		{from: StatusAbsent, action: ActionConfirmPresence, want: StatusCompleted},
		{from: StatusCompleted, action: ActionConfirmPresence, want: StatusCompleted, noop: true},
		{from: StatusAwaitingApproval, action: ActionConfirmPresence, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			t.Parallel()

			got, err := Next(tt.from, tt.action)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.To != tt.want || got.Noop != tt.noop {
				t.Fatalf("expected %s (noop=%v), got %s (noop=%v)", tt.want, tt.noop, got.To, got.Noop)
			}
		})
	}
}

func TestEmployee_LapsedScheduleIsAbsentUntilConfirmed(t *testing.T) {
	t.Parallel()

	cfg := settings.Default()
	scheduled := day(2024, 3, 5)
	e := &Employee{ID: "emp-1", IntegrationStatus: StatusScheduled, IntegrationDate: timePtr(scheduled)}

	if got := e.Effective(scheduled.AddDate(0, 0, 5), cfg); got != StatusScheduled {
		t.Fatalf("at T+5 expected AGENDADA, got %s", got)
	}
	if got := e.Effective(scheduled.AddDate(0, 0, 6), cfg); got != StatusAbsent {
		t.Fatalf("at T+6 expected FALTOU, got %s", got)
	}
	if e.IntegrationStatus != StatusScheduled {
		t.Fatalf("reading must not mutate the stored status")
	}

	tr, err := e.ConfirmPresence(scheduled.AddDate(0, 0, 7), cfg)
	if err != nil {
		t.Fatalf("late ConfirmPresence returned error: %v", err)
	}
	if tr.From != StatusAbsent || e.IntegrationStatus != StatusCompleted {
		t.Fatalf("expected FALTOU -> REALIZADA, got %s -> %s", tr.From, e.IntegrationStatus)
	}
	if !e.IntegrationDate.Equal(scheduled) {
		t.Fatalf("integration date must keep the scheduled date, got %v", e.IntegrationDate)
	}
	if e.IntegrationExpiresAt == nil {
		t.Fatalf("expected integration expiry to be computed")
	}
}

func TestEmployee_Settle(t *testing.T) {
	t.Parallel()

	cfg := settings.Default()
	scheduled := day(2024, 3, 5)
	e := &Employee{IntegrationStatus: StatusScheduled, IntegrationDate: timePtr(scheduled)}

	if e.Settle(scheduled.AddDate(0, 0, 2), cfg) {
		t.Fatalf("settle within window must be a no-op")
	}
	if !e.Settle(scheduled.AddDate(0, 0, 6), cfg) || e.IntegrationStatus != StatusAbsent {
		t.Fatalf("expected write-back to FALTOU, got %s", e.IntegrationStatus)
	}
	if e.Settle(scheduled.AddDate(0, 0, 9), cfg) {
		t.Fatalf("settle must be idempotent")
	}
}

func TestEmployee_ExpiredCompletedIntegrationIsDerivedAsExpired(t *testing.T) {
	t.Parallel()

	cfg := settings.Default()
	e := &Employee{
		IntegrationStatus: StatusCompleted,
		AsoDate:           timePtr(day(2024, 1, 1)),
		IntegrationDate:   timePtr(day(2024, 6, 1)),
	}

	if got := e.Effective(day(2025, 1, 2), cfg); got != StatusExpired {
		t.Fatalf("expected VENCIDO, got %s", got)
	}
	if got := e.Assess(day(2024, 12, 31), cfg); got.Status != validity.StatusValid {
		t.Fatalf("expected VALIDO on the expiry day, got %s", got.Status)
	}

	if _, err := e.ApproveManually(day(2025, 1, 2), cfg); err != nil {
		t.Fatalf("ApproveManually from VENCIDO returned error: %v", err)
	}
	if e.IntegrationStatus != StatusApproved {
		t.Fatalf("expected APROVADO, got %s", e.IntegrationStatus)
	}
}

func TestEmployee_ConfirmScheduleFreezesValidityDays(t *testing.T) {
	t.Parallel()

	cfg := settings.Default()
	cfg.AsoValidityDays = 180
	e := &Employee{
		IntegrationStatus: StatusAwaitingApproval,
		IntegrationDate:   timePtr(day(2024, 3, 5)),
		AsoDate:           timePtr(day(2024, 2, 1)),
	}
	integrationDays := 730

	if _, err := e.ConfirmSchedule(ScheduleConfirmation{IntegrationValidityDays: &integrationDays}, day(2024, 3, 1), cfg); err != nil {
		t.Fatalf("ConfirmSchedule returned error: %v", err)
	}
	if e.IntegrationStatus != StatusScheduled {
		t.Fatalf("expected AGENDADA, got %s", e.IntegrationStatus)
	}
	if *e.AsoValidityDays != 180 || *e.IntegrationValidityDays != 730 {
		t.Fatalf("unexpected frozen days %d/%d", *e.AsoValidityDays, *e.IntegrationValidityDays)
	}
	want := time.Date(2024, 7, 30, 0, 0, 0, 0, time.UTC)
	if e.AsoExpiresAt == nil || !e.AsoExpiresAt.Equal(want) {
		t.Fatalf("expected aso expiry %v, got %v", want, e.AsoExpiresAt)
	}
	if e.IntegrationExpiresAt != nil {
		t.Fatalf("a tentative date must not produce an integration expiry")
	}
}

func TestEmployee_DeclineClearsTentativeDate(t *testing.T) {
	t.Parallel()

	e := &Employee{IntegrationStatus: StatusAwaitingApproval, IntegrationDate: timePtr(day(2024, 3, 5))}
	if _, err := e.DeclineSchedule(day(2024, 3, 1), settings.Default()); err != nil {
		t.Fatalf("DeclineSchedule returned error: %v", err)
	}
	if e.IntegrationStatus != StatusPending || e.IntegrationDate != nil {
		t.Fatalf("unexpected state after decline: %s %v", e.IntegrationStatus, e.IntegrationDate)
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	pending := &document.Documentation{Status: document.DocumentationPending}
	complete := &document.Documentation{Status: document.DocumentationComplete}

	if got := Label(StatusApproved, pending); got != ApprovedWithPendingDocsLabel {
		t.Fatalf("expected compound label, got %q", got)
	}
	if got := Label(StatusApproved, complete); got != string(StatusApproved) {
		t.Fatalf("expected APROVADO, got %q", got)
	}
	if got := Label(StatusPending, pending); got != string(StatusPending) {
		t.Fatalf("expected PENDENTE, got %q", got)
	}
}

func TestParseIntegrationStatus(t *testing.T) {
	t.Parallel()

	if got, err := ParseIntegrationStatus("agendada"); err != nil || got != StatusScheduled {
		t.Fatalf("expected AGENDADA, got %s (%v)", got, err)
	}
	if _, err := ParseIntegrationStatus("VENCIDO"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("VENCIDO is never stored, got %v", err)
	}
}
