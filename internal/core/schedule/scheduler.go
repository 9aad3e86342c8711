// Package schedule は複数従業員のインテグレーション予約を一括で受け付けます。
package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/access"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/settings"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は一括予約の公開インターフェースです。
type UseCase interface {
	Schedule(ctx context.Context, req Request) (*Result, error)
}

// Request は一括予約の要求です。永続化はされません。
type Request struct {
	Actor         access.Actor
	EmployeeIDs   []string
	ScheduledAt   time.Time
	ContractID    string
	Assignment    employee.Assignment
	AsoDate       *time.Time
	Justification string
}

// Result は受け付けられた従業員と追記された履歴です。
type Result struct {
	Employees []*employee.Employee
	Records   []*audit.Record
}

// Dependencies は Scheduler の依存をまとめます。Clock・Tx・Recorder は省略可能です。
type Dependencies struct {
	Repo      employee.Repository
	Documents employee.DocumentationReader
	Settings  settings.Provider
	Journal   *audit.Journal
	Gate      *access.Gate
	Clock     Clock
	Tx        TransactionManager
	Recorder  domain.TransitionRecorder
}

// Scheduler は一括予約を全件受理か全件拒否で適用します。
type Scheduler struct {
	repo      employee.Repository
	documents employee.DocumentationReader
	settings  settings.Provider
	journal   *audit.Journal
	gate      *access.Gate
	clock     Clock
	tx        TransactionManager
	recorder  domain.TransitionRecorder
}

// NewScheduler は Scheduler を生成します。
func NewScheduler(deps Dependencies) *Scheduler {
	s := &Scheduler{
		repo:      deps.Repo,
		documents: deps.Documents,
		settings:  deps.Settings,
		journal:   deps.Journal,
		gate:      deps.Gate,
		clock:     deps.Clock,
		tx:        deps.Tx,
		recorder:  deps.Recorder,
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.tx == nil {
		s.tx = noopTransactionManager{}
	}
	if s.recorder == nil {
		s.recorder = domain.NopRecorder{}
	}
	return s
}

// Schedule は入力検証・曜日ルール・権限・適格性の順に評価し、全員を AGUARDANDO_APROVACAO にします。
// いずれかの従業員が不適格な場合は誰も変更しません。
func (s *Scheduler) Schedule(ctx context.Context, req Request) (result *Result, err error) {
	ids := normalizeIDs(req.EmployeeIDs)
	defer func() { s.recorder.ObserveBatch(len(ids), domain.Outcome(err)) }()

	if err := validateMetadata(req, ids); err != nil {
		return nil, err
	}

	cfg, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.AllowsWeekday(req.ScheduledAt) && strings.TrimSpace(req.Justification) == "" {
		weekday := settings.WeekdayCode(req.ScheduledAt.In(cfg.Loc()).Weekday())
		return nil, domain.Validation(domain.Subject{},
			fmt.Sprintf("%s is not a scheduling weekday (%s); a justification is required", weekday, cfg.WeekdayCodes()),
			"justification")
	}

	principal, err := s.gate.Resolve(ctx, req.Actor)
	if err != nil {
		return nil, err
	}
	if !principal.IsCompany() {
		if err := principal.Require(access.CapEditEmployees); err != nil {
			return nil, err
		}
	}

	proposal := employee.Proposal{
		ScheduledAt:   req.ScheduledAt,
		ContractID:    strings.TrimSpace(req.ContractID),
		Assignment:    trimAssignment(req.Assignment),
		AsoDate:       *req.AsoDate,
		Justification: req.Justification,
	}

	out := &Result{}
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		out.Employees, out.Records = nil, nil

		locked, err := s.repo.LockMany(txCtx, ids)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		admitted, err := s.admit(txCtx, principal, ids, locked, now, cfg)
		if err != nil {
			return err
		}

		for _, e := range admitted {
			if e.Settle(now, cfg) {
				rec := &audit.Record{
					SubjectKind: audit.SubjectEmployee,
					SubjectID:   e.ID,
					ActorID:     principal.Actor.ID,
					ProfileName: audit.SystemProfileName,
					Event:       audit.EventAbsenceDetected,
					Status:      string(employee.StatusAbsent),
					CreatedAt:   now,
				}
				if err := s.journal.Append(txCtx, rec); err != nil {
					return err
				}
				out.Records = append(out.Records, rec)
			}

			t, err := e.ProposeSchedule(proposal, now, cfg)
			if err != nil {
				return withSubject(err, e.Subject())
			}
			e.UpdatedAt = now
			saved, err := s.repo.Update(txCtx, e)
			if err != nil {
				if errors.Is(err, employee.ErrVersionMismatch) {
					return domain.WrapError(domain.ErrConflict, "schedule "+e.ID, err)
				}
				return err
			}

			rec := &audit.Record{
				SubjectKind: audit.SubjectEmployee,
				SubjectID:   saved.ID,
				ActorID:     principal.Actor.ID,
				ProfileName: principal.AuditName(),
				Event:       t.Event,
				Status:      string(t.To),
				Observation: req.Justification,
				CreatedAt:   now,
			}
			if err := s.journal.Append(txCtx, rec); err != nil {
				return err
			}
			out.Employees = append(out.Employees, saved)
			out.Records = append(out.Records, rec)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.journal.Publish(ctx, out.Records)
	return out, nil
}

// admit は要求順に全従業員の適格性を評価し、不適格者がいればまとめて返します。
func (s *Scheduler) admit(ctx context.Context, principal *access.Principal, ids []string, locked []*employee.Employee, now time.Time, cfg settings.Settings) ([]*employee.Employee, error) {
	byID := make(map[string]*employee.Employee, len(locked))
	for _, e := range locked {
		byID[e.ID] = e
	}

	admitted := make([]*employee.Employee, 0, len(ids))
	var failures []*domain.Error
	for _, id := range ids {
		subject := domain.Subject{Kind: domain.SubjectEmployee, ID: id}
		e, ok := byID[id]
		if !ok {
			failures = append(failures, domain.NewError(domain.ErrIneligibleState, subject, "employee not found"))
			continue
		}
		if principal.IsCompany() && e.CompanyID != principal.Profile.CompanyID {
			failures = append(failures, domain.NewError(domain.ErrIneligibleState, subject, "employee belongs to another company"))
			continue
		}
		effective := e.Effective(now, cfg)
		if !employee.Schedulable(effective) {
			failures = append(failures, domain.NewError(domain.ErrIneligibleState, subject, fmt.Sprintf("integration status %s cannot be scheduled", effective)))
			continue
		}
		if e.IntegrationStatus != employee.StatusApproved && s.documents != nil {
			docs, err := s.documents.EmployeeDocumentation(ctx, e.ID, e.ContractID)
			if err != nil {
				return nil, err
			}
			if !docs.IsComplete() {
				failures = append(failures, domain.NewError(domain.ErrIneligibleState, subject, fmt.Sprintf("documentation is %s", docs.Status)))
				continue
			}
		}
		admitted = append(admitted, e)
	}

	if len(failures) > 0 {
		return nil, &domain.BatchError{Kind: domain.ErrIneligibleState, Failures: failures}
	}
	return admitted, nil
}

func validateMetadata(req Request, ids []string) error {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(ids) == 0 {
		missing = append(missing, "employee_ids")
	}
	if req.ScheduledAt.IsZero() {
		missing = append(missing, "scheduled_at")
	}
	check("contract_id", req.ContractID)
	check("function", req.Assignment.Function)
	check("role", req.Assignment.Role)
	check("sector", req.Assignment.Sector)
	check("integration_unit", req.Assignment.IntegrationUnit)
	check("activity_unit", req.Assignment.ActivityUnit)
	if req.AsoDate == nil || req.AsoDate.IsZero() {
		missing = append(missing, "aso_date")
	}

	if len(missing) > 0 {
		return domain.Validation(domain.Subject{}, "missing scheduling metadata: "+strings.Join(missing, ", "), missing...)
	}
	return nil
}

func normalizeIDs(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func trimAssignment(a employee.Assignment) employee.Assignment {
	return employee.Assignment{
		Function:        strings.TrimSpace(a.Function),
		Role:            strings.TrimSpace(a.Role),
		Sector:          strings.TrimSpace(a.Sector),
		IntegrationUnit: strings.TrimSpace(a.IntegrationUnit),
		ActivityUnit:    strings.TrimSpace(a.ActivityUnit),
	}
}

func withSubject(err error, subject domain.Subject) error {
	var de *domain.Error
	if errors.As(err, &de) && de.Subject == (domain.Subject{}) {
		de.Subject = subject
	}
	return err
}
