package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/access"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
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
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const machineName = "integration"

// UseCase は従業員インテグレーションユースケースの公開インターフェースです。
type UseCase interface {
	GetIntegration(ctx context.Context, in GetIntegrationInput) (*Integration, error)
	ApproveIntegration(ctx context.Context, in ApproveIntegrationInput) (*Integration, error)
	ConfirmSchedule(ctx context.Context, in ConfirmScheduleInput) (*Integration, error)
	DeclineSchedule(ctx context.Context, in DeclineScheduleInput) (*Integration, error)
	ConfirmPresence(ctx context.Context, in ConfirmPresenceInput) (*Integration, error)
	IntegrationHistory(ctx context.Context, in IntegrationHistoryInput) ([]*audit.Record, error)
}

// Dependencies は Service の依存をまとめます。Clock・Tx・Recorder は省略可能です。
type Dependencies struct {
	Repo      Repository
	Documents DocumentationReader
	Settings  settings.Provider
	Journal   *audit.Journal
	Gate      *access.Gate
	Clock     Clock
	Tx        TransactionManager
	Recorder  domain.TransitionRecorder
}

// Service は従業員インテグレーションに関するユースケースをまとめます。
type Service struct {
	repo      Repository
	documents DocumentationReader
	settings  settings.Provider
	journal   *audit.Journal
	gate      *access.Gate
	clock     Clock
	tx        TransactionManager
	recorder  domain.TransitionRecorder
}

// NewService は Service を生成します。
func NewService(deps Dependencies) *Service {
	s := &Service{
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

// GetIntegrationInput はインテグレーション状態取得の入力です。
type GetIntegrationInput struct {
	Actor      access.Actor
	EmployeeID string
}

// ApproveIntegrationInput は手動承認の入力です。
type ApproveIntegrationInput struct {
	Actor       access.Actor
	EmployeeID  string
	Observation string
}

// ConfirmScheduleInput は予約確定の入力です。
type ConfirmScheduleInput struct {
	Actor                   access.Actor
	EmployeeID              string
	AsoDate                 *time.Time
	AsoValidityDays         *int
	IntegrationValidityDays *int
	Observation             string
}

// DeclineScheduleInput は予約差し戻しの入力です。Observation は必須です。
type DeclineScheduleInput struct {
	Actor       access.Actor
	EmployeeID  string
	Observation string
}

// ConfirmPresenceInput は出席確認の入力です。
type ConfirmPresenceInput struct {
	Actor       access.Actor
	EmployeeID  string
	Observation string
}

// IntegrationHistoryInput は従業員履歴取得の入力です。
type IntegrationHistoryInput struct {
	Actor      access.Actor
	EmployeeID string
}

// GetIntegration は導出状態と有効性を含むインテグレーション状態を返します。読み取りでは保存値を変更しません。
func (s *Service) GetIntegration(ctx context.Context, in GetIntegrationInput) (*Integration, error) {
	id, err := requireID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	principal, err := s.gate.Resolve(ctx, in.Actor)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var result *Integration
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		e, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return translate("get integration", err)
		}
		if principal.IsCompany() {
			if err := principal.RequireCompany(e.CompanyID); err != nil {
				return withSubject(err, e.Subject())
			}
		}
		result, err = s.view(txCtx, e, s.clock.Now(), cfg)
		return err
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// ApproveIntegration は手動承認で APROVADO にします。
func (s *Service) ApproveIntegration(ctx context.Context, in ApproveIntegrationInput) (result *Integration, err error) {
	defer func() { s.recorder.ObserveTransition(machineName, string(ActionApprove), domain.Outcome(err)) }()

	id, err := requireID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	principal, err := s.authorize(ctx, in.Actor, id, func(p *access.Principal) error {
		return p.Require(access.CapApproveIntegration)
	})
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, principal, id, strings.TrimSpace(in.Observation), func(e *Employee, now time.Time, cfg settings.Settings) (Transition, error) {
		return e.ApproveManually(now, cfg)
	})
}

// ConfirmSchedule は予約提案を確定して AGENDADA にします。
func (s *Service) ConfirmSchedule(ctx context.Context, in ConfirmScheduleInput) (result *Integration, err error) {
	defer func() { s.recorder.ObserveTransition(machineName, string(ActionConfirmSchedule), domain.Outcome(err)) }()

	id, err := requireID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if invalidDays(in.AsoValidityDays) || invalidDays(in.IntegrationValidityDays) {
		var fields []string
		if invalidDays(in.AsoValidityDays) {
			fields = append(fields, "aso_validity_days")
		}
		if invalidDays(in.IntegrationValidityDays) {
			fields = append(fields, "integration_validity_days")
		}
		return nil, domain.Validation(domain.Subject{Kind: domain.SubjectEmployee, ID: id}, "validity days must be positive", fields...)
	}
	principal, err := s.authorize(ctx, in.Actor, id, func(p *access.Principal) error {
		return p.Require(access.CapApproveIntegration)
	})
	if err != nil {
		return nil, err
	}

	confirmation := ScheduleConfirmation{
		AsoDate:                 in.AsoDate,
		AsoValidityDays:         in.AsoValidityDays,
		IntegrationValidityDays: in.IntegrationValidityDays,
	}
	return s.mutate(ctx, principal, id, strings.TrimSpace(in.Observation), func(e *Employee, now time.Time, cfg settings.Settings) (Transition, error) {
		return e.ConfirmSchedule(confirmation, now, cfg)
	})
}

// DeclineSchedule は予約提案を差し戻して PENDENTE にします。
func (s *Service) DeclineSchedule(ctx context.Context, in DeclineScheduleInput) (result *Integration, err error) {
	defer func() { s.recorder.ObserveTransition(machineName, string(ActionDeclineSchedule), domain.Outcome(err)) }()

	id, err := requireID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	observation := strings.TrimSpace(in.Observation)
	if observation == "" {
		return nil, domain.Validation(domain.Subject{Kind: domain.SubjectEmployee, ID: id}, "observation is required to decline a schedule", "observation")
	}
	principal, err := s.authorize(ctx, in.Actor, id, func(p *access.Principal) error {
		return p.Require(access.CapApproveIntegration)
	})
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, principal, id, observation, func(e *Employee, now time.Time, cfg settings.Settings) (Transition, error) {
		return e.DeclineSchedule(now, cfg)
	})
}

// ConfirmPresence は出席を確認して REALIZADA にします。REALIZADA への再確認は何もせず成功します。
func (s *Service) ConfirmPresence(ctx context.Context, in ConfirmPresenceInput) (result *Integration, err error) {
	defer func() { s.recorder.ObserveTransition(machineName, string(ActionConfirmPresence), domain.Outcome(err)) }()

	id, err := requireID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	principal, err := s.authorize(ctx, in.Actor, id, func(p *access.Principal) error {
		return p.RequireIntegrationApprover()
	})
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, principal, id, strings.TrimSpace(in.Observation), func(e *Employee, now time.Time, cfg settings.Settings) (Transition, error) {
		return e.ConfirmPresence(now, cfg)
	})
}

// IntegrationHistory は従業員の承認履歴を古い順に返します。
func (s *Service) IntegrationHistory(ctx context.Context, in IntegrationHistoryInput) ([]*audit.Record, error) {
	id, err := requireID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	principal, err := s.gate.Resolve(ctx, in.Actor)
	if err != nil {
		return nil, err
	}

	var records []*audit.Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		e, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return translate("integration history", err)
		}
		if principal.IsCompany() {
			if err := principal.RequireCompany(e.CompanyID); err != nil {
				return withSubject(err, e.Subject())
			}
		}
		records, err = s.journal.History(txCtx, audit.SubjectEmployee, e.ID)
		return err
	}); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) authorize(ctx context.Context, actor access.Actor, id string, check func(*access.Principal) error) (*access.Principal, error) {
	principal, err := s.gate.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := check(principal); err != nil {
		return nil, withSubject(err, domain.Subject{Kind: domain.SubjectEmployee, ID: id})
	}
	return principal, nil
}

type applyFunc func(e *Employee, now time.Time, cfg settings.Settings) (Transition, error)

// mutate は行ロック下で FALTOU の確定と操作の適用を行い、履歴と合わせて 1 トランザクションで保存します。
func (s *Service) mutate(ctx context.Context, principal *access.Principal, id, observation string, apply applyFunc) (*Integration, error) {
	cfg, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var (
		result  *Integration
		records []*audit.Record
	)
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		records = records[:0]

		e, err := s.repo.LockByID(txCtx, id)
		if err != nil {
			return translate("lock employee", err)
		}

		now := s.clock.Now()
		settled := e.Settle(now, cfg)
		if settled {
			rec, err := s.append(txCtx, &audit.Record{
				SubjectKind: audit.SubjectEmployee,
				SubjectID:   e.ID,
				ActorID:     principal.Actor.ID,
				ProfileName: audit.SystemProfileName,
				Event:       audit.EventAbsenceDetected,
				Status:      string(StatusAbsent),
				CreatedAt:   now,
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}

		t, err := apply(e, now, cfg)
		if err != nil {
			return withSubject(err, e.Subject())
		}
		if t.Noop && !settled {
			result, err = s.view(txCtx, e, now, cfg)
			return err
		}

		e.UpdatedAt = now
		saved, err := s.repo.Update(txCtx, e)
		if err != nil {
			return translate("update employee", err)
		}

		if !t.Noop {
			rec, err := s.append(txCtx, &audit.Record{
				SubjectKind: audit.SubjectEmployee,
				SubjectID:   saved.ID,
				ActorID:     principal.Actor.ID,
				ProfileName: principal.AuditName(),
				Event:       t.Event,
				Status:      string(t.To),
				Observation: observation,
				CreatedAt:   now,
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}

		result, err = s.view(txCtx, saved, now, cfg)
		return err
	}); err != nil {
		return nil, err
	}

	s.journal.Publish(ctx, records)
	return result, nil
}

func (s *Service) append(ctx context.Context, rec *audit.Record) (*audit.Record, error) {
	if err := s.journal.Append(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) view(ctx context.Context, e *Employee, now time.Time, cfg settings.Settings) (*Integration, error) {
	effective := e.Effective(now, cfg)
	out := &Integration{
		Employee:   e,
		Status:     effective,
		Assessment: e.Assess(now, cfg),
	}
	if s.documents != nil {
		docs, err := s.documents.EmployeeDocumentation(ctx, e.ID, e.ContractID)
		if err != nil {
			return nil, err
		}
		out.Documentation = docs
	}
	out.Label = Label(effective, out.Documentation)
	return out, nil
}

func requireID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", domain.Validation(domain.Subject{Kind: domain.SubjectEmployee}, "employee id is required", "employee_id")
	}
	return id, nil
}

func invalidDays(v *int) bool {
	return v != nil && *v <= 0
}

func withSubject(err error, subject domain.Subject) error {
	var de *domain.Error
	if errors.As(err, &de) && de.Subject == (domain.Subject{}) {
		de.Subject = subject
	}
	return err
}

func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrEmployeeNotFound):
		return domain.WrapError(domain.ErrNotFound, op, err)
	case errors.Is(err, ErrVersionMismatch):
		return domain.WrapError(domain.ErrConflict, op, err)
	default:
		return err
	}
}
