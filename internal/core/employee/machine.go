package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/settings"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/validity"
)

// Action はインテグレーションに対する操作です。
type Action string

const (
	ActionSchedule        Action = "schedule"
	ActionApprove         Action = "manual_approve"
	ActionConfirmSchedule Action = "confirm_schedule"
	ActionDeclineSchedule Action = "decline_schedule"
	ActionConfirmPresence Action = "confirm_presence"
)

// Transition は遷移結果です。Noop の場合は保存も記録も行いません。
type Transition struct {
	From  IntegrationStatus
	To    IntegrationStatus
	Event audit.Event
	Noop  bool
}

// Next は導出状態 effective に action を適用した結果を返します。
func Next(effective IntegrationStatus, action Action) (Transition, error) {
	t := Transition{From: effective}
	switch action {
	case ActionSchedule:
		if Schedulable(effective) {
			t.To, t.Event = StatusAwaitingApproval, audit.EventSchedule
			return t, nil
		}
	case ActionApprove:
		switch effective {
		case StatusPending, StatusAbsent, StatusExpired:
			t.To, t.Event = StatusApproved, audit.EventManualApprove
			return t, nil
		}
	case ActionConfirmSchedule:
		if effective == StatusAwaitingApproval {
			t.To, t.Event = StatusScheduled, audit.EventConfirmSchedule
			return t, nil
		}
	case ActionDeclineSchedule:
		if effective == StatusAwaitingApproval {
			t.To, t.Event = StatusPending, audit.EventDeclineSchedule
			return t, nil
		}
	case ActionConfirmPresence:
		switch effective {
		case StatusScheduled, StatusAbsent:
			t.To, t.Event = StatusCompleted, audit.EventConfirmPresence
			return t, nil
		case StatusCompleted:
			t.To, t.Noop = StatusCompleted, true
			return t, nil
		}
	}
	return Transition{}, domain.NewError(domain.ErrInvalidTransition, domain.Subject{}, fmt.Sprintf("cannot %s from %s", action, effective))
}

// Schedulable は一括予約の対象となる導出状態かを返します。
func Schedulable(effective IntegrationStatus) bool {
	switch effective {
	case StatusPending, StatusApproved, StatusAbsent, StatusExpired:
		return true
	default:
		return false
	}
}

// Settle は出席確認期限を過ぎた AGENDADA を FALTOU として確定させます。確定した場合 true を返します。
func (e *Employee) Settle(now time.Time, cfg settings.Settings) bool {
	if e.IntegrationStatus != StatusScheduled {
		return false
	}
	if !validity.PresenceLapsed(e.IntegrationDate, cfg.PresenceConfirmationDays, now) {
		return false
	}
	e.IntegrationStatus = StatusAbsent
	return true
}

// Proposal は一括予約で従業員に適用する内容です。
type Proposal struct {
	ScheduledAt   time.Time
	ContractID    string
	Assignment    Assignment
	AsoDate       time.Time
	Justification string
}

// ProposeSchedule は予約提案を適用して AGUARDANDO_APROVACAO にします。
func (e *Employee) ProposeSchedule(p Proposal, now time.Time, cfg settings.Settings) (Transition, error) {
	t, err := Next(e.Effective(now, cfg), ActionSchedule)
	if err != nil {
		return Transition{}, err
	}
	scheduled := p.ScheduledAt
	aso := p.AsoDate
	e.IntegrationStatus = t.To
	e.IntegrationDate = &scheduled
	e.AsoDate = &aso
	e.ContractID = p.ContractID
	e.Assignment = p.Assignment
	e.ScheduleJustification = strings.TrimSpace(p.Justification)
	e.refreshExpiry(now, cfg)
	return t, nil
}

// ApproveManually は手動承認で APROVADO にします。
func (e *Employee) ApproveManually(now time.Time, cfg settings.Settings) (Transition, error) {
	t, err := Next(e.Effective(now, cfg), ActionApprove)
	if err != nil {
		return Transition{}, err
	}
	e.IntegrationStatus = t.To
	e.refreshExpiry(now, cfg)
	return t, nil
}

// ScheduleConfirmation は予約確定時の入力です。nil の項目は既存値または設定の既定値を使います。
type ScheduleConfirmation struct {
	AsoDate                 *time.Time
	AsoValidityDays         *int
	IntegrationValidityDays *int
}

// ConfirmSchedule は予約を確定して AGENDADA にします。有効日数は従業員に固定されます。
func (e *Employee) ConfirmSchedule(in ScheduleConfirmation, now time.Time, cfg settings.Settings) (Transition, error) {
	t, err := Next(e.Effective(now, cfg), ActionConfirmSchedule)
	if err != nil {
		return Transition{}, err
	}
	if in.AsoDate != nil {
		e.AsoDate = cloneTime(in.AsoDate)
	}
	e.AsoValidityDays = positiveOr(in.AsoValidityDays, cfg.AsoValidityDays)
	e.IntegrationValidityDays = positiveOr(in.IntegrationValidityDays, cfg.IntegrationValidityDays)
	e.IntegrationStatus = t.To
	e.refreshExpiry(now, cfg)
	return t, nil
}

// DeclineSchedule は予約提案を差し戻して PENDENTE にします。
func (e *Employee) DeclineSchedule(now time.Time, cfg settings.Settings) (Transition, error) {
	t, err := Next(e.Effective(now, cfg), ActionDeclineSchedule)
	if err != nil {
		return Transition{}, err
	}
	e.IntegrationStatus = t.To
	e.IntegrationDate = nil
	e.refreshExpiry(now, cfg)
	return t, nil
}

// ConfirmPresence は出席を確認して REALIZADA にします。期限後の確認も受け付けます。
func (e *Employee) ConfirmPresence(now time.Time, cfg settings.Settings) (Transition, error) {
	t, err := Next(e.Effective(now, cfg), ActionConfirmPresence)
	if err != nil || t.Noop {
		return t, err
	}
	if e.IntegrationDate == nil {
		at := now
		e.IntegrationDate = &at
	}
	e.IntegrationStatus = t.To
	e.refreshExpiry(now, cfg)
	return t, nil
}

func (e *Employee) refreshExpiry(now time.Time, cfg settings.Settings) {
	a := e.Assess(now, cfg)
	e.AsoExpiresAt = a.AsoExpiresAt
	e.IntegrationExpiresAt = a.IntegrationExpiresAt
}

func positiveOr(v *int, fallback int) *int {
	n := fallback
	if v != nil && *v > 0 {
		n = *v
	}
	return &n
}
