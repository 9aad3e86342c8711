package document

import (
	"fmt"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
)

// Action は書類に対する操作です。
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionJustify Action = "justify"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Transition は遷移結果です。
type Transition struct {
	From  *Status
	To    Status
	Event audit.Event
}

// Changed は状態が変化したかを返します。
func (t Transition) Changed() bool {
	return t.From == nil || *t.From != t.To
}

// Next は現在状態 current に action を適用した結果を返します。current が nil の場合は未提出です。
// 権限や入力の検証は含みません。
func Next(current *Status, action Action) (Transition, error) {
	if current == nil {
		if action == ActionSubmit {
			return Transition{To: StatusAwaiting, Event: audit.EventSubmit}, nil
		}
		return Transition{}, invalid(nil, action)
	}

	from := *current
	t := Transition{From: &from}
	switch action {
	case ActionSubmit:
		if from == StatusRejected {
			t.To, t.Event = StatusCorrected, audit.EventResubmit
			return t, nil
		}
	case ActionJustify:
		switch from {
		case StatusRejected:
			t.To, t.Event = StatusCorrected, audit.EventJustify
			return t, nil
		case StatusPending, StatusAwaiting:
			t.To, t.Event = from, audit.EventJustify
			return t, nil
		}
	case ActionApprove:
		if reviewable(from) {
			t.To, t.Event = StatusApproved, audit.EventApprove
			return t, nil
		}
	case ActionReject:
		if reviewable(from) {
			t.To, t.Event = StatusRejected, audit.EventReject
			return t, nil
		}
	}
	return Transition{}, invalid(current, action)
}

func reviewable(s Status) bool {
	switch s {
	case StatusAwaiting, StatusCorrected, StatusPending:
		return true
	default:
		return false
	}
}

func invalid(current *Status, action Action) *domain.Error {
	from := "absent"
	if current != nil {
		from = string(*current)
	}
	return domain.NewError(domain.ErrInvalidTransition, domain.Subject{}, fmt.Sprintf("cannot %s from %s", action, from))
}
