package domain

import "errors"

// TransitionRecorder は遷移結果を計測基盤へ通知します。
type TransitionRecorder interface {
	ObserveTransition(machine, action, outcome string)
	ObserveBatch(size int, outcome string)
}

// NopRecorder は何も記録しない TransitionRecorder です。
type NopRecorder struct{}

func (NopRecorder) ObserveTransition(string, string, string) {}

func (NopRecorder) ObserveBatch(int, string) {}

// Outcome はエラーを計測用のラベルに変換します。
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrIneligibleState):
		return "ineligible_state"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
