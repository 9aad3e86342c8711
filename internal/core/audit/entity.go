package audit

import "time"

// SubjectKind は監査対象の種別です。保存値は既存画面の表記に合わせています。
type SubjectKind string

const (
	SubjectDocument   SubjectKind = "DOCUMENTO"
	SubjectAttachment SubjectKind = "ANEXO"
	SubjectEmployee   SubjectKind = "FUNCIONARIO"
)

// Event は記録された遷移の種類です。
type Event string

const (
	EventSubmit          Event = "submit"
	EventResubmit        Event = "resubmit"
	EventJustify         Event = "justify"
	EventApprove         Event = "approve"
	EventReject          Event = "reject"
	EventSchedule        Event = "schedule"
	EventConfirmSchedule Event = "confirm_schedule"
	EventDeclineSchedule Event = "decline_schedule"
	EventConfirmPresence Event = "confirm_presence"
	EventManualApprove   Event = "manual_approve"
	EventAbsenceDetected Event = "absence_detected"
)

// SystemProfileName は自動遷移の記録に使う名義です。
const SystemProfileName = "SISTEMA"

// Record は追記専用の承認履歴エントリです。
type Record struct {
	ID          string
	SubjectKind SubjectKind
	SubjectID   string
	ActorID     string
	ProfileName string
	Event       Event
	Status      string
	Observation string
	CreatedAt   time.Time
}
