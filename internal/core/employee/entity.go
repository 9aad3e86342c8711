package employee

import (
	"strings"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/document"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/settings"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/validity"
)

// IntegrationStatus は従業員のインテグレーション状態です。
type IntegrationStatus string

const (
	StatusPending          IntegrationStatus = "PENDENTE"
	StatusAwaitingApproval IntegrationStatus = "AGUARDANDO_APROVACAO"
	StatusScheduled        IntegrationStatus = "AGENDADA"
	StatusCompleted        IntegrationStatus = "REALIZADA"
	StatusAbsent           IntegrationStatus = "FALTOU"
	StatusApproved         IntegrationStatus = "APROVADO"
	// StatusExpired は導出専用で永続化されません。
	StatusExpired IntegrationStatus = "VENCIDO"
)

// ApprovedWithPendingDocsLabel は手動承認済みで書類が揃っていない場合の表示ラベルです。
const ApprovedWithPendingDocsLabel = "APROVADO (COM DOCUMENTAÇÃO PENDENTE)"

// ParseIntegrationStatus は保存値を状態に変換します。VENCIDO は保存値として受け付けません。
func ParseIntegrationStatus(raw string) (IntegrationStatus, error) {
	switch s := IntegrationStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatusPending, StatusAwaitingApproval, StatusScheduled, StatusCompleted, StatusAbsent, StatusApproved:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Assignment は予約時にコピーされる配置情報です。
type Assignment struct {
	Function        string
	Role            string
	Sector          string
	IntegrationUnit string
	ActivityUnit    string
}

// Employee は協力会社の従業員です。作成は別システムで行われ PENDENTE から始まります。
type Employee struct {
	ID                      string
	CompanyID               string
	ContractID              string
	Name                    string
	IntegrationStatus       IntegrationStatus
	AsoDate                 *time.Time
	AsoValidityDays         *int
	IntegrationValidityDays *int
	IntegrationDate         *time.Time
	AsoExpiresAt            *time.Time
	IntegrationExpiresAt    *time.Time
	Assignment              Assignment
	ScheduleJustification   string
	Version                 int64
	CreatedAt               time.Time
	UpdatedAt               time.Time
	DeletedAt               *time.Time
}

// Subject はエラー表示用の対象を返します。
func (e *Employee) Subject() domain.Subject {
	return domain.Subject{Kind: domain.SubjectEmployee, ID: e.ID}
}

// Assess は保存値から有効性を計算します。インテグレーション日は REALIZADA の場合のみ考慮します。
func (e *Employee) Assess(now time.Time, cfg settings.Settings) validity.Assessment {
	in := validity.Input{
		AsoDate:                 e.AsoDate,
		AsoValidityDays:         e.AsoValidityDays,
		IntegrationValidityDays: e.IntegrationValidityDays,
	}
	if e.IntegrationStatus == StatusCompleted {
		in.IntegrationDate = e.IntegrationDate
	}
	return validity.Calculate(in, now, cfg)
}

// Effective は導出状態を含む現在の状態を返します。
func (e *Employee) Effective(now time.Time, cfg settings.Settings) IntegrationStatus {
	switch e.IntegrationStatus {
	case StatusScheduled:
		if validity.PresenceLapsed(e.IntegrationDate, cfg.PresenceConfirmationDays, now) {
			return StatusAbsent
		}
	case StatusCompleted, StatusApproved:
		if e.Assess(now, cfg).Status == validity.StatusExpired {
			return StatusExpired
		}
	}
	return e.IntegrationStatus
}

// Label は表示用の状態名を返します。docs が nil の場合は書類状況を考慮しません。
func Label(effective IntegrationStatus, docs *document.Documentation) string {
	if effective == StatusApproved && docs != nil && !docs.IsComplete() {
		return ApprovedWithPendingDocsLabel
	}
	return string(effective)
}

// Integration は状態と有効性をまとめた参照モデルです。
type Integration struct {
	Employee      *Employee
	Status        IntegrationStatus
	Label         string
	Assessment    validity.Assessment
	Documentation *document.Documentation
}

func cloneEmployee(e *Employee) *Employee {
	if e == nil {
		return nil
	}
	c := *e
	c.AsoDate = cloneTime(e.AsoDate)
	c.IntegrationDate = cloneTime(e.IntegrationDate)
	c.AsoExpiresAt = cloneTime(e.AsoExpiresAt)
	c.IntegrationExpiresAt = cloneTime(e.IntegrationExpiresAt)
	c.DeletedAt = cloneTime(e.DeletedAt)
	c.AsoValidityDays = cloneInt(e.AsoValidityDays)
	c.IntegrationValidityDays = cloneInt(e.IntegrationValidityDays)
	return &c
}

// Clone は e の複製を返します。
func (e *Employee) Clone() *Employee {
	return cloneEmployee(e)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
