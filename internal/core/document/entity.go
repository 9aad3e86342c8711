package document

import (
	"strings"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
)

// Status は書類承認の状態です。
type Status string

const (
	StatusAwaiting  Status = "AGUARDANDO"
	StatusCorrected Status = "CORRIGIDO"
	StatusPending   Status = "PENDENTE"
	StatusApproved  Status = "APROVADO"
	StatusRejected  Status = "NAO_APROVADO"
)

// legacyRejected は従業員書類の画面で使われていた却下ラベルです。
const legacyRejected = "REPROVADO"

// Class は書類の所属区分です。
type Class string

const (
	// ClassContract は契約単位の書類(Documento)です。
	ClassContract Class = "DOCUMENTO"
	// ClassAttachment は従業員単位の書類(Anexo)です。
	ClassAttachment Class = "ANEXO"
)

// Document は提出済みの書類です。未提出の書類はレコードとして存在しません。
type Document struct {
	ID          string
	Class       Class
	OwnerID     string
	CompanyID   string
	Type        string
	Competence  string
	Status      Status
	FileRef     string
	FileHash    string
	SubmittedAt time.Time
	Observation string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Key は書類の自然キーです。
type Key struct {
	Class      Class
	OwnerID    string
	Type       string
	Competence string
}

// Key は d の自然キーを返します。
func (d *Document) Key() Key {
	return Key{Class: d.Class, OwnerID: d.OwnerID, Type: d.Type, Competence: d.Competence}
}

// Subject はエラー表示用の対象を返します。
func (d *Document) Subject() domain.Subject {
	return subjectFor(d.Class, d.ID)
}

// AuditKind は監査記録上の対象種別を返します。
func (c Class) AuditKind() audit.SubjectKind {
	if c == ClassContract {
		return audit.SubjectDocument
	}
	return audit.SubjectAttachment
}

// Owner は書類の所有者情報です。
type Owner struct {
	CompanyID  string
	ContractID string
}

// ParseStatus は外部表記を状態に変換します。REPROVADO は NAO_APROVADO に正規化されます。
func ParseStatus(raw string) (Status, error) {
	switch s := strings.ToUpper(strings.TrimSpace(raw)); s {
	case string(StatusAwaiting), string(StatusCorrected), string(StatusPending), string(StatusApproved), string(StatusRejected):
		return Status(s), nil
	case legacyRejected:
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Label は区分ごとの外部表記を返します。従業員書類の却下は従来どおり REPROVADO と表記します。
func (s Status) Label(class Class) string {
	if s == StatusRejected && class == ClassAttachment {
		return legacyRejected
	}
	return string(s)
}

// IsRejected は却下状態かを返します。
func (s Status) IsRejected() bool {
	return s == StatusRejected
}

func subjectFor(class Class, id string) domain.Subject {
	if class == ClassContract {
		return domain.Subject{Kind: domain.SubjectDocument, ID: id}
	}
	return domain.Subject{Kind: domain.SubjectAttachment, ID: id}
}

func cloneDocument(d *Document) *Document {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
