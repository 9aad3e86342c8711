// Package compliancev1 は compliance.v1 サービスのメッセージとサービス定義です。
// メッセージは jsoncodec で送受信されます。日付は YYYY-MM-DD 形式の文字列です。
package compliancev1

import "time"

// Document は提出済み書類です。Label は画面表示用の状態名です。
type Document struct {
	ID          string    `json:"id"`
	Class       string    `json:"class"`
	OwnerID     string    `json:"owner_id"`
	CompanyID   string    `json:"company_id"`
	Type        string    `json:"type"`
	Competence  string    `json:"competence,omitempty"`
	Status      string    `json:"status"`
	Label       string    `json:"label"`
	FileRef     string    `json:"file_ref,omitempty"`
	FileHash    string    `json:"file_hash,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	Observation string    `json:"observation,omitempty"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApprovalRecord は承認履歴の 1 件です。
type ApprovalRecord struct {
	ID          string    `json:"id"`
	SubjectKind string    `json:"subject_kind"`
	SubjectID   string    `json:"subject_id"`
	ActorID     string    `json:"actor_id"`
	ProfileName string    `json:"profile_name"`
	Event       string    `json:"event"`
	Status      string    `json:"status"`
	Observation string    `json:"observation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Documentation は従業員書類一式の集約状態です。
type Documentation struct {
	Status    string   `json:"status"`
	Required  int32    `json:"required"`
	Submitted int32    `json:"submitted"`
	Pending   []string `json:"pending"`
	Rejected  []string `json:"rejected"`
}

// Assignment は予約時の配置情報です。
type Assignment struct {
	Function        string `json:"function"`
	Role            string `json:"role"`
	Sector          string `json:"sector"`
	IntegrationUnit string `json:"integration_unit"`
	ActivityUnit    string `json:"activity_unit"`
}

// Integration は従業員のインテグレーション状態と有効性です。
type Integration struct {
	EmployeeID              string         `json:"employee_id"`
	CompanyID               string         `json:"company_id"`
	ContractID              string         `json:"contract_id,omitempty"`
	Name                    string         `json:"name"`
	StoredStatus            string         `json:"stored_status"`
	Status                  string         `json:"status"`
	Label                   string         `json:"label"`
	ValidityStatus          string         `json:"validity_status"`
	Expiring                bool           `json:"expiring"`
	AsoDate                 string         `json:"aso_date,omitempty"`
	AsoValidityDays         *int32         `json:"aso_validity_days,omitempty"`
	AsoExpiresAt            string         `json:"aso_expires_at,omitempty"`
	IntegrationDate         *time.Time     `json:"integration_date,omitempty"`
	IntegrationValidityDays *int32         `json:"integration_validity_days,omitempty"`
	IntegrationExpiresAt    string         `json:"integration_expires_at,omitempty"`
	Assignment              *Assignment    `json:"assignment,omitempty"`
	ScheduleJustification   string         `json:"schedule_justification,omitempty"`
	Documentation           *Documentation `json:"documentation,omitempty"`
	Version                 int64          `json:"version"`
}

// ScheduledEmployee は一括予約で受け付けられた従業員です。
type ScheduledEmployee struct {
	EmployeeID  string     `json:"employee_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type SubmitDocumentRequest struct {
	Class       string `json:"class"`
	OwnerID     string `json:"owner_id"`
	Type        string `json:"type"`
	Competence  string `json:"competence,omitempty"`
	FileRef     string `json:"file_ref,omitempty"`
	FileHash    string `json:"file_hash,omitempty"`
	Observation string `json:"observation,omitempty"`
}

type SubmitDocumentResponse struct {
	Document *Document `json:"document"`
}

type JustifyDocumentRequest struct {
	DocumentID  string `json:"document_id"`
	Observation string `json:"observation"`
}

type JustifyDocumentResponse struct {
	Document *Document `json:"document"`
}

type ApproveDocumentRequest struct {
	DocumentID  string `json:"document_id"`
	Observation string `json:"observation,omitempty"`
}

type ApproveDocumentResponse struct {
	Document *Document `json:"document"`
}

type RejectDocumentRequest struct {
	DocumentID  string `json:"document_id"`
	Observation string `json:"observation"`
}

type RejectDocumentResponse struct {
	Document *Document `json:"document"`
}

type GetDocumentRequest struct {
	DocumentID string `json:"document_id"`
}

type GetDocumentResponse struct {
	Document *Document `json:"document"`
}

type ListEmployeeDocumentsRequest struct {
	EmployeeID string `json:"employee_id"`
}

type ListEmployeeDocumentsResponse struct {
	Documents []*Document `json:"documents"`
}

type GetDocumentHistoryRequest struct {
	DocumentID string `json:"document_id"`
}

type GetDocumentHistoryResponse struct {
	Records []*ApprovalRecord `json:"records"`
}

type GetDocumentationStatusRequest struct {
	EmployeeID string `json:"employee_id"`
}

type GetDocumentationStatusResponse struct {
	Documentation *Documentation `json:"documentation"`
}

type GetIntegrationRequest struct {
	EmployeeID string `json:"employee_id"`
}

type GetIntegrationResponse struct {
	Integration *Integration `json:"integration"`
}

type ScheduleIntegrationsRequest struct {
	EmployeeIDs   []string    `json:"employee_ids"`
	ScheduledAt   time.Time   `json:"scheduled_at"`
	ContractID    string      `json:"contract_id"`
	Assignment    *Assignment `json:"assignment"`
	AsoDate       string      `json:"aso_date,omitempty"`
	Justification string      `json:"justification,omitempty"`
}

type ScheduleIntegrationsResponse struct {
	Employees []*ScheduledEmployee `json:"employees"`
	Records   []*ApprovalRecord    `json:"records"`
}

type ApproveIntegrationRequest struct {
	EmployeeID  string `json:"employee_id"`
	Observation string `json:"observation,omitempty"`
}

type ApproveIntegrationResponse struct {
	Integration *Integration `json:"integration"`
}

type ConfirmScheduleRequest struct {
	EmployeeID              string `json:"employee_id"`
	AsoDate                 string `json:"aso_date,omitempty"`
	AsoValidityDays         *int32 `json:"aso_validity_days,omitempty"`
	IntegrationValidityDays *int32 `json:"integration_validity_days,omitempty"`
	Observation             string `json:"observation,omitempty"`
}

type ConfirmScheduleResponse struct {
	Integration *Integration `json:"integration"`
}

type DeclineScheduleRequest struct {
	EmployeeID  string `json:"employee_id"`
	Observation string `json:"observation"`
}

type DeclineScheduleResponse struct {
	Integration *Integration `json:"integration"`
}

type ConfirmPresenceRequest struct {
	EmployeeID  string `json:"employee_id"`
	Observation string `json:"observation,omitempty"`
}

type ConfirmPresenceResponse struct {
	Integration *Integration `json:"integration"`
}

type GetIntegrationHistoryRequest struct {
	EmployeeID string `json:"employee_id"`
}

type GetIntegrationHistoryResponse struct {
	Records []*ApprovalRecord `json:"records"`
}
