package access

// ActorKind は操作主体の種別です。
type ActorKind string

const (
	// ActorUser は発注側の社内ユーザーです。
	ActorUser ActorKind = "user"
	// ActorCompany は協力会社(プレスタドーラ)のアカウントです。
	ActorCompany ActorKind = "company"
)

// RoleAdmin は全ての権限チェックを通過するロールです。
const RoleAdmin = "admin"

// CompanyProfileName は協力会社による操作の監査上の名義です。
const CompanyProfileName = "PRESTADORA"

// Capability はプロファイルが保持する名前付き権限です。
type Capability string

const (
	CapApproveDocs        Capability = "canApproveDocs"
	CapApproveIntegration Capability = "canApproveIntegration"
	CapEditEmployees      Capability = "canEditFuncionarios"
	CapViewDocs           Capability = "canViewDocs"
)

// Actor はリクエストを発行した主体の識別子です。
type Actor struct {
	ID   string
	Kind ActorKind
}

// Profile は権限プロファイルの解決結果です。
type Profile struct {
	Name                  string
	Role                  string
	CompanyID             string
	Capabilities          map[string]bool
	IsIntegrationApprover bool
}

// Principal は権限解決済みの操作主体です。
type Principal struct {
	Actor   Actor
	Profile Profile
}
