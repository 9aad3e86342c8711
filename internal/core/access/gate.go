package access

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
)

var (
	ErrInvalidActor  = errors.New("access: invalid actor")
	ErrActorNotFound = errors.New("access: actor not found")
)

// ProfileProvider は操作主体の権限プロファイルを返す外部コラボレーターです。
type ProfileProvider interface {
	ProfileFor(ctx context.Context, actor Actor) (*Profile, error)
}

// Gate は遷移ごとに評価される権限ゲートです。
type Gate struct {
	profiles ProfileProvider
}

// NewGate は Gate を生成します。
func NewGate(profiles ProfileProvider) *Gate {
	return &Gate{profiles: profiles}
}

// Resolve は Actor のプロファイルを取得して Principal を返します。
func (g *Gate) Resolve(ctx context.Context, actor Actor) (*Principal, error) {
	actor.ID = strings.TrimSpace(actor.ID)
	if actor.ID == "" {
		return nil, fmt.Errorf("actor id: %w", ErrInvalidActor)
	}
	switch actor.Kind {
	case ActorUser, ActorCompany:
	default:
		return nil, fmt.Errorf("actor kind %q: %w", actor.Kind, ErrInvalidActor)
	}

	profile, err := g.profiles.ProfileFor(ctx, actor)
	if err != nil {
		if errors.Is(err, ErrActorNotFound) {
			return nil, domain.NewError(domain.ErrForbidden, domain.Subject{}, "unknown actor "+actor.ID)
		}
		return nil, err
	}

	p := &Principal{Actor: actor, Profile: *profile}
	if actor.Kind == ActorCompany {
		// 協力会社は社内権限を持たない
		p.Profile.Role = ""
		p.Profile.Capabilities = nil
		p.Profile.IsIntegrationApprover = false
		if p.Profile.Name == "" {
			p.Profile.Name = CompanyProfileName
		}
		if p.Profile.CompanyID == "" {
			p.Profile.CompanyID = actor.ID
		}
	}
	return p, nil
}

// IsAdmin は admin ロールかを返します。
func (p *Principal) IsAdmin() bool {
	return p.Actor.Kind == ActorUser && p.Profile.Role == RoleAdmin
}

// IsCompany は協力会社アカウントかを返します。
func (p *Principal) IsCompany() bool {
	return p.Actor.Kind == ActorCompany
}

// Has は権限を保持しているかを返します。
func (p *Principal) Has(c Capability) bool {
	if p.IsAdmin() {
		return true
	}
	if p.IsCompany() {
		return false
	}
	return p.Profile.Capabilities[string(c)]
}

// Require は権限がなければ Forbidden を返します。
func (p *Principal) Require(c Capability) error {
	if p.Has(c) {
		return nil
	}
	return domain.NewError(domain.ErrForbidden, domain.Subject{}, fmt.Sprintf("actor %s lacks %s", p.Actor.ID, c))
}

// RequireIntegrationApprover は出席確認を行えるかを判定します。
func (p *Principal) RequireIntegrationApprover() error {
	if p.IsAdmin() || (p.Actor.Kind == ActorUser && p.Profile.IsIntegrationApprover) {
		return nil
	}
	return domain.NewError(domain.ErrForbidden, domain.Subject{}, fmt.Sprintf("actor %s is not an integration approver", p.Actor.ID))
}

// RequireCompany は主体が companyID の協力会社(または admin)であることを要求します。
func (p *Principal) RequireCompany(companyID string) error {
	if p.IsAdmin() {
		return nil
	}
	if p.IsCompany() && p.Profile.CompanyID == companyID {
		return nil
	}
	return domain.NewError(domain.ErrForbidden, domain.Subject{}, fmt.Sprintf("actor %s does not own company %s", p.Actor.ID, companyID))
}

// AuditName は監査記録に残すプロファイル名を返します。
func (p *Principal) AuditName() string {
	switch {
	case p.IsCompany():
		return CompanyProfileName
	case p.IsAdmin() && p.Profile.Name == "":
		return "Admin"
	case p.Profile.Name == "":
		return "Sem Perfil"
	default:
		return p.Profile.Name
	}
}
