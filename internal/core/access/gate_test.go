package access

import (
	"context"
	"errors"
	"testing"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
)

type fakeProfiles struct {
	profiles map[string]*Profile
	err      error
}

func (f *fakeProfiles) ProfileFor(_ context.Context, actor Actor) (*Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[string(actor.Kind)+"/"+actor.ID]
	if !ok {
		return nil, ErrActorNotFound
	}
	clone := *p
	return &clone, nil
}

func newGate() *Gate {
	return NewGate(&fakeProfiles{profiles: map[string]*Profile{
		"user/admin":    {Name: "Administrador", Role: RoleAdmin},
		"user/reviewer": {Name: "Qualidade", Role: "user", Capabilities: map[string]bool{"canApproveDocs": true}},
		"user/approver": {Name: "SESMT", Role: "user", IsIntegrationApprover: true},
		"company/acme":  {Name: "ACME Ltda", CompanyID: "acme", Capabilities: map[string]bool{"canApproveDocs": true}},
	}})
}

func TestGate_Resolve_InvalidActor(t *testing.T) {
	t.Parallel()

	gate := newGate()
	if _, err := gate.Resolve(context.Background(), Actor{ID: " ", Kind: ActorUser}); !errors.Is(err, ErrInvalidActor) {
		t.Fatalf("expected ErrInvalidActor, got %v", err)
	}
	if _, err := gate.Resolve(context.Background(), Actor{ID: "x", Kind: "robot"}); !errors.Is(err, ErrInvalidActor) {
		t.Fatalf("expected ErrInvalidActor for unknown kind, got %v", err)
	}
}

func TestGate_Resolve_UnknownActorIsForbidden(t *testing.T) {
	t.Parallel()

	_, err := newGate().Resolve(context.Background(), Actor{ID: "ghost", Kind: ActorUser})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPrincipal_AdminBypassesCapabilities(t *testing.T) {
	t.Parallel()

	p, err := newGate().Resolve(context.Background(), Actor{ID: "admin", Kind: ActorUser})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if err := p.Require(CapApproveIntegration); err != nil {
		t.Fatalf("admin should bypass capability checks: %v", err)
	}
	if err := p.RequireIntegrationApprover(); err != nil {
		t.Fatalf("admin should bypass approver flag: %v", err)
	}
	if err := p.RequireCompany("any"); err != nil {
		t.Fatalf("admin should act for any company: %v", err)
	}
}

func TestPrincipal_CapabilityAndApproverAreIndependent(t *testing.T) {
	t.Parallel()

	gate := newGate()
	reviewer, err := gate.Resolve(context.Background(), Actor{ID: "reviewer", Kind: ActorUser})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if err := reviewer.Require(CapApproveDocs); err != nil {
		t.Fatalf("reviewer should approve docs: %v", err)
	}
	if err := reviewer.RequireIntegrationApprover(); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("reviewer is not an integration approver, got %v", err)
	}

	approver, err := gate.Resolve(context.Background(), Actor{ID: "approver", Kind: ActorUser})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if err := approver.RequireIntegrationApprover(); err != nil {
		t.Fatalf("approver flag should pass: %v", err)
	}
	if err := approver.Require(CapApproveDocs); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("approver flag must not grant canApproveDocs, got %v", err)
	}
}

func TestPrincipal_CompanyNeverHoldsInternalCapabilities(t *testing.T) {
	t.Parallel()

	p, err := newGate().Resolve(context.Background(), Actor{ID: "acme", Kind: ActorCompany})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if err := p.Require(CapApproveDocs); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("company must not approve documents, got %v", err)
	}
	if err := p.RequireCompany("acme"); err != nil {
		t.Fatalf("company should own itself: %v", err)
	}
	if err := p.RequireCompany("other"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign company, got %v", err)
	}
	if p.AuditName() != CompanyProfileName {
		t.Fatalf("unexpected audit name %s", p.AuditName())
	}
}

func TestGate_Resolve_PropagatesProviderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	gate := NewGate(&fakeProfiles{err: boom})
	if _, err := gate.Resolve(context.Background(), Actor{ID: "u", Kind: ActorUser}); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}
