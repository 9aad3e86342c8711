package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/access"
	pgdb "github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/db/postgres"
)

// UserRepository は社内ユーザーと協力会社アカウントの権限プロファイルを解決します。
type UserRepository struct {
	pool pgdb.Queryer
}

// NewUserRepository は UserRepository を生成します。
func NewUserRepository(pool pgdb.Queryer) *UserRepository {
	return &UserRepository{pool: pool}
}

// ProfileFor は Actor の種別に応じてプロファイルを返します。存在しない場合は access.ErrActorNotFound です。
func (r *UserRepository) ProfileFor(ctx context.Context, actor access.Actor) (*access.Profile, error) {
	switch actor.Kind {
	case access.ActorUser:
		return r.userProfile(ctx, actor.ID)
	case access.ActorCompany:
		return r.companyProfile(ctx, actor.ID)
	default:
		return nil, access.ErrInvalidActor
	}
}

func (r *UserRepository) userProfile(ctx context.Context, id string) (*access.Profile, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT u.role,
               u.is_integration_approver,
               COALESCE(p.name, ''),
               COALESCE(p.capabilities, '{}'::jsonb)
          FROM users u
          LEFT JOIN profiles p ON p.id = u.profile_id
         WHERE u.id = $1
    `, id)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, translateProfilePgError(err)
	}
	return profile, nil
}

func (r *UserRepository) companyProfile(ctx context.Context, id string) (*access.Profile, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var companyID string
	if err := exec.QueryRow(ctx, `SELECT id FROM companies WHERE id = $1`, id).Scan(&companyID); err != nil {
		return nil, translateProfilePgError(err)
	}
	return &access.Profile{Name: access.CompanyProfileName, CompanyID: companyID}, nil
}

func scanProfile(row pgx.Row) (*access.Profile, error) {
	var (
		profile access.Profile
		rawCaps []byte
	)
	if err := row.Scan(&profile.Role, &profile.IsIntegrationApprover, &profile.Name, &rawCaps); err != nil {
		return nil, err
	}
	caps, err := decodeCapabilities(rawCaps)
	if err != nil {
		return nil, err
	}
	profile.Capabilities = caps
	return &profile, nil
}

// decodeCapabilities は {"canApproveDocs": true} 形式の JSON を読み取ります。真偽値以外の値は無視します。
func decodeCapabilities(raw []byte) (map[string]bool, error) {
	if len(raw) == 0 {
		return map[string]bool{}, nil
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("postgres: decode capabilities: %w", err)
	}
	caps := make(map[string]bool, len(values))
	for name, v := range values {
		if b, ok := v.(bool); ok {
			caps[name] = b
		}
	}
	return caps, nil
}

func translateProfilePgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return access.ErrActorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextCode {
		return access.ErrActorNotFound
	}
	return err
}
