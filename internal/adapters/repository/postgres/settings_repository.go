package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/settings"
	pgdb "github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/db/postgres"
)

// SettingsRepository は期限・曜日ルールの設定行を読み取ります。行が無い場合は fallback を返します。
type SettingsRepository struct {
	pool     pgdb.Queryer
	fallback settings.Settings
}

// NewSettingsRepository は SettingsRepository を生成します。
func NewSettingsRepository(pool pgdb.Queryer, fallback settings.Settings) *SettingsRepository {
	return &SettingsRepository{pool: pool, fallback: fallback}
}

// Snapshot は現在の設定を返します。
func (r *SettingsRepository) Snapshot(ctx context.Context) (settings.Settings, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var (
		out      settings.Settings
		weekdays string
		timeZone string
	)
	err := exec.QueryRow(ctx, `
        SELECT aso_validity_days, integration_validity_days, presence_confirmation_days,
               schedule_weekdays, expiry_warning_days, time_zone
          FROM compliance_settings
         WHERE id = 1
    `).Scan(
		&out.AsoValidityDays,
		&out.IntegrationValidityDays,
		&out.PresenceConfirmationDays,
		&weekdays,
		&out.ExpiryWarningDays,
		&timeZone,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.fallback, nil
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("postgres: load settings: %w", err)
	}

	if out.ScheduleWeekdays, err = settings.ParseWeekdays(weekdays); err != nil {
		return settings.Settings{}, fmt.Errorf("postgres: load settings: %w", err)
	}
	if out.Location, err = time.LoadLocation(timeZone); err != nil {
		return settings.Settings{}, fmt.Errorf("postgres: load settings: time zone %q: %w", timeZone, err)
	}
	if err := out.Validate(); err != nil {
		return settings.Settings{}, fmt.Errorf("postgres: load settings: %w", err)
	}
	return out, nil
}
