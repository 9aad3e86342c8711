// Package validity は保存済みの日付と設定から ASO・インテグレーションの有効性を導出する純粋関数群です。
package validity

import (
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/settings"
)

// Status は計算上のインテグレーション状態です。
type Status string

const (
	StatusValid         Status = "VALIDO"
	StatusExpired       Status = "VENCIDO"
	StatusNotIntegrated Status = "NAO_INTEGRADO"
)

// Input は計算に使う保存値です。AsoDate は暦日、IntegrationDate は日時として扱います。日数が nil の場合は設定の既定値を使います。
type Input struct {
	AsoDate                 *time.Time
	AsoValidityDays         *int
	IntegrationDate         *time.Time
	IntegrationValidityDays *int
}

// Assessment は計算結果です。
type Assessment struct {
	Status               Status
	AsoExpiresAt         *time.Time
	IntegrationExpiresAt *time.Time
	Expiring             bool
}

// Expiry は暦日 start に days 日を加えた有効期限日を返します。start の年月日をそのまま使い、タイムゾーン変換はしません。
func Expiry(start *time.Time, days int, loc *time.Location) *time.Time {
	if start == nil {
		return nil
	}
	d := calendarDate(*start, loc).AddDate(0, 0, days)
	return &d
}

// Calculate は有効性を計算します。同じ入力に対して常に同じ結果を返します。
func Calculate(in Input, now time.Time, s settings.Settings) Assessment {
	loc := s.Loc()
	asoExpiry := Expiry(in.AsoDate, daysOrDefault(in.AsoValidityDays, s.AsoValidityDays), loc)
	integrationExpiry := Expiry(localDay(in.IntegrationDate, loc), daysOrDefault(in.IntegrationValidityDays, s.IntegrationValidityDays), loc)

	out := Assessment{AsoExpiresAt: asoExpiry, IntegrationExpiresAt: integrationExpiry}
	today := dateOf(now, loc)

	switch {
	case expired(asoExpiry, today) || expired(integrationExpiry, today):
		out.Status = StatusExpired
	case in.IntegrationDate == nil:
		out.Status = StatusNotIntegrated
	default:
		out.Status = StatusValid
	}

	if out.Status != StatusExpired && s.ExpiryWarningDays > 0 {
		horizon := today.AddDate(0, 0, s.ExpiryWarningDays)
		out.Expiring = within(asoExpiry, horizon) || within(integrationExpiry, horizon)
	}

	return out
}

// PresenceLapsed は予約日時から confirmDays 日を過ぎても出席確認がない状態かを判定します。
func PresenceLapsed(scheduledAt *time.Time, confirmDays int, now time.Time) bool {
	if scheduledAt == nil {
		return false
	}
	deadline := scheduledAt.AddDate(0, 0, confirmDays)
	return now.After(deadline)
}

func expired(expiry *time.Time, today time.Time) bool {
	return expiry != nil && expiry.Before(today)
}

func within(expiry *time.Time, horizon time.Time) bool {
	return expiry != nil && !expiry.After(horizon)
}

func daysOrDefault(days *int, fallback int) int {
	if days == nil || *days <= 0 {
		return fallback
	}
	return *days
}

// dateOf は時刻 t を loc の暦日に変換します。
func dateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return calendarDate(t.In(loc), loc)
}

func localDay(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	d := dateOf(*t, loc)
	return &d
}

func calendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
