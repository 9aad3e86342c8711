package validity

import (
	"testing"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/settings"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func days(n int) *int {
	return &n
}

func TestCalculate_AsoExpiredScenario(t *testing.T) {
	t.Parallel()

	s := settings.Default()
	in := Input{AsoDate: date(2024, 1, 1), AsoValidityDays: days(365)}

	got := Calculate(in, time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC), s)

	if got.AsoExpiresAt == nil || !got.AsoExpiresAt.Equal(*date(2024, 12, 31)) {
		t.Fatalf("expected ASO expiry 2024-12-31, got %v", got.AsoExpiresAt)
	}
	if got.Status != StatusExpired {
		t.Fatalf("expected VENCIDO, got %s", got.Status)
	}
	if got.IntegrationExpiresAt != nil {
		t.Fatalf("expected no integration expiry, got %v", got.IntegrationExpiresAt)
	}
}

func TestCalculate_Statuses(t *testing.T) {
	t.Parallel()

	s := settings.Default()
	s.ExpiryWarningDays = 0
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   Input
		want Status
	}{
		{
			name: "no dates",
			in:   Input{},
			want: StatusNotIntegrated,
		},
		{
			name: "aso only and valid",
			in:   Input{AsoDate: date(2024, 1, 1)},
			want: StatusNotIntegrated,
		},
		{
			name: "both valid",
			in:   Input{AsoDate: date(2024, 1, 1), IntegrationDate: date(2024, 2, 1)},
			want: StatusValid,
		},
		{
			name: "integration expired",
			in:   Input{AsoDate: date(2024, 1, 1), IntegrationDate: date(2024, 2, 1), IntegrationValidityDays: days(30)},
			want: StatusExpired,
		},
		{
			name: "expiry equal to today is still valid",
			in:   Input{AsoDate: date(2024, 5, 1), IntegrationDate: date(2024, 5, 2), AsoValidityDays: days(31)},
			want: StatusValid,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Calculate(tc.in, now, s); got.Status != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got.Status)
			}
		})
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	t.Parallel()

	s := settings.Default()
	in := Input{AsoDate: date(2024, 3, 10), AsoValidityDays: days(180), IntegrationDate: date(2024, 3, 12), IntegrationValidityDays: days(365)}
	now := time.Date(2024, 8, 30, 0, 0, 0, 0, time.UTC)

	first := Calculate(in, now, s)
	second := Calculate(in, now, s)

	if first.Status != second.Status || first.Expiring != second.Expiring {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if !first.AsoExpiresAt.Equal(*second.AsoExpiresAt) || !first.IntegrationExpiresAt.Equal(*second.IntegrationExpiresAt) {
		t.Fatalf("expected identical expiry dates")
	}
}

func TestCalculate_ExpiringWithinWarningWindow(t *testing.T) {
	t.Parallel()

	s := settings.Default()
	s.ExpiryWarningDays = 10
	in := Input{AsoDate: date(2024, 1, 1), AsoValidityDays: days(100), IntegrationDate: date(2024, 1, 2)}

	got := Calculate(in, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), s)
	if got.Status != StatusValid || !got.Expiring {
		t.Fatalf("expected valid and expiring, got %+v", got)
	}

	got = Calculate(in, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), s)
	if got.Expiring {
		t.Fatalf("expected not expiring yet, got %+v", got)
	}
}

func TestCalculate_DefaultsFromSettings(t *testing.T) {
	t.Parallel()

	s := settings.Default()
	s.AsoValidityDays = 10

	got := Calculate(Input{AsoDate: date(2024, 1, 1)}, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), s)
	if got.AsoExpiresAt == nil || !got.AsoExpiresAt.Equal(*date(2024, 1, 11)) {
		t.Fatalf("expected settings default to apply, got %v", got.AsoExpiresAt)
	}
}

func TestPresenceLapsed(t *testing.T) {
	t.Parallel()

	scheduled := time.Date(2024, 1, 9, 8, 0, 0, 0, time.UTC)

	if PresenceLapsed(&scheduled, 5, scheduled.AddDate(0, 0, 5)) {
		t.Fatalf("expected window still open on the deadline instant")
	}
	if !PresenceLapsed(&scheduled, 5, scheduled.AddDate(0, 0, 6)) {
		t.Fatalf("expected window to be lapsed at T+6")
	}
	if PresenceLapsed(nil, 5, scheduled) {
		t.Fatalf("expected false without a scheduled date")
	}
}

func TestCalculate_CalendarDatesIgnoreZoneOffset(t *testing.T) {
	t.Parallel()

	brt := time.FixedZone("BRT", -3*60*60)
	s := settings.Default()
	s.Location = brt
	s.ExpiryWarningDays = 0

	// 2024-01-02 01:00 UTC は BRT では 2024-01-01 22:00。
	integratedAt := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	in := Input{
		AsoDate:                 date(2024, 1, 1),
		AsoValidityDays:         days(365),
		IntegrationDate:         &integratedAt,
		IntegrationValidityDays: days(365),
	}

	lastValidDay := time.Date(2024, 12, 31, 23, 0, 0, 0, brt)
	got := Calculate(in, lastValidDay, s)
	if got.AsoExpiresAt == nil || got.AsoExpiresAt.Format("2006-01-02") != "2024-12-31" {
		t.Fatalf("expected ASO expiry 2024-12-31, got %v", got.AsoExpiresAt)
	}
	if got.IntegrationExpiresAt == nil || got.IntegrationExpiresAt.Format("2006-01-02") != "2024-12-31" {
		t.Fatalf("expected integration expiry 2024-12-31, got %v", got.IntegrationExpiresAt)
	}
	if got.Status != StatusValid {
		t.Fatalf("expected VALIDO on the last valid day, got %s", got.Status)
	}

	got = Calculate(in, time.Date(2025, 1, 2, 12, 0, 0, 0, brt), s)
	if got.AsoExpiresAt.Format("2006-01-02") != "2024-12-31" || got.Status != StatusExpired {
		t.Fatalf("expected VENCIDO with expiry 2024-12-31, got %+v", got)
	}
}
