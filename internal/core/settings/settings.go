package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultAsoValidityDays          = 365
	DefaultIntegrationValidityDays  = 365
	DefaultPresenceConfirmationDays = 5
	DefaultScheduleWeekdays         = "TER,QUI"
	DefaultExpiryWarningDays        = 30

	requiredWeekdayCount = 2
)

var (
	ErrInvalidWeekday      = errors.New("settings: invalid weekday")
	ErrInvalidWeekdayCount = errors.New("settings: exactly two schedule weekdays are required")
	ErrInvalidDays         = errors.New("settings: deadline days must be positive")
)

var weekdayCodes = map[string]time.Weekday{
	"DOM": time.Sunday,
	"SEG": time.Monday,
	"TER": time.Tuesday,
	"QUA": time.Wednesday,
	"QUI": time.Thursday,
	"SEX": time.Friday,
	"SAB": time.Saturday,
}

var weekdayNames = [...]string{"DOM", "SEG", "TER", "QUA", "QUI", "SEX", "SAB"}

// Settings は期限・曜日ルールのスナップショットです。1 回の操作中は変化しません。
type Settings struct {
	AsoValidityDays          int
	IntegrationValidityDays  int
	PresenceConfirmationDays int
	ScheduleWeekdays         []time.Weekday
	ExpiryWarningDays        int
	Location                 *time.Location
}

// Provider は現在の設定スナップショットを返します。
type Provider interface {
	Snapshot(ctx context.Context) (Settings, error)
}

// Default は既定値の設定を返します。
func Default() Settings {
	weekdays, _ := ParseWeekdays(DefaultScheduleWeekdays)
	return Settings{
		AsoValidityDays:          DefaultAsoValidityDays,
		IntegrationValidityDays:  DefaultIntegrationValidityDays,
		PresenceConfirmationDays: DefaultPresenceConfirmationDays,
		ScheduleWeekdays:         weekdays,
		ExpiryWarningDays:        DefaultExpiryWarningDays,
		Location:                 time.UTC,
	}
}

// Validate は設定値を検証します。
func (s Settings) Validate() error {
	if s.AsoValidityDays <= 0 || s.IntegrationValidityDays <= 0 {
		return ErrInvalidDays
	}
	if s.PresenceConfirmationDays < 0 || s.ExpiryWarningDays < 0 {
		return ErrInvalidDays
	}
	if len(s.ScheduleWeekdays) != requiredWeekdayCount || s.ScheduleWeekdays[0] == s.ScheduleWeekdays[1] {
		return ErrInvalidWeekdayCount
	}
	return nil
}

// Loc はタイムゾーンを返します。未設定の場合は UTC です。
func (s Settings) Loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// AllowsWeekday は t の曜日(設定タイムゾーン基準)が予約可能日かを判定します。
func (s Settings) AllowsWeekday(t time.Time) bool {
	day := t.In(s.Loc()).Weekday()
	for _, allowed := range s.ScheduleWeekdays {
		if allowed == day {
			return true
		}
	}
	return false
}

// WeekdayCodes は "SEG,QUI" 形式で曜日を返します。
func (s Settings) WeekdayCodes() string {
	return FormatWeekdays(s.ScheduleWeekdays)
}

// ParseWeekdays は "SEG,QUI" 形式の曜日リストを解析します。
func ParseWeekdays(raw string) ([]time.Weekday, error) {
	parts := strings.Split(raw, ",")
	out := make([]time.Weekday, 0, len(parts))
	seen := make(map[time.Weekday]struct{}, len(parts))
	for _, part := range parts {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		day, ok := weekdayCodes[code]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, code)
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	return out, nil
}

// FormatWeekdays は曜日をコード表記に変換します。
func FormatWeekdays(days []time.Weekday) string {
	codes := make([]string, 0, len(days))
	for _, d := range days {
		codes = append(codes, weekdayNames[d])
	}
	return strings.Join(codes, ",")
}

// WeekdayCode は単一曜日のコードを返します。
func WeekdayCode(d time.Weekday) string {
	return weekdayNames[d]
}

// Static は固定の設定を返す Provider です。
type Static struct {
	Value Settings
}

// Snapshot は保持している設定を返します。
func (s Static) Snapshot(context.Context) (Settings, error) {
	return s.Value, nil
}
