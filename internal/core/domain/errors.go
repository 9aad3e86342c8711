package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ワークフロー全体で共通するエラー種別です。
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation error")
	ErrIneligibleState   = errors.New("ineligible state")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("concurrent modification")
)

// SubjectKind はエラーや監査記録の対象となるエンティティ種別です。
type SubjectKind string

const (
	SubjectDocument   SubjectKind = "document"
	SubjectAttachment SubjectKind = "attachment"
	SubjectEmployee   SubjectKind = "employee"
)

// Subject はエラー対象のエンティティを識別します。
type Subject struct {
	Kind SubjectKind
	ID   string
}

// String は "employee:42" 形式の表記を返します。
func (s Subject) String() string {
	if s.Kind == "" && s.ID == "" {
		return ""
	}
	return string(s.Kind) + ":" + s.ID
}

// Error は種別・対象・理由を保持する業務エラーです。
type Error struct {
	Kind    error
	Subject Subject
	Reason  string
	Fields  []string
}

// NewError は Error を生成します。
func NewError(kind error, subject Subject, reason string) *Error {
	return &Error{Kind: kind, Subject: subject, Reason: reason}
}

// Validation は入力不備を表す Error を生成します。fields には不足している項目名を渡します。
func Validation(subject Subject, reason string, fields ...string) *Error {
	return &Error{Kind: ErrValidation, Subject: subject, Reason: reason, Fields: fields}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	}
	if s := e.Subject.String(); s != "" {
		fmt.Fprintf(&b, " [%s]", s)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// BatchError は一括処理で検出された複数の失敗をまとめます。
type BatchError struct {
	Kind     error
	Failures []*Error
}

func (e *BatchError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%v: %d target(s) rejected: %s", e.Kind, len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap は errors.Is / errors.As が種別と個々の失敗の両方に届くよう展開します。
func (e *BatchError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures)+1)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	for _, f := range e.Failures {
		out = append(out, f)
	}
	return out
}

// WrapError は操作名を付与しつつ種別を保持します。
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

// IsKind は err が kind に該当するかを判定します。
func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
