package document

import "strings"

// DocumentationStatus は従業員書類一式の集約状態です。
type DocumentationStatus string

const (
	DocumentationComplete DocumentationStatus = "COMPLETA"
	DocumentationRejected DocumentationStatus = "REPROVADA"
	DocumentationPending  DocumentationStatus = "PENDENTE"
)

// Documentation は必須書類に対する提出状況の集約です。
type Documentation struct {
	Status    DocumentationStatus
	Required  int
	Submitted int
	Pending   []string
	Rejected  []string
}

// IsComplete は全必須書類が承認済みかを返します。
func (d *Documentation) IsComplete() bool {
	return d != nil && d.Status == DocumentationComplete
}

// Evaluate は必須ラベルと提出済み書類から集約状態を算出します。ラベルは大文字小文字を区別せず照合します。
func Evaluate(required []string, docs []*Document) *Documentation {
	byType := make(map[string]*Document, len(docs))
	for _, d := range docs {
		if d == nil {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(d.Type))
		// 同一ラベルが複数ある場合は最新の更新を優先する
		if prev, ok := byType[key]; ok && prev.UpdatedAt.After(d.UpdatedAt) {
			continue
		}
		byType[key] = d
	}

	out := &Documentation{Required: len(required), Pending: []string{}, Rejected: []string{}}
	approved := 0
	for _, label := range required {
		d, ok := byType[strings.ToUpper(strings.TrimSpace(label))]
		if !ok {
			out.Pending = append(out.Pending, label)
			continue
		}
		out.Submitted++
		switch d.Status {
		case StatusApproved:
			approved++
		case StatusRejected:
			out.Rejected = append(out.Rejected, label)
		default:
			out.Pending = append(out.Pending, label)
		}
	}

	switch {
	case len(out.Rejected) > 0:
		out.Status = DocumentationRejected
	case approved == len(required):
		out.Status = DocumentationComplete
	default:
		out.Status = DocumentationPending
	}
	return out
}
