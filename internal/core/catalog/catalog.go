package catalog

import (
	"context"
	"strings"
)

// RequiredDocument は必須書類カタログの 1 行です。ContractID が空の場合は全契約共通です。
type RequiredDocument struct {
	ID         string
	Name       string
	ContractID string
	Position   int
}

// Repository は必須書類カタログの読み取り抽象です。
type Repository interface {
	ListRequired(ctx context.Context, contractID string) ([]*RequiredDocument, error)
}

// Provider は契約に必要な書類ラベルを順序付きで返します。
type Provider interface {
	RequiredLabels(ctx context.Context, contractID string) ([]string, error)
}

// Service は Repository を Provider として公開します。
type Service struct {
	repo Repository
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RequiredLabels は共通書類の後に契約固有の書類を並べ、重複ラベルを除いて返します。
func (s *Service) RequiredLabels(ctx context.Context, contractID string) ([]string, error) {
	rows, err := s.repo.ListRequired(ctx, strings.TrimSpace(contractID))
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, pass := range []bool{true, false} {
		for _, row := range rows {
			if (row.ContractID == "") != pass {
				continue
			}
			name := strings.TrimSpace(row.Name)
			key := strings.ToUpper(name)
			if name == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			labels = append(labels, name)
		}
	}
	return labels, nil
}
