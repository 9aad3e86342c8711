package employee

import (
	"context"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/document"
)

// Repository は従業員永続化の抽象です。論理削除済みの従業員は見えません。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	// LockByID は行ロックを取得して従業員を返します。
	LockByID(ctx context.Context, id string) (*Employee, error)
	// LockMany は ID 昇順に行ロックを取得します。存在しない ID は結果に含まれません。
	LockMany(ctx context.Context, ids []string) ([]*Employee, error)
	// Update は e.Version が一致する場合のみ更新し、バージョンを進めます。
	Update(ctx context.Context, e *Employee) (*Employee, error)
}

// DocumentationReader は従業員書類の集約状態を返します。
type DocumentationReader interface {
	EmployeeDocumentation(ctx context.Context, employeeID, contractID string) (*document.Documentation, error)
}
