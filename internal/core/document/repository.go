package document

import "context"

// Repository は書類永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, doc *Document) (*Document, error)
	// Update は doc.Version が一致する場合のみ更新し、バージョンを進めます。
	Update(ctx context.Context, doc *Document) (*Document, error)
	FindByID(ctx context.Context, id string) (*Document, error)
	// LockByID は行ロックを取得して書類を返します。
	LockByID(ctx context.Context, id string) (*Document, error)
	FindByKey(ctx context.Context, key Key) (*Document, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Document, error)
}

// OwnerRepository は書類の所有者を解決します。
type OwnerRepository interface {
	EmployeeOwner(ctx context.Context, employeeID string) (*Owner, error)
	ContractOwner(ctx context.Context, contractID string) (*Owner, error)
}
