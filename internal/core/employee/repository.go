package employee

import "context"

// Repository は社員永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, currentEmpID string, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, empID string) (*Employee, error)
	FindByID(ctx context.Context, empID string) (*Employee, error)
	FindDuplicates(ctx context.Context, filter DuplicateFilter) ([]*Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) ([]*Employee, error)
}

// DuplicateFilter は一意項目の重複検索条件です。
// ExcludeEmpID が空でなければ、その社員自身は検索対象から外します。
type DuplicateFilter struct {
	EmpID        string
	Email        string
	ExcludeEmpID string
}

// ListEmployeesFilter は一覧取得用フィルタです。Search は小文字化済みの部分一致語です。
type ListEmployeesFilter struct {
	Search string
}
