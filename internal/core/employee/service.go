package employee

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo      Repository
	validator *Validator
	clock     Clock
	tx        TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) (*Employee, error)
}

// NewService は Service を生成します。nil の依存には既定値を使います。
func NewService(repo Repository, validator *Validator, clock Clock, tx TransactionManager) *Service {
	if validator == nil {
		validator = NewValidator(DefaultEmailDomain)
	}
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, validator: validator, clock: clock, tx: tx}
}

// ListEmployeesInput は一覧取得時の入力です。
type ListEmployeesInput struct {
	Search string
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID string
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	Record Record
}

// UpdateEmployeeInput は社員更新時の入力です。ID は更新対象の現在の社員 ID です。
type UpdateEmployeeInput struct {
	ID     string
	Record Record
}

// DeleteEmployeeInput は社員削除時の入力です。
type DeleteEmployeeInput struct {
	ID string
}

// ListEmployees は社員の一覧を追加日時の降順で取得します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error) {
	filter := ListEmployeesFilter{Search: strings.ToLower(in.Search)}

	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetEmployee は社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateEmployee は新しい社員を作成します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	now := s.clock.Now()

	emp, err := s.buildEmployee(in.Record, now)
	if err != nil {
		return nil, err
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureUnique(txCtx, emp, ""); err != nil {
			return err
		}

		emp.DateAdded = now
		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateEmployee は社員情報を上書きします。社員 ID 自体の変更も可能です。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	emp, err := s.buildEmployee(in.Record, s.clock.Now())
	if err != nil {
		return nil, err
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureUnique(txCtx, emp, in.ID); err != nil {
			return err
		}

		result, err := s.repo.Update(txCtx, in.ID, emp)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEmployee は社員を削除し、削除したレコードを返します。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var deleted *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Delete(txCtx, in.ID)
		if err != nil {
			return err
		}
		deleted = result
		return nil
	}); err != nil {
		return nil, err
	}

	return deleted, nil
}

// buildEmployee は r を検証し、保存用の Employee に正規化します。
// 研修が done でなければプロジェクト状況と名前を、in-project でなければプロジェクト名を破棄します。
func (s *Service) buildEmployee(r Record, now time.Time) (*Employee, error) {
	if msgs := s.validator.Validate(r, now); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	joiningDate, err := ParseJoiningDate(r.JoiningDate)
	if err != nil {
		return nil, err
	}

	emp := &Employee{
		EmpID:       r.EmpID,
		Name:        r.Name,
		Email:       r.Email,
		Role:        r.Role,
		JoiningDate: joiningDate,
		Training:    TrainingStatus(r.Training),
	}

	if emp.Training == TrainingDone {
		status := ProjectStatus(r.ProjectStatus)
		emp.ProjectStatus = &status
		if status == ProjectInProject {
			name := r.ProjectName
			emp.ProjectName = &name
		}
	}

	return emp, nil
}

func (s *Service) ensureUnique(ctx context.Context, emp *Employee, excludeEmpID string) error {
	duplicates, err := s.repo.FindDuplicates(ctx, DuplicateFilter{
		EmpID:        emp.EmpID,
		Email:        emp.Email,
		ExcludeEmpID: excludeEmpID,
	})
	if err != nil {
		return err
	}

	var idTaken, emailTaken bool
	for _, d := range duplicates {
		if d.EmpID == emp.EmpID {
			idTaken = true
		}
		if d.Email == emp.Email {
			emailTaken = true
		}
	}

	if !idTaken && !emailTaken {
		return nil
	}

	conflict := &ConflictError{}
	if idTaken {
		conflict.Fields = append(conflict.Fields, FieldEmpID)
	}
	if emailTaken {
		conflict.Fields = append(conflict.Fields, FieldEmail)
	}
	return conflict
}
