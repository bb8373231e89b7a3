package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
)

const (
	employeeUniqueViolationCode = "23505"

	employeePrimaryKeyConstraint = "employees_pkey"
	employeeEmailConstraint      = "employees_email_key"
)

const employeeColumns = `emp_id, name, email, role, joining_date, training, project_status, project_name, date_added`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (emp_id, name, email, role, joining_date, training, project_status, project_name, date_added)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+employeeColumns,
		e.EmpID,
		e.Name,
		e.Email,
		e.Role,
		dateOnly(e.JoiningDate),
		string(e.Training),
		nullableProjectStatus(e.ProjectStatus),
		nullableString(e.ProjectName),
		e.DateAdded,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Update は currentEmpID の社員を上書きします。date_added は変更しません。
func (r *EmployeeRepository) Update(ctx context.Context, currentEmpID string, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET emp_id = $1,
               name = $2,
               email = $3,
               role = $4,
               joining_date = $5,
               training = $6,
               project_status = $7,
               project_name = $8
         WHERE emp_id = $9
        RETURNING `+employeeColumns,
		e.EmpID,
		e.Name,
		e.Email,
		e.Role,
		dateOnly(e.JoiningDate),
		string(e.Training),
		nullableProjectStatus(e.ProjectStatus),
		nullableString(e.ProjectName),
		currentEmpID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// Delete は社員を削除し、削除前の内容を返します。
func (r *EmployeeRepository) Delete(ctx context.Context, empID string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `DELETE FROM employees WHERE emp_id = $1 RETURNING `+employeeColumns, empID)

	deleted, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return deleted, nil
}

// FindByID は社員 ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, empID string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE emp_id = $1 LIMIT 1`, empID)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// FindDuplicates は社員 ID またはメールアドレスが一致する社員を返します。
func (r *EmployeeRepository) FindDuplicates(ctx context.Context, filter employee.DuplicateFilter) ([]*employee.Employee, error) {
	args := []any{filter.EmpID, filter.Email}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE (emp_id = $1 OR email = $2)`

	if filter.ExcludeEmpID != "" {
		query += " AND emp_id <> $" + strconv.Itoa(len(args)+1)
		args = append(args, filter.ExcludeEmpID)
	}

	return r.query(ctx, query, args...)
}

// List は社員を追加日時の降順で返します。Search が指定されていれば各項目の部分一致で絞り込みます。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, error) {
	args := make([]any, 0, 1)
	whereClause := ""

	if filter.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(filter.Search))+"%")
		whereClause = `
         WHERE LOWER(name) LIKE $1
            OR LOWER(emp_id) LIKE $1
            OR LOWER(email) LIKE $1
            OR LOWER(role) LIKE $1
            OR LOWER(joining_date::text) LIKE $1
            OR LOWER(training) LIKE $1
            OR LOWER(project_status) LIKE $1
            OR LOWER(project_name) LIKE $1`
	}

	query := `SELECT ` + employeeColumns + ` FROM employees` + whereClause + `
         ORDER BY date_added DESC, emp_id ASC`

	return r.query(ctx, query, args...)
}

func (r *EmployeeRepository) query(ctx context.Context, query string, args ...any) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		empID         string
		name          string
		email         string
		role          string
		joiningDate   time.Time
		training      string
		projectStatus sql.NullString
		projectName   sql.NullString
		dateAdded     time.Time
	)

	if err := row.Scan(
		&empID,
		&name,
		&email,
		&role,
		&joiningDate,
		&training,
		&projectStatus,
		&projectName,
		&dateAdded,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	emp := &employee.Employee{
		EmpID:       empID,
		Name:        name,
		Email:       email,
		Role:        role,
		JoiningDate: dateOnly(joiningDate),
		Training:    employee.TrainingStatus(training),
		DateAdded:   dateAdded,
	}

	if projectStatus.Valid {
		status := employee.ProjectStatus(projectStatus.String)
		emp.ProjectStatus = &status
	}
	if projectName.Valid {
		value := projectName.String
		emp.ProjectName = &value
	}

	return emp, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == employeeUniqueViolationCode {
		switch pgErr.ConstraintName {
		case employeePrimaryKeyConstraint:
			return &employee.ConflictError{Fields: []employee.Field{employee.FieldEmpID}}
		case employeeEmailConstraint:
			return &employee.ConflictError{Fields: []employee.Field{employee.FieldEmail}}
		}
	}

	return err
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableProjectStatus(value *employee.ProjectStatus) any {
	if value == nil {
		return nil
	}
	return string(*value)
}
