package employee

import (
	"errors"
	"strings"
)

var (
	ErrInvalidID         = errors.New("employee: invalid id")
	ErrEmployeeNotFound  = errors.New("employee: not found")
	ErrValidationFailed  = errors.New("employee: validation failed")
	ErrConflict          = errors.New("employee: conflict")
	ErrInvalidJoiningDay = errors.New("employee: invalid joining date")
)

// Field は一意制約の対象となる項目です。
type Field string

const (
	FieldEmpID Field = "emp_id"
	FieldEmail Field = "email"
)

// ValidationError は検証エラーの一覧を保持します。
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "employee: validation failed: " + strings.Join(e.Messages, " ")
}

// Is は ErrValidationFailed との比較を可能にします。
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ConflictError は一意制約に違反した項目を保持します。
type ConflictError struct {
	Fields []Field
}

func (e *ConflictError) Error() string {
	return "employee: conflict: " + strings.Join(e.Messages(), " ")
}

// Is は ErrConflict との比較を可能にします。
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Messages はクライアント向けのメッセージを項目順に返します。
func (e *ConflictError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		switch f {
		case FieldEmpID:
			msgs = append(msgs, "Employee ID already exists.")
		case FieldEmail:
			msgs = append(msgs, "Email already exists.")
		}
	}
	return msgs
}

// Has は指定した項目が衝突しているかを返します。
func (e *ConflictError) Has(field Field) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
