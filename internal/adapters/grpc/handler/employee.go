package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

const dateLayout = "2006-01-02"

const (
	msgEmployeeAdded   = "Employee added successfully"
	msgEmployeeUpdated = "Employee updated successfully"
	msgEmployeeDeleted = "Employee deleted successfully"
)

// リクエスト Struct のキーは HTTP API のリクエストボディと揃えています。
var recordKeys = struct {
	Name, EmpID, Email, Role, JoiningDate, Training, ProjectStatus, ProjectName string
}{
	Name:          "name",
	EmpID:         "empId",
	Email:         "email",
	Role:          "role",
	JoiningDate:   "joiningDate",
	Training:      "training",
	ProjectStatus: "projectStatus",
	ProjectName:   "projectName",
}

// EmployeeGrpcHandler は EmployeeDirectory の gRPC 実装です。
type EmployeeGrpcHandler struct {
	svc    employee.UseCase
	logger zerolog.Logger
}

var _ EmployeeDirectoryServer = (*EmployeeGrpcHandler)(nil)

// NewEmployeeGrpcHandler は EmployeeGrpcHandler を生成します。
func NewEmployeeGrpcHandler(svc employee.UseCase, logger zerolog.Logger) *EmployeeGrpcHandler {
	return &EmployeeGrpcHandler{svc: svc, logger: logger}
}

// ListEmployees は社員の一覧を返します。空でない値が渡された場合は部分一致で絞り込みます。
func (h *EmployeeGrpcHandler) ListEmployees(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	employees, err := h.svc.ListEmployees(ctx, employee.ListEmployeesInput{Search: req.GetValue()})
	if err != nil {
		return nil, h.toStatusError(ctx, EmployeeDirectory_ListEmployees_FullMethodName, err)
	}

	values := make([]*structpb.Value, 0, len(employees))
	for _, emp := range employees {
		values = append(values, structpb.NewStructValue(toEmployeeStruct(emp)))
	}
	return &structpb.ListValue{Values: values}, nil
}

// GetEmployee は社員を取得します。
func (h *EmployeeGrpcHandler) GetEmployee(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetEmployee(ctx, employee.GetEmployeeInput{ID: req.GetValue()})
	if err != nil {
		return nil, h.toStatusError(ctx, EmployeeDirectory_GetEmployee_FullMethodName, err)
	}

	return toEmployeeStruct(found), nil
}

// CreateEmployee は社員を作成します。
func (h *EmployeeGrpcHandler) CreateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	record, err := toRecord(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	created, err := h.svc.CreateEmployee(ctx, employee.CreateEmployeeInput{Record: record})
	if err != nil {
		return nil, h.toStatusError(ctx, EmployeeDirectory_CreateEmployee_FullMethodName, err)
	}

	return toMutationStruct(msgEmployeeAdded, created), nil
}

// UpdateEmployee は {id, employee} 形式のリクエストで社員を置き換えます。
func (h *EmployeeGrpcHandler) UpdateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := stringField(req, "id")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	body := req.GetFields()["employee"].GetStructValue()
	if body == nil {
		return nil, status.Error(codes.InvalidArgument, "employee is required")
	}

	record, err := toRecord(body)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	updated, err := h.svc.UpdateEmployee(ctx, employee.UpdateEmployeeInput{ID: id, Record: record})
	if err != nil {
		return nil, h.toStatusError(ctx, EmployeeDirectory_UpdateEmployee_FullMethodName, err)
	}

	return toMutationStruct(msgEmployeeUpdated, updated), nil
}

// DeleteEmployee は社員を削除し、削除したレコードを返します。
func (h *EmployeeGrpcHandler) DeleteEmployee(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	deleted, err := h.svc.DeleteEmployee(ctx, employee.DeleteEmployeeInput{ID: req.GetValue()})
	if err != nil {
		return nil, h.toStatusError(ctx, EmployeeDirectory_DeleteEmployee_FullMethodName, err)
	}

	return toMutationStruct(msgEmployeeDeleted, deleted), nil
}

func toRecord(s *structpb.Struct) (employee.Record, error) {
	var (
		r   employee.Record
		err error
	)
	targets := []struct {
		key string
		dst *string
	}{
		{recordKeys.Name, &r.Name},
		{recordKeys.EmpID, &r.EmpID},
		{recordKeys.Email, &r.Email},
		{recordKeys.Role, &r.Role},
		{recordKeys.JoiningDate, &r.JoiningDate},
		{recordKeys.Training, &r.Training},
		{recordKeys.ProjectStatus, &r.ProjectStatus},
		{recordKeys.ProjectName, &r.ProjectName},
	}
	for _, t := range targets {
		if *t.dst, err = stringField(s, t.key); err != nil {
			return employee.Record{}, err
		}
	}
	return r, nil
}

// stringField は key の文字列値を返します。欠落と null は空文字として扱います。
func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	case *structpb.Value_NullValue, nil:
		return "", nil
	default:
		return "", fmt.Errorf("%s must be a string", key)
	}
}

func toEmployeeStruct(emp *employee.Employee) *structpb.Struct {
	if emp == nil {
		return nil
	}

	fields := map[string]*structpb.Value{
		"emp_id":         structpb.NewStringValue(emp.EmpID),
		"name":           structpb.NewStringValue(emp.Name),
		"email":          structpb.NewStringValue(emp.Email),
		"role":           structpb.NewStringValue(emp.Role),
		"joining_date":   structpb.NewStringValue(emp.JoiningDate.Format(dateLayout)),
		"training":       structpb.NewStringValue(string(emp.Training)),
		"project_status": structpb.NewNullValue(),
		"project_name":   structpb.NewNullValue(),
		"date_added":     structpb.NewStringValue(emp.DateAdded.UTC().Format(time.RFC3339Nano)),
	}
	if emp.ProjectStatus != nil {
		fields["project_status"] = structpb.NewStringValue(string(*emp.ProjectStatus))
	}
	if emp.ProjectName != nil {
		fields["project_name"] = structpb.NewStringValue(*emp.ProjectName)
	}

	return &structpb.Struct{Fields: fields}
}

func toMutationStruct(message string, emp *employee.Employee) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"message":  structpb.NewStringValue(message),
		"employee": structpb.NewStructValue(toEmployeeStruct(emp)),
	}}
}
