package handler

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

type stubEmployeeUseCase struct {
	listInput employee.ListEmployeesInput
	listOut   []*employee.Employee
	listErr   error

	getInput employee.GetEmployeeInput
	getOut   *employee.Employee
	getErr   error

	createInput employee.CreateEmployeeInput
	createOut   *employee.Employee
	createErr   error

	updateInput employee.UpdateEmployeeInput
	updateOut   *employee.Employee
	updateErr   error

	deleteInput employee.DeleteEmployeeInput
	deleteOut   *employee.Employee
	deleteErr   error
}

func (s *stubEmployeeUseCase) ListEmployees(ctx context.Context, in employee.ListEmployeesInput) ([]*employee.Employee, error) {
	s.listInput = in
	return s.listOut, s.listErr
}

func (s *stubEmployeeUseCase) GetEmployee(ctx context.Context, in employee.GetEmployeeInput) (*employee.Employee, error) {
	s.getInput = in
	return s.getOut, s.getErr
}

func (s *stubEmployeeUseCase) CreateEmployee(ctx context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error) {
	s.createInput = in
	return s.createOut, s.createErr
}

func (s *stubEmployeeUseCase) UpdateEmployee(ctx context.Context, in employee.UpdateEmployeeInput) (*employee.Employee, error) {
	s.updateInput = in
	return s.updateOut, s.updateErr
}

func (s *stubEmployeeUseCase) DeleteEmployee(ctx context.Context, in employee.DeleteEmployeeInput) (*employee.Employee, error) {
	s.deleteInput = in
	return s.deleteOut, s.deleteErr
}

func sampleEmployee() *employee.Employee {
	ps := employee.ProjectInProject
	name := "Apollo Migration"
	return &employee.Employee{
		EmpID:         "ATS0123",
		Name:          "Alice Smith",
		Email:         "alice.smith@astrolitetech.com",
		Role:          "Software Engineer",
		JoiningDate:   time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
		Training:      employee.TrainingDone,
		ProjectStatus: &ps,
		ProjectName:   &name,
		DateAdded:     time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func benchedEmployee() *employee.Employee {
	return &employee.Employee{
		EmpID:       "ATS0200",
		Name:        "Bob Stone",
		Email:       "bob@astrolitetech.com",
		Role:        "Data Analyst",
		JoiningDate: time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
		Training:    employee.TrainingOngoing,
		DateAdded:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()

	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("failed to build struct: %v", err)
	}
	return s
}

func createRequest(t *testing.T) *structpb.Struct {
	return mustStruct(t, map[string]any{
		"name":          "Alice Smith",
		"empId":         "ATS0123",
		"email":         "alice.smith@astrolitetech.com",
		"role":          "Software Engineer",
		"joiningDate":   "2020-03-01",
		"training":      "done",
		"projectStatus": "in-project",
		"projectName":   "Apollo Migration",
	})
}

func TestEmployeeGrpcHandler_CreateEmployee_Success(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{createOut: sampleEmployee()}
	h := NewEmployeeGrpcHandler(stub, zerolog.Nop())

	resp, err := h.CreateEmployee(context.Background(), createRequest(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := employee.Record{
		Name:          "Alice Smith",
		EmpID:         "ATS0123",
		Email:         "alice.smith@astrolitetech.com",
		Role:          "Software Engineer",
		JoiningDate:   "2020-03-01",
		Training:      "done",
		ProjectStatus: "in-project",
		ProjectName:   "Apollo Migration",
	}
	if !reflect.DeepEqual(stub.createInput.Record, want) {
		t.Fatalf("unexpected record: %+v", stub.createInput.Record)
	}

	got := resp.AsMap()
	if got["message"] != "Employee added successfully" {
		t.Errorf("unexpected message: %v", got["message"])
	}
	emp := got["employee"].(map[string]any)
	if emp["emp_id"] != "ATS0123" || emp["joining_date"] != "2020-03-01" || emp["project_name"] != "Apollo Migration" {
		t.Errorf("unexpected employee: %v", emp)
	}
	if emp["date_added"] != "2025-01-10T09:00:00Z" {
		t.Errorf("unexpected date_added: %v", emp["date_added"])
	}
}

func TestEmployeeGrpcHandler_CreateEmployee_NonStringField(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{}
	h := NewEmployeeGrpcHandler(stub, zerolog.Nop())

	req := mustStruct(t, map[string]any{"name": "Alice Smith", "empId": 123})
	_, err := h.CreateEmployee(context.Background(), req)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if !strings.Contains(status.Convert(err).Message(), "empId") {
		t.Fatalf("expected message to name the field, got %q", status.Convert(err).Message())
	}
	if stub.createInput.Record != (employee.Record{}) {
		t.Fatal("use case should not be called")
	}
}

func TestEmployeeGrpcHandler_CreateEmployee_NullFieldsAreEmpty(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{createOut: benchedEmployee()}
	h := NewEmployeeGrpcHandler(stub, zerolog.Nop())

	req := mustStruct(t, map[string]any{"name": "Bob Stone", "projectStatus": nil})
	if _, err := h.CreateEmployee(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.createInput.Record.ProjectStatus != "" || stub.createInput.Record.Name != "Bob Stone" {
		t.Fatalf("unexpected record: %+v", stub.createInput.Record)
	}
}

func TestEmployeeGrpcHandler_CreateEmployee_ValidationError(t *testing.T) {
	t.Parallel()

	msgs := []string{"first problem", "second problem"}
	h := NewEmployeeGrpcHandler(&stubEmployeeUseCase{createErr: &employee.ValidationError{Messages: msgs}}, zerolog.Nop())

	_, err := h.CreateEmployee(context.Background(), createRequest(t))
	st := status.Convert(err)
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", st.Code())
	}

	got := fieldViolations(t, st)
	if len(got) != 2 || got[0].GetDescription() != msgs[0] || got[1].GetDescription() != msgs[1] {
		t.Fatalf("unexpected violations: %v", got)
	}
}

func TestEmployeeGrpcHandler_CreateEmployee_Conflict(t *testing.T) {
	t.Parallel()

	conflict := &employee.ConflictError{Fields: []employee.Field{employee.FieldEmpID, employee.FieldEmail}}
	h := NewEmployeeGrpcHandler(&stubEmployeeUseCase{createErr: conflict}, zerolog.Nop())

	_, err := h.CreateEmployee(context.Background(), createRequest(t))
	st := status.Convert(err)
	if st.Code() != codes.AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", st.Code())
	}
	if st.Message() != "Employee ID already exists." {
		t.Fatalf("unexpected message: %q", st.Message())
	}

	got := fieldViolations(t, st)
	if len(got) != 2 || got[0].GetField() != "emp_id" || got[1].GetField() != "email" {
		t.Fatalf("unexpected violations: %v", got)
	}
	if got[1].GetDescription() != "Email already exists." {
		t.Fatalf("unexpected description: %q", got[1].GetDescription())
	}
}

func TestEmployeeGrpcHandler_GetEmployee(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{getOut: benchedEmployee()}
	h := NewEmployeeGrpcHandler(stub, zerolog.Nop())

	resp, err := h.GetEmployee(context.Background(), wrapperspb.String("ATS0200"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.getInput.ID != "ATS0200" {
		t.Fatalf("unexpected id: %s", stub.getInput.ID)
	}

	got := resp.AsMap()
	if got["project_status"] != nil || got["project_name"] != nil {
		t.Fatalf("expected null project fields, got %v", got)
	}
	if _, ok := resp.GetFields()["project_status"].GetKind().(*structpb.Value_NullValue); !ok {
		t.Fatal("expected project_status to be present as null")
	}
}

func TestEmployeeGrpcHandler_GetEmployee_NotFound(t *testing.T) {
	t.Parallel()

	h := NewEmployeeGrpcHandler(&stubEmployeeUseCase{getErr: employee.ErrEmployeeNotFound}, zerolog.Nop())

	_, err := h.GetEmployee(context.Background(), wrapperspb.String("ATS0999"))
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestEmployeeGrpcHandler_GetEmployee_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewEmployeeGrpcHandler(&stubEmployeeUseCase{getErr: employee.ErrInvalidID}, zerolog.Nop())

	_, err := h.GetEmployee(context.Background(), wrapperspb.String(""))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestEmployeeGrpcHandler_ListEmployees(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{listOut: []*employee.Employee{benchedEmployee(), sampleEmployee()}}
	h := NewEmployeeGrpcHandler(stub, zerolog.Nop())

	resp, err := h.ListEmployees(context.Background(), wrapperspb.String("st"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.listInput.Search != "st" {
		t.Fatalf("unexpected search: %q", stub.listInput.Search)
	}
	if len(resp.GetValues()) != 2 {
		t.Fatalf("expected 2 values, got %d", len(resp.GetValues()))
	}
	first := resp.GetValues()[0].GetStructValue().AsMap()
	if first["emp_id"] != "ATS0200" {
		t.Fatalf("order must be preserved, got %v", first["emp_id"])
	}
}

func TestEmployeeGrpcHandler_ListEmployees_NilRequest(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{}
	h := NewEmployeeGrpcHandler(stub, zerolog.Nop())

	resp, err := h.ListEmployees(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.listInput.Search != "" || len(resp.GetValues()) != 0 {
		t.Fatalf("unexpected result: %v", resp)
	}
}

func TestEmployeeGrpcHandler_ListEmployees_InternalIsOpaque(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := NewEmployeeGrpcHandler(&stubEmployeeUseCase{listErr: errors.New("password authentication failed for user \"admin\"")}, zerolog.New(&logs))

	_, err := h.ListEmployees(context.Background(), wrapperspb.String(""))
	st := status.Convert(err)
	if st.Code() != codes.Internal {
		t.Fatalf("expected Internal, got %v", st.Code())
	}
	if st.Message() != "Internal server error" {
		t.Fatalf("internal details leaked: %q", st.Message())
	}
	if !strings.Contains(logs.String(), "password authentication failed") {
		t.Fatalf("expected error to be logged, got %q", logs.String())
	}
}

func TestEmployeeGrpcHandler_UpdateEmployee(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{updateOut: sampleEmployee()}
	h := NewEmployeeGrpcHandler(stub, zerolog.Nop())

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":       structpb.NewStringValue("ATS0456"),
		"employee": structpb.NewStructValue(createRequest(t)),
	}}
	resp, err := h.UpdateEmployee(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.updateInput.ID != "ATS0456" || stub.updateInput.Record.EmpID != "ATS0123" {
		t.Fatalf("unexpected input: %+v", stub.updateInput)
	}
	if resp.AsMap()["message"] != "Employee updated successfully" {
		t.Fatalf("unexpected response: %v", resp.AsMap())
	}
}

func TestEmployeeGrpcHandler_UpdateEmployee_MissingEmployee(t *testing.T) {
	t.Parallel()

	h := NewEmployeeGrpcHandler(&stubEmployeeUseCase{}, zerolog.Nop())

	req := mustStruct(t, map[string]any{"id": "ATS0456"})
	_, err := h.UpdateEmployee(context.Background(), req)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestEmployeeGrpcHandler_UpdateEmployee_NotFound(t *testing.T) {
	t.Parallel()

	h := NewEmployeeGrpcHandler(&stubEmployeeUseCase{updateErr: employee.ErrEmployeeNotFound}, zerolog.Nop())

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":       structpb.NewStringValue("ATS0456"),
		"employee": structpb.NewStructValue(createRequest(t)),
	}}
	_, err := h.UpdateEmployee(context.Background(), req)
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestEmployeeGrpcHandler_DeleteEmployee(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{deleteOut: sampleEmployee()}
	h := NewEmployeeGrpcHandler(stub, zerolog.Nop())

	resp, err := h.DeleteEmployee(context.Background(), wrapperspb.String("ATS0123"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.deleteInput.ID != "ATS0123" {
		t.Fatalf("unexpected id: %s", stub.deleteInput.ID)
	}
	got := resp.AsMap()
	if got["message"] != "Employee deleted successfully" || got["employee"] == nil {
		t.Fatalf("unexpected response: %v", got)
	}
}

func TestEmployeeGrpcHandler_DeleteEmployee_NotFound(t *testing.T) {
	t.Parallel()

	h := NewEmployeeGrpcHandler(&stubEmployeeUseCase{deleteErr: employee.ErrEmployeeNotFound}, zerolog.Nop())

	_, err := h.DeleteEmployee(context.Background(), wrapperspb.String("ATS0123"))
	st := status.Convert(err)
	if st.Code() != codes.NotFound || st.Message() != "Employee not found" {
		t.Fatalf("unexpected status: %v", st)
	}
}

func fieldViolations(t *testing.T, st *status.Status) []*errdetails.BadRequest_FieldViolation {
	t.Helper()

	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			return br.GetFieldViolations()
		}
	}
	t.Fatalf("status has no BadRequest details: %v", st.Details())
	return nil
}
