package handler

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

const (
	msgValidationFailed = "validation failed"
	msgNotFound         = "Employee not found"
	msgInternalError    = "Internal server error"
)

// toStatusError はユースケースのエラーを gRPC ステータスに変換します。
// Internal の詳細はログにのみ残します。
func (h *EmployeeGrpcHandler) toStatusError(ctx context.Context, method string, err error) error {
	st := toStatus(err)
	if st.Code() == codes.Internal {
		h.logger.Error().Ctx(ctx).Err(err).Str("method", method).Msg("employee rpc failed")
	}
	return st.Err()
}

func toStatus(err error) *status.Status {
	var (
		validationErr *employee.ValidationError
		conflictErr   *employee.ConflictError
	)

	switch {
	case err == nil:
		return status.New(codes.OK, "")
	case errors.As(err, &validationErr):
		violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(validationErr.Messages))
		for _, msg := range validationErr.Messages {
			violations = append(violations, &errdetails.BadRequest_FieldViolation{
				Field:       "employee",
				Description: msg,
			})
		}
		return withBadRequest(codes.InvalidArgument, msgValidationFailed, violations)
	case errors.As(err, &conflictErr):
		msgs := conflictErr.Messages()
		if len(msgs) == 0 || len(msgs) != len(conflictErr.Fields) {
			return status.New(codes.AlreadyExists, conflictErr.Error())
		}
		violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(msgs))
		for i, msg := range msgs {
			violations = append(violations, &errdetails.BadRequest_FieldViolation{
				Field:       string(conflictErr.Fields[i]),
				Description: msg,
			})
		}
		return withBadRequest(codes.AlreadyExists, msgs[0], violations)
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return status.New(codes.NotFound, msgNotFound)
	case errors.Is(err, employee.ErrInvalidID):
		return status.New(codes.InvalidArgument, err.Error())
	default:
		return status.New(codes.Internal, msgInternalError)
	}
}

func withBadRequest(code codes.Code, msg string, violations []*errdetails.BadRequest_FieldViolation) *status.Status {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations})
	if err != nil {
		return st
	}
	return detailed
}
