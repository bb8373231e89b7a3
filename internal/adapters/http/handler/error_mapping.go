package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

const (
	msgNotFound       = "Employee not found"
	msgInternalError  = "Internal server error"
	msgInvalidRequest = "Request body must be a JSON employee object."
)

type errorsResponse struct {
	Errors []string `json:"errors"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError はユースケースのエラーを HTTP ステータスとボディに変換します。
// 内部エラーの詳細はログにのみ残し、クライアントには返しません。
func (h *EmployeeHTTPHandler) writeError(c *gin.Context, err error) {
	var (
		validationErr *employee.ValidationError
		conflictErr   *employee.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, errorsResponse{Errors: validationErr.Messages})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusBadRequest, errorsResponse{Errors: conflictErr.Messages()})
	case errors.Is(err, employee.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: msgNotFound})
	case errors.Is(err, employee.ErrInvalidID):
		c.JSON(http.StatusBadRequest, errorsResponse{Errors: []string{err.Error()}})
	default:
		_ = c.Error(err)
		h.logger.Error().
			Err(err).
			Str("request_id", requestIDFrom(c)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("employee request failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternalError})
	}
}

func (h *EmployeeHTTPHandler) writeBadBody(c *gin.Context, err error) {
	h.logger.Debug().Err(err).Str("request_id", requestIDFrom(c)).Msg("invalid request body")
	c.JSON(http.StatusBadRequest, errorsResponse{Errors: []string{msgInvalidRequest}})
}
