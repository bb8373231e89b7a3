package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

const dateLayout = "2006-01-02"

const (
	msgEmployeeAdded   = "Employee added successfully"
	msgEmployeeUpdated = "Employee updated successfully"
	msgEmployeeDeleted = "Employee deleted successfully"
)

// EmployeeHTTPHandler は社員 REST API のハンドラです。
type EmployeeHTTPHandler struct {
	svc    employee.UseCase
	logger zerolog.Logger
}

// NewEmployeeHTTPHandler は EmployeeHTTPHandler を生成します。
func NewEmployeeHTTPHandler(svc employee.UseCase, logger zerolog.Logger) *EmployeeHTTPHandler {
	return &EmployeeHTTPHandler{svc: svc, logger: logger}
}

// employeeRequest は作成・更新リクエストのボディです。
type employeeRequest struct {
	Name          string `json:"name"`
	EmpID         string `json:"empId"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	JoiningDate   string `json:"joiningDate"`
	Training      string `json:"training"`
	ProjectStatus string `json:"projectStatus"`
	ProjectName   string `json:"projectName"`
}

// employeeResponse は永続化された社員レコードの表現です。
type employeeResponse struct {
	EmpID         string    `json:"emp_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	JoiningDate   string    `json:"joining_date"`
	Training      string    `json:"training"`
	ProjectStatus *string   `json:"project_status"`
	ProjectName   *string   `json:"project_name"`
	DateAdded     time.Time `json:"date_added"`
}

type mutationResponse struct {
	Message  string            `json:"message"`
	Employee *employeeResponse `json:"employee,omitempty"`
}

// Register は社員関連のルートを r に登録します。
func (h *EmployeeHTTPHandler) Register(r gin.IRouter) {
	g := r.Group("/employees")
	g.GET("", h.ListEmployees)
	g.GET("/:id", h.GetEmployee)
	g.POST("", h.CreateEmployee)
	g.PUT("/:id", h.UpdateEmployee)
	g.DELETE("/:id", h.DeleteEmployee)
}

// ListEmployees は GET /employees を処理します。search クエリで部分一致検索します。
func (h *EmployeeHTTPHandler) ListEmployees(c *gin.Context) {
	employees, err := h.svc.ListEmployees(c.Request.Context(), employee.ListEmployeesInput{
		Search: c.Query("search"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]*employeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

// GetEmployee は GET /employees/:id を処理します。
func (h *EmployeeHTTPHandler) GetEmployee(c *gin.Context) {
	found, err := h.svc.GetEmployee(c.Request.Context(), employee.GetEmployeeInput{ID: c.Param("id")})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResponse(found))
}

// CreateEmployee は POST /employees を処理します。
func (h *EmployeeHTTPHandler) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBadBody(c, err)
		return
	}

	created, err := h.svc.CreateEmployee(c.Request.Context(), employee.CreateEmployeeInput{Record: req.toRecord()})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mutationResponse{Message: msgEmployeeAdded, Employee: toEmployeeResponse(created)})
}

// UpdateEmployee は PUT /employees/:id を処理します。
func (h *EmployeeHTTPHandler) UpdateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBadBody(c, err)
		return
	}

	updated, err := h.svc.UpdateEmployee(c.Request.Context(), employee.UpdateEmployeeInput{
		ID:     c.Param("id"),
		Record: req.toRecord(),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, mutationResponse{Message: msgEmployeeUpdated, Employee: toEmployeeResponse(updated)})
}

// DeleteEmployee は DELETE /employees/:id を処理します。
func (h *EmployeeHTTPHandler) DeleteEmployee(c *gin.Context) {
	deleted, err := h.svc.DeleteEmployee(c.Request.Context(), employee.DeleteEmployeeInput{ID: c.Param("id")})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, mutationResponse{Message: msgEmployeeDeleted, Employee: toEmployeeResponse(deleted)})
}

func (r employeeRequest) toRecord() employee.Record {
	return employee.Record{
		Name:          r.Name,
		EmpID:         r.EmpID,
		Email:         r.Email,
		Role:          r.Role,
		JoiningDate:   r.JoiningDate,
		Training:      r.Training,
		ProjectStatus: r.ProjectStatus,
		ProjectName:   r.ProjectName,
	}
}

func toEmployeeResponse(e *employee.Employee) *employeeResponse {
	if e == nil {
		return nil
	}

	resp := &employeeResponse{
		EmpID:       e.EmpID,
		Name:        e.Name,
		Email:       e.Email,
		Role:        e.Role,
		JoiningDate: e.JoiningDate.Format(dateLayout),
		Training:    string(e.Training),
		ProjectName: e.ProjectName,
		DateAdded:   e.DateAdded,
	}
	if e.ProjectStatus != nil {
		status := string(*e.ProjectStatus)
		resp.ProjectStatus = &status
	}
	return resp
}
