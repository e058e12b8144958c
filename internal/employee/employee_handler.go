package employee

import (
	"context"
	"net/http"
	"strconv"

	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	mediaTypeJSON       = "application/json"
	mediaTypeMergePatch = "application/merge-patch+json"
)

// Handler validates request shape and identity before delegating to the
// service. Failures are attached to the gin context and rendered by
// middleware.ErrorHandler.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	h.logger.Debug("http create employee")

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.MapValidationError(err))
		return
	}
	if req.ID != nil {
		_ = c.Error(employeeerrors.ErrIDNotAllowed)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Location", "/api/employees/"+resp.ID)
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http update employee", zap.String("employee_id", id))

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.MapValidationError(err))
		return
	}
	if err := h.checkIdentity(ctx, id, req.ID); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.service.Replace(ctx, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Patch(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http patch employee", zap.String("employee_id", id))

	switch c.ContentType() {
	case mediaTypeJSON, mediaTypeMergePatch:
	default:
		_ = c.Error(employeeerrors.ErrUnsupportedPatchMediaType)
		return
	}

	var req PatchEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.MapValidationError(err))
		return
	}
	if err := h.checkIdentity(ctx, id, req.ID); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.service.PartialUpdate(ctx, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	status, err := strconv.ParseBool(c.DefaultQuery("status", "true"))
	if err != nil {
		_ = c.Error(employeeerrors.ErrInvalidStatusFilter)
		return
	}
	h.logger.Debug("http list employees", zap.Bool("status", status))

	resp, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http get employee by id", zap.String("employee_id", id))

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http delete employee", zap.String("employee_id", id))

	if err := h.service.SoftDelete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	response.NoContent(c)
}

// checkIdentity requires a body id equal to the path id and an existing
// target record.
func (h *Handler) checkIdentity(ctx context.Context, pathID string, bodyID *string) error {
	if bodyID == nil {
		return employeeerrors.ErrInvalidID
	}
	if pathID == "" || pathID != *bodyID {
		return employeeerrors.ErrInvalidID
	}

	exists, err := h.service.Exists(ctx, pathID)
	if err != nil {
		return err
	}
	if !exists {
		return employeeerrors.ErrEntityNotFound
	}
	return nil
}
