package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
	"github.com/unifiedhq/usp-api/pkg/response"
)

type referenceService interface {
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*models.Branch, error)
	ListBranches(ctx context.Context, page, pageSize int) ([]models.Branch, *models.Pagination, error)
	CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*models.Role, error)
	ListRoles(ctx context.Context, page, pageSize int) ([]models.Role, *models.Pagination, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error)
	CreateResource(ctx context.Context, req dto.CreateResourceRequest) (*models.Resource, error)
	ListResources(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, *models.Pagination, error)
}

// ReferenceHandler exposes REST endpoints for reference data.
type ReferenceHandler struct {
	service referenceService
}

// NewReferenceHandler constructs the handler.
func NewReferenceHandler(service referenceService) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// CreateBranch godoc
// @Summary Register a branch
// @Tags Reference
// @Accept json
// @Produce json
// @Param payload body dto.CreateBranchRequest true "Branch payload"
// @Success 201 {object} response.Envelope
// @Router /branches [post]
func (h *ReferenceHandler) CreateBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid branch payload"))
		return
	}
	branch, err := h.service.CreateBranch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, branch, nil)
}

// ListBranches godoc
// @Summary List branches
// @Tags Reference
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /branches [get]
func (h *ReferenceHandler) ListBranches(c *gin.Context) {
	page, limit := paginationParams(c)
	branches, pagination, err := h.service.ListBranches(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, branches, pagination)
}

// CreateRole godoc
// @Summary Register a role
// @Tags Reference
// @Accept json
// @Produce json
// @Param payload body dto.CreateRoleRequest true "Role payload"
// @Success 201 {object} response.Envelope
// @Router /roles [post]
func (h *ReferenceHandler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid role payload"))
		return
	}
	role, err := h.service.CreateRole(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, role, nil)
}

// ListRoles godoc
// @Summary List roles
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roles [get]
func (h *ReferenceHandler) ListRoles(c *gin.Context) {
	page, limit := paginationParams(c)
	roles, pagination, err := h.service.ListRoles(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roles, pagination)
}

// CreateUser godoc
// @Summary Register a user
// @Tags Reference
// @Accept json
// @Produce json
// @Param payload body dto.CreateUserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Router /users [post]
func (h *ReferenceHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user payload"))
		return
	}
	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, user, nil)
}

// ListUsers godoc
// @Summary List users
// @Tags Reference
// @Produce json
// @Param branch_code query string false "Branch code"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *ReferenceHandler) ListUsers(c *gin.Context) {
	page, limit := paginationParams(c)
	filter := models.UserFilter{
		BranchCode: c.Query("branch_code"),
		Page:       page,
		PageSize:   limit,
	}
	users, pagination, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, pagination)
}

// CreateResource godoc
// @Summary Register a resource
// @Tags Reference
// @Accept json
// @Produce json
// @Param payload body dto.CreateResourceRequest true "Resource payload"
// @Success 201 {object} response.Envelope
// @Router /resources [post]
func (h *ReferenceHandler) CreateResource(c *gin.Context) {
	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid resource payload"))
		return
	}
	resource, err := h.service.CreateResource(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, resource, nil)
}

// ListResources godoc
// @Summary List resources
// @Tags Reference
// @Produce json
// @Param branch_code query string false "Branch code"
// @Param type query string false "Resource type"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /resources [get]
func (h *ReferenceHandler) ListResources(c *gin.Context) {
	page, limit := paginationParams(c)
	filter := models.ResourceFilter{
		BranchCode: c.Query("branch_code"),
		Type:       models.ResourceType(c.Query("type")),
		Page:       page,
		PageSize:   limit,
	}
	resources, pagination, err := h.service.ListResources(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resources, pagination)
}
