package controllers

import (
	"errors"

	"renda-http-service/internal/app/middleware"
	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/domain/services"
	"renda-http-service/internal/domain/services/container"
	"renda-http-service/internal/error/code"
	"renda-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceTenantController 定义租户控制器接口
type InterfaceTenantController interface {
	GetTenants()
	GetTenant()
	CreateTenant()
	UpdateTenant()
	DeleteTenant()
	GetMyProfile()
}

// TenantController 租户控制器（经理端为主）
type TenantController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTenantController 创建一个新的租户控制器
func NewTenantController(ctx *gin.Context, container *container.ServiceContainer) *TenantController {
	return &TenantController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateTenantRequest 创建租户请求；可同时指定入住房屋
type CreateTenantRequest struct {
	Username string `json:"username" binding:"required" example:"tenant01"`
	Password string `json:"password" binding:"required" example:"Tenant@123"`
	Contact  string `json:"contact" binding:"required" example:"13900139000"`
	UnitID   *uint  `json:"unit_id" example:"5"`
}

// UpdateTenantRequest 更新租户请求
type UpdateTenantRequest struct {
	Username string `json:"username" example:"tenant01"`
	Password string `json:"password" example:"NewPassword@123"`
	Contact  string `json:"contact" example:"13900139001"`
}

// HandleTenantFunc 返回一个处理租户管理请求的Gin处理函数
func HandleTenantFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTenantController(ctx, container)

		switch method {
		case "getTenants":
			controller.GetTenants()
		case "getTenant":
			controller.GetTenant()
		case "createTenant":
			controller.CreateTenant()
		case "updateTenant":
			controller.UpdateTenant()
		case "deleteTenant":
			controller.DeleteTenant()
		case "getMyProfile":
			controller.GetMyProfile()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func tenantBrief(t models.Tenant) gin.H {
	return gin.H{
		"id":         t.ID,
		"username":   t.Username,
		"contact":    t.Contact,
		"manager_id": t.ManagerID,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

// 1. GetTenants 获取名下租户列表（经理端）
// @Summary      获取名下租户列表
// @Description  分页获取当前登录经理名下的全部租户
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        page query int false "页码, 默认为1"
// @Param        page_size query int false "每页条数, 默认为10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /manager/tenants [get]
// @Security     BearerAuth
func (c *TenantController) GetTenants() {
	page, pageSize := getPagination(c.Ctx)
	managerID := middleware.GetPrincipalID(c.Ctx)

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenants, total, err := tenantService.GetTenantsByManager(managerID, page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询租户列表失败: "+err.Error(), nil)
		return
	}

	var tenantResponses []gin.H
	for _, t := range tenants {
		tenantResponses = append(tenantResponses, tenantBrief(t))
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        tenantResponses,
	})
}

// 2. GetTenant 获取租户详情（经理端）
// @Summary      获取租户详情
// @Description  获取当前登录经理名下某个租户的详细信息，非本人名下的租户按不存在处理
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        id path int true "租户ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/tenants/{id} [get]
// @Security     BearerAuth
func (c *TenantController) GetTenant() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenant, err := tenantService.GetManagerTenant(managerID, id)
	if err != nil {
		response.NotFound(c.Ctx, "租户不存在")
		return
	}

	brief := tenantBrief(*tenant)

	// 附带当前入住房屋信息
	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)
	if unit, err := unitService.GetUnitByTenant(tenant.ID); err == nil {
		brief["unit"] = unitBrief(*unit)
	}

	response.Success(c.Ctx, brief)
}

// 3. CreateTenant 创建租户（经理端）
// @Summary      创建租户
// @Description  在当前登录经理名下创建新租户，可同时安排入住某间空闲房屋
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        request body CreateTenantRequest true "创建租户请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/tenants [post]
// @Security     BearerAuth
func (c *TenantController) CreateTenant() {
	var req CreateTenantRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	tenant := models.Tenant{
		Username: req.Username,
		Password: req.Password,
		Contact:  req.Contact,
	}

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	if err := tenantService.CreateTenant(managerID, &tenant, req.UnitID); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "房屋不存在")
			return
		}
		if errors.Is(err, services.ErrUnitOccupied) {
			response.Fail(c.Ctx, code.ErrUnitOccupied, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrTenantAlreadyExist, "创建租户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, tenantBrief(tenant))
}

// 4. UpdateTenant 更新租户（经理端）
// @Summary      更新租户
// @Description  更新租户的用户名、联系方式或密码
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        id path int true "租户ID"
// @Param        request body UpdateTenantRequest true "更新租户请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/tenants/{id} [put]
// @Security     BearerAuth
func (c *TenantController) UpdateTenant() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateTenantRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Password != "" {
		updates["password"] = req.Password
	}
	if req.Contact != "" {
		updates["contact"] = req.Contact
	}

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenant, err := tenantService.UpdateTenant(managerID, id, updates)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "租户不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, tenantBrief(*tenant))
}

// 5. DeleteTenant 删除租户（经理端）
// @Summary      删除租户
// @Description  删除租户并释放其入住的房屋，名下合同与缴费记录一并删除
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        id path int true "租户ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/tenants/{id} [delete]
// @Security     BearerAuth
func (c *TenantController) DeleteTenant() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	if err := tenantService.DeleteTenant(managerID, id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "租户不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除租户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// 6. GetMyProfile 获取当前租户个人信息（租户端）
// @Summary      获取个人信息
// @Description  获取当前登录租户的个人资料
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tenant/profile [get]
// @Security     BearerAuth
func (c *TenantController) GetMyProfile() {
	tenantID := middleware.GetPrincipalID(c.Ctx)

	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenant, err := tenantService.GetTenantByID(tenantID)
	if err != nil {
		response.NotFound(c.Ctx, "租户不存在")
		return
	}

	response.Success(c.Ctx, tenantBrief(*tenant))
}
