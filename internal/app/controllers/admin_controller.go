package controllers

import (
	"errors"
	"strconv"

	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/domain/services"
	"renda-http-service/internal/domain/services/container"
	"renda-http-service/internal/error/code"
	"renda-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAdminController 定义管理员控制器接口
type InterfaceAdminController interface {
	GetAdmins()
	GetAdmin()
	CreateAdmin()
	UpdateAdmin()
	DeleteAdmin()
	GetDashboardStats()
}

// AdminController 管理员控制器
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController 创建一个新的管理员控制器
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required" example:"admin123"`
	Password string `json:"password" binding:"required" example:"Admin@123"`
	Email    string `json:"email" binding:"omitempty,email" example:"admin@example.com"`
}

// UpdateAdminRequest 更新管理员请求
type UpdateAdminRequest struct {
	Email    string `json:"email" binding:"omitempty,email" example:"admin@example.com"`
	Password string `json:"password" example:"NewPassword@123"`
	Status   string `json:"status" example:"active"`
}

// HandleAdminFunc 返回一个处理管理员请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "getAdmins":
			controller.GetAdmins()
		case "getAdmin":
			controller.GetAdmin()
		case "createAdmin":
			controller.CreateAdmin()
		case "updateAdmin":
			controller.UpdateAdmin()
		case "deleteAdmin":
			controller.DeleteAdmin()
		case "getDashboardStats":
			controller.GetDashboardStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetAdmins 获取管理员列表
// @Summary      获取管理员列表
// @Description  分页获取所有系统管理员列表
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        page query int false "页码, 默认为1"
// @Param        page_size query int false "每页条数, 默认为10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/admins [get]
// @Security     BearerAuth
func (c *AdminController) GetAdmins() {
	page, pageSize := getPagination(c.Ctx)

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admins, total, err := adminService.GetAllAdmins(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询管理员列表失败: "+err.Error(), nil)
		return
	}

	// 不返回密码等敏感信息
	var adminResponses []gin.H
	for _, admin := range admins {
		adminResponses = append(adminResponses, gin.H{
			"id":         admin.ID,
			"username":   admin.Username,
			"email":      admin.Email,
			"status":     admin.Status,
			"created_at": admin.CreatedAt,
			"updated_at": admin.UpdatedAt,
		})
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        adminResponses,
	})
}

// 2. GetAdmin 获取管理员详情
// @Summary      获取管理员详情
// @Description  根据ID获取特定管理员的详细信息
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "管理员ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/admins/{id} [get]
// @Security     BearerAuth
func (c *AdminController) GetAdmin() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.GetAdminByID(id)
	if err != nil {
		response.NotFound(c.Ctx, "管理员不存在")
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":         admin.ID,
		"username":   admin.Username,
		"email":      admin.Email,
		"status":     admin.Status,
		"created_at": admin.CreatedAt,
		"updated_at": admin.UpdatedAt,
	})
}

// 3. CreateAdmin 创建管理员
// @Summary      创建管理员
// @Description  创建新的系统管理员账号
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body CreateAdminRequest true "创建管理员请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/admins [post]
// @Security     BearerAuth
func (c *AdminController) CreateAdmin() {
	var req CreateAdminRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	admin := models.Admin{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.CreateAdmin(&admin); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, "创建管理员失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
	})
}

// 4. UpdateAdmin 更新管理员
// @Summary      更新管理员
// @Description  更新管理员的邮箱、状态或密码
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "管理员ID"
// @Param        request body UpdateAdminRequest true "更新管理员请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/admins/{id} [put]
// @Security     BearerAuth
func (c *AdminController) UpdateAdmin() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateAdminRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Password != "" {
		updates["password"] = req.Password
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.UpdateAdmin(id, updates)
	if err != nil {
		response.NotFound(c.Ctx, "管理员不存在")
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"email":    admin.Email,
		"status":   admin.Status,
	})
}

// 5. DeleteAdmin 删除管理员
// @Summary      删除管理员
// @Description  删除指定的管理员账号，系统至少保留一名管理员
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "管理员ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/admins/{id} [delete]
// @Security     BearerAuth
func (c *AdminController) DeleteAdmin() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.DeleteAdmin(id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "管理员不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// 6. GetDashboardStats 获取仪表盘统计数据
// @Summary      获取仪表盘统计数据
// @Description  返回经理、楼宇、房屋、租户、合同、缴费与维修工单的总量统计
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/dashboard [get]
// @Security     BearerAuth
func (c *AdminController) GetDashboardStats() {
	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	stats, err := adminService.GetDashboardStats()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询统计数据失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}

// getPagination 从查询参数中解析分页参数
func getPagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// getIDParam 解析URL中的ID参数，解析失败时直接写入错误响应
func getIDParam(ctx *gin.Context) (uint, bool) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(ctx, "无效的ID参数")
		return 0, false
	}
	return uint(id), true
}
