package controllers

import (
	"errors"

	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/domain/services"
	"renda-http-service/internal/domain/services/container"
	"renda-http-service/internal/error/code"
	"renda-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceManagerController 定义经理控制器接口
type InterfaceManagerController interface {
	GetManagers()
	GetManager()
	CreateManager()
	UpdateManager()
	DeleteManager()
}

// ManagerController 经理控制器（管理员端）
type ManagerController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewManagerController 创建一个新的经理控制器
func NewManagerController(ctx *gin.Context, container *container.ServiceContainer) *ManagerController {
	return &ManagerController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateManagerRequest 创建经理请求
type CreateManagerRequest struct {
	Username string `json:"username" binding:"required" example:"manager01"`
	Password string `json:"password" binding:"required" example:"Manager@123"`
	Contact  string `json:"contact" binding:"required" example:"13800138000"`
}

// UpdateManagerRequest 更新经理请求
type UpdateManagerRequest struct {
	Username string `json:"username" example:"manager01"`
	Password string `json:"password" example:"NewPassword@123"`
	Contact  string `json:"contact" example:"13800138001"`
}

// HandleManagerFunc 返回一个处理经理管理请求的Gin处理函数
func HandleManagerFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewManagerController(ctx, container)

		switch method {
		case "getManagers":
			controller.GetManagers()
		case "getManager":
			controller.GetManager()
		case "createManager":
			controller.CreateManager()
		case "updateManager":
			controller.UpdateManager()
		case "deleteManager":
			controller.DeleteManager()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetManagers 获取经理列表
// @Summary      获取经理列表
// @Description  分页获取所有楼宇经理列表
// @Tags         Manager
// @Accept       json
// @Produce      json
// @Param        page query int false "页码, 默认为1"
// @Param        page_size query int false "每页条数, 默认为10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/managers [get]
// @Security     BearerAuth
func (c *ManagerController) GetManagers() {
	page, pageSize := getPagination(c.Ctx)

	managerService := c.Container.GetService("manager").(services.InterfaceManagerService)
	managers, total, err := managerService.GetAllManagers(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询经理列表失败: "+err.Error(), nil)
		return
	}

	var managerResponses []gin.H
	for _, manager := range managers {
		managerResponses = append(managerResponses, gin.H{
			"id":         manager.ID,
			"username":   manager.Username,
			"contact":    manager.Contact,
			"created_at": manager.CreatedAt,
			"updated_at": manager.UpdatedAt,
		})
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        managerResponses,
	})
}

// 2. GetManager 获取经理详情
// @Summary      获取经理详情
// @Description  根据ID获取特定经理的详细信息，包含其名下楼宇
// @Tags         Manager
// @Accept       json
// @Produce      json
// @Param        id path int true "经理ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/managers/{id} [get]
// @Security     BearerAuth
func (c *ManagerController) GetManager() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	managerService := c.Container.GetService("manager").(services.InterfaceManagerService)
	manager, err := managerService.GetManagerByID(id)
	if err != nil {
		response.NotFound(c.Ctx, "经理不存在")
		return
	}

	var buildings []gin.H
	for _, b := range manager.Buildings {
		buildings = append(buildings, gin.H{
			"id":       b.ID,
			"name":     b.Name,
			"location": b.Location,
		})
	}

	response.Success(c.Ctx, gin.H{
		"id":         manager.ID,
		"username":   manager.Username,
		"contact":    manager.Contact,
		"buildings":  buildings,
		"created_at": manager.CreatedAt,
		"updated_at": manager.UpdatedAt,
	})
}

// 3. CreateManager 创建经理
// @Summary      创建经理
// @Description  创建新的楼宇经理账号
// @Tags         Manager
// @Accept       json
// @Produce      json
// @Param        request body CreateManagerRequest true "创建经理请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/managers [post]
// @Security     BearerAuth
func (c *ManagerController) CreateManager() {
	var req CreateManagerRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	manager := models.Manager{
		Username: req.Username,
		Password: req.Password,
		Contact:  req.Contact,
	}

	managerService := c.Container.GetService("manager").(services.InterfaceManagerService)
	if err := managerService.CreateManager(&manager); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrManagerAlreadyExist, "创建经理失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":       manager.ID,
		"username": manager.Username,
		"contact":  manager.Contact,
	})
}

// 4. UpdateManager 更新经理
// @Summary      更新经理
// @Description  更新经理的用户名、联系方式或密码
// @Tags         Manager
// @Accept       json
// @Produce      json
// @Param        id path int true "经理ID"
// @Param        request body UpdateManagerRequest true "更新经理请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/managers/{id} [put]
// @Security     BearerAuth
func (c *ManagerController) UpdateManager() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateManagerRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

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

	managerService := c.Container.GetService("manager").(services.InterfaceManagerService)
	manager, err := managerService.UpdateManager(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "经理不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":       manager.ID,
		"username": manager.Username,
		"contact":  manager.Contact,
	})
}

// 5. DeleteManager 删除经理
// @Summary      删除经理
// @Description  删除指定的经理账号，名下仍有楼宇的经理无法删除
// @Tags         Manager
// @Accept       json
// @Produce      json
// @Param        id path int true "经理ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/managers/{id} [delete]
// @Security     BearerAuth
func (c *ManagerController) DeleteManager() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	managerService := c.Container.GetService("manager").(services.InterfaceManagerService)
	if err := managerService.DeleteManager(id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "经理不存在")
			return
		}
		if errors.Is(err, services.ErrManagerProtected) {
			response.Fail(c.Ctx, code.ErrManagerProtected, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除经理失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}
