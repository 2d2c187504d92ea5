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

// InterfaceMaintenanceController 定义维修工单控制器接口
type InterfaceMaintenanceController interface {
	GetManagerRequests()
	CreateManagerRequest()
	UpdateStatus()
	DeleteRequest()
	GetMyRequests()
	CreateMyRequest()
}

// MaintenanceController 维修工单控制器
type MaintenanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMaintenanceController 创建一个新的维修工单控制器
func NewMaintenanceController(ctx *gin.Context, container *container.ServiceContainer) *MaintenanceController {
	return &MaintenanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateTenantMaintenanceRequest 租户报修请求，工单自动挂在其入住的房屋上
type CreateTenantMaintenanceRequest struct {
	Type        string `json:"type" binding:"required" example:"electrical"`
	Description string `json:"description" example:"插座没电"`
}

// CreateManagerMaintenanceRequest 经理创建工单请求，可挂在房屋或整栋楼宇上
type CreateManagerMaintenanceRequest struct {
	Type        string `json:"type" binding:"required" example:"general"`
	Description string `json:"description" example:"电梯年检"`
	TargetType  string `json:"target_type" binding:"required" example:"building"`
	TargetID    uint   `json:"target_id" binding:"required" example:"1"`
}

// UpdateMaintenanceStatusRequest 更新工单状态请求
type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" binding:"required" example:"in_progress"`
}

// HandleMaintenanceFunc 返回一个处理维修工单请求的Gin处理函数
func HandleMaintenanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMaintenanceController(ctx, container)

		switch method {
		case "getManagerRequests":
			controller.GetManagerRequests()
		case "createManagerRequest":
			controller.CreateManagerRequest()
		case "updateStatus":
			controller.UpdateStatus()
		case "deleteRequest":
			controller.DeleteRequest()
		case "getMyRequests":
			controller.GetMyRequests()
		case "createMyRequest":
			controller.CreateMyRequest()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func maintenanceBrief(m models.MaintenanceRequest) gin.H {
	return gin.H{
		"id":             m.ID,
		"type":           m.Type,
		"description":    m.Description,
		"status":         m.Status,
		"requested_at":   m.RequestedAt,
		"target_type":    m.TargetType,
		"target_id":      m.TargetID,
		"requester_role": m.RequesterRole,
		"requester_id":   m.RequesterID,
	}
}

// 1. GetManagerRequests 获取名下工单列表（经理端）
// @Summary      获取名下工单列表
// @Description  获取当前登录经理名下房屋与楼宇的全部维修工单，按发起时间倒序
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /manager/maintenance [get]
// @Security     BearerAuth
func (c *MaintenanceController) GetManagerRequests() {
	managerID := middleware.GetPrincipalID(c.Ctx)

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	requests, err := maintenanceService.GetRequestsByManager(managerID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询工单列表失败: "+err.Error(), nil)
		return
	}

	var requestResponses []gin.H
	for _, m := range requests {
		requestResponses = append(requestResponses, maintenanceBrief(m))
	}

	response.Success(c.Ctx, gin.H{"data": requestResponses})
}

// 2. CreateManagerRequest 创建工单（经理端）
// @Summary      创建工单
// @Description  为名下房屋或楼宇创建维修工单；楼宇级工单必须使用general类型，房屋级工单不能使用general类型
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        request body CreateManagerMaintenanceRequest true "创建工单请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/maintenance [post]
// @Security     BearerAuth
func (c *MaintenanceController) CreateManagerRequest() {
	var req CreateManagerMaintenanceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	request, err := maintenanceService.CreateManagerRequest(managerID, req.Type, req.Description, req.TargetType, req.TargetID)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "房屋或楼宇不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrMaintenanceInvalidType, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, maintenanceBrief(*request))
}

// 3. UpdateStatus 更新工单状态（经理端）
// @Summary      更新工单状态
// @Description  更新当前登录经理名下工单的状态，非本人辖区的工单按不存在处理
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "工单ID"
// @Param        request body UpdateMaintenanceStatusRequest true "更新状态请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/maintenance/{id}/status [put]
// @Security     BearerAuth
func (c *MaintenanceController) UpdateStatus() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateMaintenanceStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	request, err := maintenanceService.UpdateStatus(managerID, id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "工单不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrMaintenanceInvalidStatus, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, maintenanceBrief(*request))
}

// 4. DeleteRequest 删除工单（经理端）
// @Summary      删除工单
// @Description  删除工单：房屋级工单要求房屋在本人辖区内，楼宇级工单要求本人是发起人
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "工单ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/maintenance/{id} [delete]
// @Security     BearerAuth
func (c *MaintenanceController) DeleteRequest() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	if err := maintenanceService.DeleteRequest(managerID, id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "工单不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除工单失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// 5. GetMyRequests 获取本人发起的工单（租户端）
// @Summary      获取本人工单列表
// @Description  获取当前登录租户发起的全部维修工单
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /tenant/maintenance [get]
// @Security     BearerAuth
func (c *MaintenanceController) GetMyRequests() {
	tenantID := middleware.GetPrincipalID(c.Ctx)

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	requests, err := maintenanceService.GetRequestsByTenant(tenantID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询工单列表失败: "+err.Error(), nil)
		return
	}

	var requestResponses []gin.H
	for _, m := range requests {
		requestResponses = append(requestResponses, maintenanceBrief(m))
	}

	response.Success(c.Ctx, gin.H{"data": requestResponses})
}

// 6. CreateMyRequest 发起报修（租户端）
// @Summary      发起报修
// @Description  为当前入住的房屋发起维修工单，租户不能发起general类型的楼宇级工单
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        request body CreateTenantMaintenanceRequest true "报修请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tenant/maintenance [post]
// @Security     BearerAuth
func (c *MaintenanceController) CreateMyRequest() {
	var req CreateTenantMaintenanceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	tenantID := middleware.GetPrincipalID(c.Ctx)

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	request, err := maintenanceService.CreateTenantRequest(tenantID, req.Type, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrTenantNoUnit) {
			response.Fail(c.Ctx, code.ErrTenantNoUnit, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrMaintenanceInvalidType, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, maintenanceBrief(*request))
}
