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

// InterfaceUnitController 定义房屋控制器接口
type InterfaceUnitController interface {
	GetUnits()
	GetUnit()
	GetVacantUnits()
	CreateUnit()
	UpdateUnit()
	DeleteUnit()
	GetMyUnit()
}

// UnitController 房屋控制器（经理端为主）
type UnitController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUnitController 创建一个新的房屋控制器
func NewUnitController(ctx *gin.Context, container *container.ServiceContainer) *UnitController {
	return &UnitController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateUnitRequest 创建房屋请求
type CreateUnitRequest struct {
	Number     string `json:"number" binding:"required" example:"101"`
	BuildingID uint   `json:"building_id" binding:"required" example:"1"`
	TenantID   *uint  `json:"tenant_id" example:"3"`
}

// UpdateUnitRequest 更新房屋请求
type UpdateUnitRequest struct {
	Number     string `json:"number" example:"102"`
	BuildingID uint   `json:"building_id" example:"1"`
	TenantID   *uint  `json:"tenant_id" example:"3"`
}

// HandleUnitFunc 返回一个处理房屋请求的Gin处理函数
func HandleUnitFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUnitController(ctx, container)

		switch method {
		case "getUnits":
			controller.GetUnits()
		case "getUnit":
			controller.GetUnit()
		case "getVacantUnits":
			controller.GetVacantUnits()
		case "createUnit":
			controller.CreateUnit()
		case "updateUnit":
			controller.UpdateUnit()
		case "deleteUnit":
			controller.DeleteUnit()
		case "getMyUnit":
			controller.GetMyUnit()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func unitBrief(u models.Unit) gin.H {
	brief := gin.H{
		"id":          u.ID,
		"number":      u.Number,
		"building_id": u.BuildingID,
		"tenant_id":   u.TenantID,
		"occupied":    u.Occupied(),
		"created_at":  u.CreatedAt,
		"updated_at":  u.UpdatedAt,
	}
	if u.Building != nil {
		brief["building"] = gin.H{
			"id":       u.Building.ID,
			"name":     u.Building.Name,
			"location": u.Building.Location,
		}
	}
	if u.Tenant != nil {
		brief["tenant"] = gin.H{
			"id":       u.Tenant.ID,
			"username": u.Tenant.Username,
			"contact":  u.Tenant.Contact,
		}
	}
	return brief
}

// 1. GetUnits 获取名下房屋列表（经理端）
// @Summary      获取名下房屋列表
// @Description  获取当前登录经理名下所有楼宇的房屋
// @Tags         Unit
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /manager/units [get]
// @Security     BearerAuth
func (c *UnitController) GetUnits() {
	managerID := middleware.GetPrincipalID(c.Ctx)

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)
	units, err := unitService.GetUnitsByManager(managerID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询房屋列表失败: "+err.Error(), nil)
		return
	}

	var unitResponses []gin.H
	for _, u := range units {
		unitResponses = append(unitResponses, unitBrief(u))
	}

	response.Success(c.Ctx, gin.H{"data": unitResponses})
}

// 2. GetUnit 获取房屋详情（经理端）
// @Summary      获取房屋详情
// @Description  获取当前登录经理名下某间房屋的详细信息，非本人管理的房屋按不存在处理
// @Tags         Unit
// @Accept       json
// @Produce      json
// @Param        id path int true "房屋ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/units/{id} [get]
// @Security     BearerAuth
func (c *UnitController) GetUnit() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)
	unit, err := unitService.GetManagerUnit(managerID, id)
	if err != nil {
		response.NotFound(c.Ctx, "房屋不存在")
		return
	}

	response.Success(c.Ctx, unitBrief(*unit))
}

// 3. GetVacantUnits 获取名下空闲房屋（经理端）
// @Summary      获取空闲房屋列表
// @Description  获取当前登录经理名下尚无租户入住的房屋
// @Tags         Unit
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /manager/units/vacant [get]
// @Security     BearerAuth
func (c *UnitController) GetVacantUnits() {
	managerID := middleware.GetPrincipalID(c.Ctx)

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)
	units, err := unitService.GetVacantUnitsByManager(managerID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询空闲房屋失败: "+err.Error(), nil)
		return
	}

	var unitResponses []gin.H
	for _, u := range units {
		unitResponses = append(unitResponses, unitBrief(u))
	}

	response.Success(c.Ctx, gin.H{"data": unitResponses})
}

// 4. CreateUnit 创建房屋（经理端）
// @Summary      创建房屋
// @Description  在当前登录经理名下的楼宇中创建新房屋
// @Tags         Unit
// @Accept       json
// @Produce      json
// @Param        request body CreateUnitRequest true "创建房屋请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/units [post]
// @Security     BearerAuth
func (c *UnitController) CreateUnit() {
	var req CreateUnitRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	unit := models.Unit{
		Number:     req.Number,
		BuildingID: req.BuildingID,
		TenantID:   req.TenantID,
	}

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)
	if err := unitService.CreateUnit(managerID, &unit); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "楼宇或租户不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建房屋失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":          unit.ID,
		"number":      unit.Number,
		"building_id": unit.BuildingID,
		"tenant_id":   unit.TenantID,
	})
}

// 5. UpdateUnit 更新房屋（经理端）
// @Summary      更新房屋
// @Description  更新房屋编号、所属楼宇或入住租户
// @Tags         Unit
// @Accept       json
// @Produce      json
// @Param        id path int true "房屋ID"
// @Param        request body UpdateUnitRequest true "更新房屋请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/units/{id} [put]
// @Security     BearerAuth
func (c *UnitController) UpdateUnit() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateUnitRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	updates := map[string]interface{}{}
	if req.Number != "" {
		updates["number"] = req.Number
	}
	if req.BuildingID != 0 {
		updates["building_id"] = req.BuildingID
	}
	if req.TenantID != nil {
		updates["tenant_id"] = req.TenantID
	}

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)
	unit, err := unitService.UpdateUnit(managerID, id, updates)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "房屋不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新房屋失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, unitBrief(*unit))
}

// 6. DeleteUnit 删除房屋（经理端）
// @Summary      删除房屋
// @Description  删除当前登录经理名下的房屋，仍被合同引用的房屋无法删除
// @Tags         Unit
// @Accept       json
// @Produce      json
// @Param        id path int true "房屋ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/units/{id} [delete]
// @Security     BearerAuth
func (c *UnitController) DeleteUnit() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)
	if err := unitService.DeleteUnit(managerID, id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "房屋不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// 7. GetMyUnit 获取当前租户入住的房屋（租户端）
// @Summary      获取入住房屋
// @Description  获取当前登录租户入住的房屋及所属楼宇信息
// @Tags         Unit
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tenant/unit [get]
// @Security     BearerAuth
func (c *UnitController) GetMyUnit() {
	tenantID := middleware.GetPrincipalID(c.Ctx)

	unitService := c.Container.GetService("unit").(services.InterfaceUnitService)
	unit, err := unitService.GetUnitByTenant(tenantID)
	if err != nil {
		response.NotFound(c.Ctx, "当前租户名下没有房屋")
		return
	}

	response.Success(c.Ctx, unitBrief(*unit))
}
