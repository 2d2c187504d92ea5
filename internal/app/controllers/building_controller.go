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

// InterfaceBuildingController 定义楼宇控制器接口
type InterfaceBuildingController interface {
	GetBuildings()
	GetBuilding()
	CreateBuilding()
	UpdateBuilding()
	DeleteBuilding()
	GetMyBuildings()
	GetMyBuilding()
}

// BuildingController 楼宇控制器
type BuildingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBuildingController 创建一个新的楼宇控制器
func NewBuildingController(ctx *gin.Context, container *container.ServiceContainer) *BuildingController {
	return &BuildingController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateBuildingRequest 创建楼宇请求
type CreateBuildingRequest struct {
	Name      string `json:"name" binding:"required" example:"翡翠花园A栋"`
	Location  string `json:"location" binding:"required" example:"幸福路88号"`
	ManagerID uint   `json:"manager_id" binding:"required" example:"1"`
}

// UpdateBuildingRequest 更新楼宇请求
type UpdateBuildingRequest struct {
	Name      string `json:"name" example:"翡翠花园A栋"`
	Location  string `json:"location" example:"幸福路88号"`
	ManagerID uint   `json:"manager_id" example:"2"`
}

// HandleBuildingFunc 返回一个处理楼宇请求的Gin处理函数
func HandleBuildingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBuildingController(ctx, container)

		switch method {
		case "getBuildings":
			controller.GetBuildings()
		case "getBuilding":
			controller.GetBuilding()
		case "createBuilding":
			controller.CreateBuilding()
		case "updateBuilding":
			controller.UpdateBuilding()
		case "deleteBuilding":
			controller.DeleteBuilding()
		case "getMyBuildings":
			controller.GetMyBuildings()
		case "getMyBuilding":
			controller.GetMyBuilding()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func buildingBrief(b models.Building) gin.H {
	brief := gin.H{
		"id":         b.ID,
		"name":       b.Name,
		"location":   b.Location,
		"manager_id": b.ManagerID,
		"created_at": b.CreatedAt,
		"updated_at": b.UpdatedAt,
	}
	if b.Manager != nil {
		brief["manager"] = gin.H{
			"id":       b.Manager.ID,
			"username": b.Manager.Username,
			"contact":  b.Manager.Contact,
		}
	}
	return brief
}

// 1. GetBuildings 获取楼宇列表（管理员端）
// @Summary      获取楼宇列表
// @Description  分页获取所有楼宇及其负责经理
// @Tags         Building
// @Accept       json
// @Produce      json
// @Param        page query int false "页码, 默认为1"
// @Param        page_size query int false "每页条数, 默认为10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/buildings [get]
// @Security     BearerAuth
func (c *BuildingController) GetBuildings() {
	page, pageSize := getPagination(c.Ctx)

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	buildings, total, err := buildingService.GetAllBuildings(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询楼宇列表失败: "+err.Error(), nil)
		return
	}

	var buildingResponses []gin.H
	for _, b := range buildings {
		buildingResponses = append(buildingResponses, buildingBrief(b))
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        buildingResponses,
	})
}

// 2. GetBuilding 获取楼宇详情（管理员端）
// @Summary      获取楼宇详情
// @Description  根据ID获取特定楼宇的详细信息，包含房屋列表
// @Tags         Building
// @Accept       json
// @Produce      json
// @Param        id path int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/buildings/{id} [get]
// @Security     BearerAuth
func (c *BuildingController) GetBuilding() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	building, err := buildingService.GetBuildingByID(id)
	if err != nil {
		response.NotFound(c.Ctx, "楼宇不存在")
		return
	}

	var units []gin.H
	for _, u := range building.Units {
		units = append(units, gin.H{
			"id":        u.ID,
			"number":    u.Number,
			"tenant_id": u.TenantID,
			"occupied":  u.Occupied(),
		})
	}

	brief := buildingBrief(*building)
	brief["units"] = units
	response.Success(c.Ctx, brief)
}

// 3. CreateBuilding 创建楼宇（管理员端）
// @Summary      创建楼宇
// @Description  创建新的楼宇并指定负责经理
// @Tags         Building
// @Accept       json
// @Produce      json
// @Param        request body CreateBuildingRequest true "创建楼宇请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/buildings [post]
// @Security     BearerAuth
func (c *BuildingController) CreateBuilding() {
	var req CreateBuildingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	building := models.Building{
		Name:      req.Name,
		Location:  req.Location,
		ManagerID: req.ManagerID,
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	if err := buildingService.CreateBuilding(&building); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.FailWithMessage(c.Ctx, code.ErrManagerNotFound, "指定的经理不存在", nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建楼宇失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":         building.ID,
		"name":       building.Name,
		"location":   building.Location,
		"manager_id": building.ManagerID,
	})
}

// 4. UpdateBuilding 更新楼宇（管理员端）
// @Summary      更新楼宇
// @Description  更新楼宇的名称、地址或负责经理
// @Tags         Building
// @Accept       json
// @Produce      json
// @Param        id path int true "楼宇ID"
// @Param        request body UpdateBuildingRequest true "更新楼宇请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/buildings/{id} [put]
// @Security     BearerAuth
func (c *BuildingController) UpdateBuilding() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateBuildingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.ManagerID != 0 {
		updates["manager_id"] = req.ManagerID
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	building, err := buildingService.UpdateBuilding(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "楼宇或经理不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新楼宇失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, buildingBrief(*building))
}

// 5. DeleteBuilding 删除楼宇（管理员端）
// @Summary      删除楼宇
// @Description  删除指定的楼宇，名下仍有房屋的楼宇无法删除
// @Tags         Building
// @Accept       json
// @Produce      json
// @Param        id path int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/buildings/{id} [delete]
// @Security     BearerAuth
func (c *BuildingController) DeleteBuilding() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	if err := buildingService.DeleteBuilding(id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "楼宇不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// 6. GetMyBuildings 获取当前经理名下的楼宇（经理端）
// @Summary      获取名下楼宇列表
// @Description  获取当前登录经理管理的全部楼宇
// @Tags         Building
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /manager/buildings [get]
// @Security     BearerAuth
func (c *BuildingController) GetMyBuildings() {
	managerID := middleware.GetPrincipalID(c.Ctx)

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	buildings, err := buildingService.GetBuildingsByManager(managerID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询楼宇列表失败: "+err.Error(), nil)
		return
	}

	var buildingResponses []gin.H
	for _, b := range buildings {
		buildingResponses = append(buildingResponses, buildingBrief(b))
	}

	response.Success(c.Ctx, gin.H{"data": buildingResponses})
}

// 7. GetMyBuilding 获取当前经理名下的楼宇详情（经理端）
// @Summary      获取名下楼宇详情
// @Description  获取当前登录经理名下某栋楼宇的详细信息，非本人管理的楼宇按不存在处理
// @Tags         Building
// @Accept       json
// @Produce      json
// @Param        id path int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/buildings/{id} [get]
// @Security     BearerAuth
func (c *BuildingController) GetMyBuilding() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	building, err := buildingService.GetManagerBuilding(managerID, id)
	if err != nil {
		response.NotFound(c.Ctx, "楼宇不存在")
		return
	}

	var units []gin.H
	for _, u := range building.Units {
		units = append(units, gin.H{
			"id":        u.ID,
			"number":    u.Number,
			"tenant_id": u.TenantID,
			"occupied":  u.Occupied(),
		})
	}

	brief := buildingBrief(*building)
	brief["units"] = units
	response.Success(c.Ctx, brief)
}
