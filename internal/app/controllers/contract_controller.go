package controllers

import (
	"errors"
	"time"

	"renda-http-service/internal/app/middleware"
	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/domain/services"
	"renda-http-service/internal/domain/services/container"
	"renda-http-service/internal/error/code"
	"renda-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceContractController 定义合同控制器接口
type InterfaceContractController interface {
	GetContracts()
	GetContract()
	CreateContract()
	UpdateContract()
	DeleteContract()
	GetMyContract()
}

// ContractController 合同控制器（经理端为主）
type ContractController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewContractController 创建一个新的合同控制器
func NewContractController(ctx *gin.Context, container *container.ServiceContainer) *ContractController {
	return &ContractController{
		Ctx:       ctx,
		Container: container,
	}
}

// ContractRequest 创建/更新合同请求
type ContractRequest struct {
	StartDate      string  `json:"start_date" binding:"required" example:"2024-01-15"`
	MonthlyRent    float64 `json:"monthly_rent" binding:"required" example:"500"`
	DurationMonths int     `json:"duration_months" binding:"required" example:"12"`
	TenantID       uint    `json:"tenant_id" binding:"required" example:"3"`
	UnitID         uint    `json:"unit_id" binding:"required" example:"5"`
}

// HandleContractFunc 返回一个处理合同请求的Gin处理函数
func HandleContractFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewContractController(ctx, container)

		switch method {
		case "getContracts":
			controller.GetContracts()
		case "getContract":
			controller.GetContract()
		case "createContract":
			controller.CreateContract()
		case "updateContract":
			controller.UpdateContract()
		case "deleteContract":
			controller.DeleteContract()
		case "getMyContract":
			controller.GetMyContract()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func contractBrief(ct models.Contract) gin.H {
	brief := gin.H{
		"id":              ct.ID,
		"start_date":      ct.StartDate.Format("2006-01-02"),
		"monthly_rent":    ct.MonthlyRent,
		"duration_months": ct.DurationMonths,
		"tenant_id":       ct.TenantID,
		"unit_id":         ct.UnitID,
		"created_at":      ct.CreatedAt,
		"updated_at":      ct.UpdatedAt,
	}
	if ct.Tenant != nil {
		brief["tenant"] = gin.H{
			"id":       ct.Tenant.ID,
			"username": ct.Tenant.Username,
			"contact":  ct.Tenant.Contact,
		}
	}
	if ct.Unit != nil {
		unit := gin.H{
			"id":     ct.Unit.ID,
			"number": ct.Unit.Number,
		}
		if ct.Unit.Building != nil {
			unit["building"] = gin.H{
				"id":   ct.Unit.Building.ID,
				"name": ct.Unit.Building.Name,
			}
		}
		brief["unit"] = unit
	}
	return brief
}

// parseContractInput 将请求体转换为服务层输入
func (c *ContractController) parseContractInput() (services.ContractInput, bool) {
	var req ContractRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return services.ContractInput{}, false
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrContractInvalid, "无效的起始日期，格式应为YYYY-MM-DD", nil)
		return services.ContractInput{}, false
	}

	return services.ContractInput{
		StartDate:      startDate,
		MonthlyRent:    req.MonthlyRent,
		DurationMonths: req.DurationMonths,
		TenantID:       req.TenantID,
		UnitID:         req.UnitID,
	}, true
}

// 1. GetContracts 获取名下合同列表（经理端）
// @Summary      获取名下合同列表
// @Description  分页获取当前登录经理名下租户的全部合同
// @Tags         Contract
// @Accept       json
// @Produce      json
// @Param        page query int false "页码, 默认为1"
// @Param        page_size query int false "每页条数, 默认为10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /manager/contracts [get]
// @Security     BearerAuth
func (c *ContractController) GetContracts() {
	page, pageSize := getPagination(c.Ctx)
	managerID := middleware.GetPrincipalID(c.Ctx)

	contractService := c.Container.GetService("contract").(services.InterfaceContractService)
	contracts, total, err := contractService.GetContractsByManager(managerID, page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询合同列表失败: "+err.Error(), nil)
		return
	}

	var contractResponses []gin.H
	for _, ct := range contracts {
		contractResponses = append(contractResponses, contractBrief(ct))
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        contractResponses,
	})
}

// 2. GetContract 获取合同详情（经理端）
// @Summary      获取合同详情
// @Description  获取当前登录经理名下某份合同及其缴费计划，非本人名下的合同按不存在处理
// @Tags         Contract
// @Accept       json
// @Produce      json
// @Param        id path int true "合同ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/contracts/{id} [get]
// @Security     BearerAuth
func (c *ContractController) GetContract() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	contractService := c.Container.GetService("contract").(services.InterfaceContractService)
	contract, err := contractService.GetManagerContract(managerID, id)
	if err != nil {
		response.NotFound(c.Ctx, "合同不存在")
		return
	}

	// 查看合同时同步补全缴费计划
	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	if err := paymentService.EnsureSchedule(contract); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "生成缴费计划失败: "+err.Error(), nil)
		return
	}
	payments, err := paymentService.GetPaymentsByContract(contract.ID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询缴费记录失败: "+err.Error(), nil)
		return
	}

	brief := contractBrief(*contract)
	brief["payments"] = paymentList(payments)
	response.Success(c.Ctx, brief)
}

// 3. CreateContract 创建合同（经理端）
// @Summary      创建合同
// @Description  为名下租户创建租赁合同并占用指定房屋，租户已有合同或房屋已被占用时拒绝
// @Tags         Contract
// @Accept       json
// @Produce      json
// @Param        request body ContractRequest true "创建合同请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/contracts [post]
// @Security     BearerAuth
func (c *ContractController) CreateContract() {
	input, ok := c.parseContractInput()
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	contractService := c.Container.GetService("contract").(services.InterfaceContractService)
	contract, err := contractService.CreateContract(managerID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			response.NotFound(c.Ctx, "租户或房屋不存在")
		case errors.Is(err, services.ErrTenantHasContract):
			response.Fail(c.Ctx, code.ErrTenantHasContract, nil)
		case errors.Is(err, services.ErrUnitOccupied):
			response.Fail(c.Ctx, code.ErrUnitOccupied, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrContractInvalid, err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, contractBrief(*contract))
}

// 4. UpdateContract 更新合同（经理端）
// @Summary      更新合同
// @Description  更新合同条款；更换房屋时原房屋释放、新房屋占用，两步在同一事务内完成
// @Tags         Contract
// @Accept       json
// @Produce      json
// @Param        id path int true "合同ID"
// @Param        request body ContractRequest true "更新合同请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/contracts/{id} [put]
// @Security     BearerAuth
func (c *ContractController) UpdateContract() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	input, ok := c.parseContractInput()
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	contractService := c.Container.GetService("contract").(services.InterfaceContractService)
	contract, err := contractService.UpdateContract(managerID, id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			response.NotFound(c.Ctx, "合同、租户或房屋不存在")
		case errors.Is(err, services.ErrTenantHasContract):
			response.Fail(c.Ctx, code.ErrTenantHasContract, nil)
		case errors.Is(err, services.ErrUnitOccupied):
			response.Fail(c.Ctx, code.ErrUnitOccupied, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrContractInvalid, err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, contractBrief(*contract))
}

// 5. DeleteContract 删除合同（经理端）
// @Summary      删除合同
// @Description  删除合同并释放房屋，关联的缴费记录一并删除
// @Tags         Contract
// @Accept       json
// @Produce      json
// @Param        id path int true "合同ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/contracts/{id} [delete]
// @Security     BearerAuth
func (c *ContractController) DeleteContract() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	managerID := middleware.GetPrincipalID(c.Ctx)

	contractService := c.Container.GetService("contract").(services.InterfaceContractService)
	if err := contractService.DeleteContract(managerID, id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "合同不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除合同失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// 6. GetMyContract 获取当前租户的合同（租户端）
// @Summary      获取本人合同
// @Description  获取当前登录租户最近的一份租赁合同
// @Tags         Contract
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tenant/contract [get]
// @Security     BearerAuth
func (c *ContractController) GetMyContract() {
	tenantID := middleware.GetPrincipalID(c.Ctx)

	contractService := c.Container.GetService("contract").(services.InterfaceContractService)
	contract, err := contractService.GetLatestContractByTenant(tenantID)
	if err != nil {
		response.NotFound(c.Ctx, "当前租户没有合同")
		return
	}

	response.Success(c.Ctx, contractBrief(*contract))
}
