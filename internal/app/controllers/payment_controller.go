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

// InterfacePaymentController 定义缴费控制器接口
type InterfacePaymentController interface {
	GetMyFinances()
	PayPayment()
	GetContractPayments()
}

// PaymentController 缴费控制器
type PaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPaymentController 创建一个新的缴费控制器
func NewPaymentController(ctx *gin.Context, container *container.ServiceContainer) *PaymentController {
	return &PaymentController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandlePaymentFunc 返回一个处理缴费请求的Gin处理函数
func HandlePaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPaymentController(ctx, container)

		switch method {
		case "getMyFinances":
			controller.GetMyFinances()
		case "payPayment":
			controller.PayPayment()
		case "getContractPayments":
			controller.GetContractPayments()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// paymentList 将缴费记录转换为响应格式
func paymentList(payments []models.PaymentRecord) []gin.H {
	result := make([]gin.H, 0, len(payments))
	for _, p := range payments {
		result = append(result, gin.H{
			"id":          p.ID,
			"contract_id": p.ContractID,
			"due_month":   p.DueMonth.Format("2006-01"),
			"amount":      p.Amount,
			"entity":      p.Entity,
			"reference":   p.Reference,
			"status":      p.Status,
		})
	}
	return result
}

// 1. GetMyFinances 获取当前租户的缴费计划（租户端）
// @Summary      获取缴费计划
// @Description  获取当前登录租户合同项下的全部缴费单，访问时自动补全缺失月份；没有合同时返回空列表
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /tenant/finances [get]
// @Security     BearerAuth
func (c *PaymentController) GetMyFinances() {
	tenantID := middleware.GetPrincipalID(c.Ctx)

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payments, err := paymentService.GetTenantFinances(tenantID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询缴费记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"data": paymentList(payments)})
}

// 2. PayPayment 缴纳某个月份的租金（租户端）
// @Summary      缴纳租金
// @Description  将指定缴费单标记为已缴；重复缴纳不报错，返回提示信息
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        id path int true "缴费单ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tenant/payments/{id}/pay [post]
// @Security     BearerAuth
func (c *PaymentController) PayPayment() {
	id, ok := getIDParam(c.Ctx)
	if !ok {
		return
	}
	tenantID := middleware.GetPrincipalID(c.Ctx)

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, alreadyPaid, err := paymentService.PayPayment(tenantID, id)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			response.NotFound(c.Ctx, "缴费记录不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "缴费失败: "+err.Error(), nil)
		return
	}

	data := gin.H{
		"id":        payment.ID,
		"due_month": payment.DueMonth.Format("2006-01"),
		"amount":    payment.Amount,
		"reference": payment.Reference,
		"status":    payment.Status,
	}

	// 重复缴纳按信息性提示处理，不视为错误
	if alreadyPaid {
		response.SuccessWithMessage(c.Ctx, "该月份已缴费", data)
		return
	}

	response.SuccessWithMessage(c.Ctx, "缴费成功", data)
}

// 3. GetContractPayments 获取某合同的缴费记录（经理端）
// @Summary      获取合同缴费记录
// @Description  获取当前登录经理名下某份合同的全部缴费单，访问时自动补全缺失月份
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        id path int true "合同ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /manager/contracts/{id}/payments [get]
// @Security     BearerAuth
func (c *PaymentController) GetContractPayments() {
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

	response.Success(c.Ctx, gin.H{"data": paymentList(payments)})
}
