package services

import (
	"errors"
	"fmt"
	"time"

	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterfacePaymentService 定义租金缴费服务接口
type InterfacePaymentService interface {
	EnsureSchedule(contract *models.Contract) error
	GetPaymentsByContract(contractID uint) ([]models.PaymentRecord, error)
	GetTenantFinances(tenantID uint) ([]models.PaymentRecord, error)
	PayPayment(tenantID, paymentID uint) (*models.PaymentRecord, bool, error)
}

// PaymentService 提供租金缴费单的生成与缴费服务
type PaymentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPaymentService 创建一个新的缴费服务
func NewPaymentService(db *gorm.DB, cfg *config.Config) InterfacePaymentService {
	return &PaymentService{
		DB:     db,
		Config: cfg,
	}
}

// entityCode 返回缴费单的收款实体代码
func (s *PaymentService) entityCode() string {
	if s.Config != nil && s.Config.PaymentEntityCode != "" {
		return s.Config.PaymentEntityCode
	}
	return "9501"
}

// newReference 生成全局唯一的缴费参考号：合同ID-年月-随机后缀
// 只要求唯一，不要求可复算
func newReference(contractID uint, month time.Time) string {
	return fmt.Sprintf("%d-%d%02d-%s", contractID, month.Year(), int(month.Month()), uuid.New().String()[:6])
}

// 1. EnsureSchedule 补齐合同的缴费单：从起始月到结束月（不含），每个日历月恰好一张
// 惰性调用且幂等；并发生成由 (contract_id, due_month) 唯一索引裁决
func (s *PaymentService) EnsureSchedule(contract *models.Contract) error {
	if contract == nil {
		return errors.New("合同不能为空")
	}
	// 租期不足一个月的合同不产生缴费单
	if contract.DurationMonths <= 0 {
		return nil
	}

	endMonth := contract.EndMonth()

	// 找到已生成的最后一期，从其下一月继续；一期都没有则从起始月开始
	next := contract.StartMonth()
	var last models.PaymentRecord
	err := s.DB.Where("contract_id = ?", contract.ID).Order("due_month DESC").First(&last).Error
	if err == nil {
		next = time.Date(last.DueMonth.Year(), last.DueMonth.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	for month := next; month.Before(endMonth); month = month.AddDate(0, 1, 0) {
		record := models.PaymentRecord{
			ContractID: contract.ID,
			DueMonth:   month,
			Amount:     contract.MonthlyRent,
			Entity:     s.entityCode(),
			Reference:  newReference(contract.ID, month),
			Status:     models.PaymentStatusUnpaid,
		}
		if err := s.DB.Create(&record).Error; err != nil {
			// 并发生成同一月份时，后到的一方撞唯一索引，视为该月已存在
			if isDuplicateKeyErr(err) {
				continue
			}
			return err
		}
	}
	return nil
}

// 2. GetPaymentsByContract 获取合同项下的全部缴费单，按应缴月份排序
func (s *PaymentService) GetPaymentsByContract(contractID uint) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	if err := s.DB.Where("contract_id = ?", contractID).Order("due_month").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// 3. GetTenantFinances 租户财务页：取其最近合同，惰性补齐缴费单后返回
// 没有合同的租户得到空列表，不报错
func (s *PaymentService) GetTenantFinances(tenantID uint) ([]models.PaymentRecord, error) {
	var contract models.Contract
	err := s.DB.Where("tenant_id = ?", tenantID).Order("start_date DESC").First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.PaymentRecord{}, nil
		}
		return nil, err
	}

	if err := s.EnsureSchedule(&contract); err != nil {
		return nil, err
	}

	return s.GetPaymentsByContract(contract.ID)
}

// 4. PayPayment 租户缴费：unpaid -> paid，单个事务内完成；重复缴费返回信息性提示而非错误
// 只允许租户缴自己合同项下的费用，范围外一律视为不存在
func (s *PaymentService) PayPayment(tenantID, paymentID uint) (*models.PaymentRecord, bool, error) {
	var record models.PaymentRecord
	var alreadyPaid bool

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Joins("JOIN contracts ON contracts.id = payment_records.contract_id").
			Where("payment_records.id = ? AND contracts.tenant_id = ?", paymentID, tenantID).
			First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if record.Status == models.PaymentStatusPaid {
			alreadyPaid = true
			return nil
		}

		if err := tx.Model(&record).Update("status", models.PaymentStatusPaid).Error; err != nil {
			return err
		}
		record.Status = models.PaymentStatusPaid
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &record, alreadyPaid, nil
}
