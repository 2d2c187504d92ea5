package models

import "time"

// 缴费状态
const (
	PaymentStatusUnpaid = "unpaid" // 未缴
	PaymentStatusPaid   = "paid"   // 已缴
)

// PaymentRecord 表示合同项下某个月份的租金缴费单
// (contract_id, due_month) 联合唯一，保证同一合同同一月份至多一条记录
type PaymentRecord struct {
	BaseModel
	ContractID uint      `gorm:"not null;uniqueIndex:idx_contract_due_month" json:"contract_id"`
	DueMonth   time.Time `gorm:"type:date;not null;uniqueIndex:idx_contract_due_month" json:"due_month"` // 应缴月份（当月首日）
	Amount     float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Entity     string    `gorm:"type:varchar(4);default:'9501'" json:"entity"`           // 收款实体代码
	Reference  string    `gorm:"type:varchar(40);unique;not null" json:"reference"`      // 全局唯一的缴费参考号
	Status     string    `gorm:"type:varchar(10);default:'unpaid'" json:"status"`        // unpaid, paid

	// Relations - 关联关系
	Contract *Contract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
}
