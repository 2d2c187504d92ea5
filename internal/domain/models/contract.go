package models

import "time"

// Contract 表示租赁合同：某租户以固定月租金租住某房屋若干个月
type Contract struct {
	BaseModel
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`            // 合同起始日期
	MonthlyRent    float64   `gorm:"type:decimal(10,2);not null" json:"monthly_rent"` // 月租金
	DurationMonths int       `gorm:"not null" json:"duration_months"`                 // 租期（月）
	TenantID       uint      `gorm:"not null;index" json:"tenant_id"`                 // 承租租户ID
	UnitID         uint      `gorm:"not null;index" json:"unit_id"`                   // 承租房屋ID

	// Relations - 关联关系
	Tenant   *Tenant         `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Unit     *Unit           `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Payments []PaymentRecord `gorm:"foreignKey:ContractID" json:"payments,omitempty"`
}

// EndMonth 返回合同结束月份（起始月份 + 租期，按日历月计算，与起始日无关）
func (c *Contract) EndMonth() time.Time {
	start := time.Date(c.StartDate.Year(), c.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, c.DurationMonths, 0)
}

// StartMonth 返回合同起始月份的首日
func (c *Contract) StartMonth() time.Time {
	return time.Date(c.StartDate.Year(), c.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
}
