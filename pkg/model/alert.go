// pkg/model/alert.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertCondition 提醒触发条件枚举
type AlertCondition string

const (
	ConditionGT AlertCondition = "GT" // 现价 >= 目标价时触发
	ConditionLT AlertCondition = "LT" // 现价 <= 目标价时触发
)

// Valid 校验条件取值
func (c AlertCondition) Valid() bool {
	return c == ConditionGT || c == ConditionLT
}

// Operator 返回条件对应的比较符号，用于邮件正文展示
func (c AlertCondition) Operator() string {
	if c == ConditionGT {
		return ">="
	}
	return "<="
}

// Alert 价格提醒，一次性触发后永久置为非活跃
type Alert struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string         `gorm:"type:uuid;not null;index" json:"user_id"`
	StockID     string         `gorm:"type:uuid;not null;index" json:"stock_id"`
	TargetPrice float64        `gorm:"type:decimal(12,4);not null" json:"target_price"`
	Condition   AlertCondition `gorm:"type:varchar(2);not null" json:"condition"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// 关联关系
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Stock Stock `gorm:"foreignKey:StockID" json:"stock,omitempty"`
}

func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// ShouldTrigger 判断当前价格是否满足触发条件
func (a *Alert) ShouldTrigger(currentPrice float64) bool {
	switch a.Condition {
	case ConditionGT:
		return currentPrice >= a.TargetPrice
	case ConditionLT:
		return currentPrice <= a.TargetPrice
	default:
		return false
	}
}
