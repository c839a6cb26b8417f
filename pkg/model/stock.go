// pkg/model/stock.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stock 股票，代码统一存储为大写，首次被关注或设置提醒时自动创建
type Stock struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"symbol"`
	LastPrice  float64   `gorm:"type:decimal(12,4);default:0" json:"last_price"` // 首次同步前为0
	LastUpdate time.Time `json:"last_update"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 关联关系
	History []HistoryEntry `gorm:"foreignKey:StockID" json:"history,omitempty"`
}

func (s *Stock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
