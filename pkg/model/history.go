// pkg/model/history.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryEntry 每日收盘记录，同一股票同一自然日只保留一条，只增不改
type HistoryEntry struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	StockID   string    `gorm:"type:uuid;not null;index:idx_history_stock_date" json:"stock_id"`
	Date      time.Time `gorm:"not null;index:idx_history_stock_date" json:"date"`
	Close     float64   `gorm:"type:decimal(12,4);not null" json:"close"`
	CreatedAt time.Time `json:"created_at"`

	// 关联关系
	Stock Stock `gorm:"foreignKey:StockID" json:"stock,omitempty"`
}

func (h *HistoryEntry) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

func (HistoryEntry) TableName() string {
	return "stock_histories"
}
