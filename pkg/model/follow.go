// pkg/model/follow.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow 关注关系，(用户, 股票) 唯一，重复关注视为成功
type Follow struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_follow_user_stock" json:"user_id"`
	StockID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_follow_user_stock" json:"stock_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Stock Stock `gorm:"foreignKey:StockID" json:"stock,omitempty"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
