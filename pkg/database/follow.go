// pkg/database/follow.go
package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"settrack/pkg/model"
)

type FollowDB struct {
	db *gorm.DB
}

func (d *DB) Follow() *FollowDB {
	return &FollowDB{db: d.db}
}

// FindOrCreate 查询或创建关注关系，返回的existed表示关注是否已存在
func (f *FollowDB) FindOrCreate(userID, stockID string) (*model.Follow, bool, error) {
	var follow model.Follow
	err := f.db.First(&follow, "user_id = ? AND stock_id = ?", userID, stockID).Error
	if err == nil {
		return &follow, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("查询关注关系失败: %w", err)
	}

	follow = model.Follow{UserID: userID, StockID: stockID}
	if err := f.db.Create(&follow).Error; err != nil {
		return nil, false, fmt.Errorf("创建关注关系失败: %w", err)
	}
	return &follow, false, nil
}

// GetByUserID 查询用户的全部关注，最新的在前
func (f *FollowDB) GetByUserID(userID string) ([]model.Follow, error) {
	var follows []model.Follow
	err := f.db.Where("user_id = ?", userID).
		Preload("Stock").
		Order("created_at DESC").
		Find(&follows).Error
	if err != nil {
		return nil, fmt.Errorf("查询用户关注失败: %w", err)
	}
	return follows, nil
}

// Delete 取消关注，不存在时返回错误
func (f *FollowDB) Delete(followID string) error {
	result := f.db.Delete(&model.Follow{}, "id = ?", followID)
	if result.Error != nil {
		return fmt.Errorf("取消关注失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("关注关系不存在: %w", ErrNotFound)
	}
	return nil
}
