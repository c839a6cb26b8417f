// pkg/database/alert.go
package database

import (
	"fmt"

	"gorm.io/gorm"

	"settrack/pkg/model"
)

type AlertDB struct {
	db *gorm.DB
}

func (d *DB) Alert() *AlertDB {
	return &AlertDB{db: d.db}
}

// Create 创建提醒，初始为活跃状态
func (a *AlertDB) Create(alert *model.Alert) error {
	if err := a.db.Create(alert).Error; err != nil {
		return fmt.Errorf("创建提醒失败: %w", err)
	}
	return nil
}

// GetActive 查询全部活跃提醒，预加载股票和用户信息供任务评估使用
func (a *AlertDB) GetActive() ([]model.Alert, error) {
	var alerts []model.Alert
	err := a.db.Where("is_active = ?", true).
		Preload("Stock").
		Preload("User").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("查询活跃提醒失败: %w", err)
	}
	return alerts, nil
}

// GetByUserID 查询用户的全部提醒，最新的在前
func (a *AlertDB) GetByUserID(userID string) ([]model.Alert, error) {
	var alerts []model.Alert
	err := a.db.Where("user_id = ?", userID).
		Preload("Stock").
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("查询用户提醒失败: %w", err)
	}
	return alerts, nil
}

// GetActiveByUserID 查询用户的活跃提醒
func (a *AlertDB) GetActiveByUserID(userID string) ([]model.Alert, error) {
	var alerts []model.Alert
	err := a.db.Where("user_id = ? AND is_active = ?", userID, true).
		Preload("Stock").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("查询用户活跃提醒失败: %w", err)
	}
	return alerts, nil
}

// Deactivate 将提醒置为非活跃。触发后无条件调用，保证一次性语义
func (a *AlertDB) Deactivate(alertID string) error {
	err := a.db.Model(&model.Alert{}).
		Where("id = ?", alertID).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("停用提醒失败: %w", err)
	}
	return nil
}

// Delete 删除提醒，不存在时返回错误
func (a *AlertDB) Delete(alertID string) error {
	result := a.db.Delete(&model.Alert{}, "id = ?", alertID)
	if result.Error != nil {
		return fmt.Errorf("删除提醒失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("提醒不存在: %w", ErrNotFound)
	}
	return nil
}
