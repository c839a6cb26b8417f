// pkg/database/history.go
package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"settrack/pkg/model"
)

type HistoryDB struct {
	db *gorm.DB
}

func (d *DB) History() *HistoryDB {
	return &HistoryDB{db: d.db}
}

// ExistsOn 检查股票在指定自然日（本地时区）是否已有收盘记录
func (h *HistoryDB) ExistsOn(stockID string, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := h.db.Model(&model.HistoryEntry{}).
		Where("stock_id = ? AND date >= ? AND date < ?", stockID, start, end).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询历史记录失败: %w", err)
	}
	return count > 0, nil
}

// Insert 追加一条收盘记录
func (h *HistoryDB) Insert(entry *model.HistoryEntry) error {
	if err := h.db.Create(entry).Error; err != nil {
		return fmt.Errorf("写入历史记录失败: %w", err)
	}
	return nil
}

// ListSince 查询指定时间之后的全部历史记录，按日期升序
func (h *HistoryDB) ListSince(cutoff time.Time) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	err := h.db.Where("date >= ?", cutoff).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("查询历史记录失败: %w", err)
	}
	return entries, nil
}
