// pkg/database/stock.go
package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"settrack/pkg/model"
)

type StockDB struct {
	db *gorm.DB
}

func (d *DB) Stock() *StockDB {
	return &StockDB{db: d.db}
}

// GetBySymbol 按代码查询股票，代码不区分大小写
func (s *StockDB) GetBySymbol(symbol string) (*model.Stock, error) {
	var stock model.Stock
	err := s.db.First(&stock, "symbol = ?", strings.ToUpper(symbol)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("股票不存在: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("查询股票失败: %w", err)
	}
	return &stock, nil
}

// FindOrCreateBySymbol 按代码查询股票，不存在则以价格0创建，等待任务同步
func (s *StockDB) FindOrCreateBySymbol(symbol string) (*model.Stock, error) {
	upper := strings.ToUpper(symbol)
	var stock model.Stock
	err := s.db.Where("symbol = ?", upper).
		FirstOrCreate(&stock, model.Stock{Symbol: upper}).Error
	if err != nil {
		return nil, fmt.Errorf("创建股票失败: %w", err)
	}
	return &stock, nil
}

// UpdatePrice 更新股票现价和最后更新时间
func (s *StockDB) UpdatePrice(symbol string, price float64, ts time.Time) error {
	err := s.db.Model(&model.Stock{}).
		Where("symbol = ?", strings.ToUpper(symbol)).
		Updates(map[string]interface{}{
			"last_price":  price,
			"last_update": ts,
		}).Error
	if err != nil {
		return fmt.Errorf("更新股票价格失败: %w", err)
	}
	return nil
}

// GetAll 查询全部股票
func (s *StockDB) GetAll() ([]model.Stock, error) {
	var stocks []model.Stock
	if err := s.db.Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("查询股票列表失败: %w", err)
	}
	return stocks, nil
}
